// Package common holds small HTTP helpers shared by the REST handlers.
package common

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes v as a JSON response body.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// RespondDetail writes the auth-style error body, {"detail": ...}.
func RespondDetail(w http.ResponseWriter, status int, detail string) {
	RespondJSON(w, status, map[string]string{"detail": detail})
}

// RespondError writes the api-style error body, {"error": ...}.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}

// RespondData wraps a list payload as {"data": ...}.
func RespondData(w http.ResponseWriter, status int, v interface{}) {
	RespondJSON(w, status, map[string]interface{}{"data": v})
}

// ParseJSONBody decodes a JSON request body with a size limit.
func ParseJSONBody(w http.ResponseWriter, r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
