package session

import (
	"bytes"
	"encoding/json"
	"io"
)

func jsonReader(payload []byte) io.Reader {
	return bytes.NewReader(payload)
}

// decodeDetail pulls a human-readable message out of an error body. The
// backend uses "detail" on auth endpoints and "error" elsewhere.
func decodeDetail(r io.Reader) string {
	var body struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	if body.Detail != "" {
		return body.Detail
	}
	return body.Error
}
