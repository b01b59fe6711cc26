package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	apperrors "soundmap/pkg/errors"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// errorFromResponse maps a non-2xx response to a tagged error. The message
// comes from the body's error/detail field when present, with a generic
// fallback.
func errorFromResponse(res *http.Response) error {
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	json.NewDecoder(res.Body).Decode(&body)

	message := body.Error
	if message == "" {
		message = body.Detail
	}

	switch res.StatusCode {
	case http.StatusNotFound:
		if message != "" {
			err := apperrors.NewNotFoundError("resource")
			err.Message = message
			return err
		}
		return apperrors.NewNotFoundError("resource")
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.NewUnauthorizedError(message)
	default:
		return apperrors.NewServerError(message)
	}
}

// tagTransportError classifies a transport failure as timeout or network
func tagTransportError(ctx context.Context, err error) error {
	var timeoutErr interface{ Timeout() bool }
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return apperrors.NewTimeoutError("request").WithCause(err)
	case errors.As(err, &timeoutErr) && timeoutErr.Timeout():
		return apperrors.NewTimeoutError("request").WithCause(err)
	}
	return apperrors.NewNetworkError("request failed", err)
}
