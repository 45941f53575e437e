package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"smartdocs/internal/smartdocs"
	"smartdocs/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusFor maps service errors to HTTP status codes. Observer rejections
// take precedence over whatever the observer wrapped.
func statusFor(err error) int {
	switch {
	case smartdocs.IsRejected(err):
		return http.StatusUnprocessableEntity
	case smartdocs.IsNotFound(err):
		return http.StatusNotFound
	case smartdocs.IsInvalid(err):
		return http.StatusBadRequest
	case smartdocs.IsConflict(err):
		return http.StatusConflict
	}
	var he HTTPError
	if errors.As(err, &he) {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

// writeServiceError writes err with its mapped status.
func writeServiceError(w http.ResponseWriter, err error) {
	writeJSONError(w, statusFor(err), err.Error())
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
