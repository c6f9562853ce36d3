package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/OscarDom1/community-resource-platform/internal/common"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads exactly one JSON object, rejecting unknown fields and
// bodies over maxBodyBytes.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after body", common.ErrValidation)
	}
	return nil
}

// statusFor maps domain errors to a status and a message safe to show
// clients.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrCredentialMismatch),
		errors.Is(err, common.ErrTokenInvalid),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, common.ErrOwnershipDenied):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusConflict, "already exists"
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, "invalid request"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug(r.Context(), "request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, errorBody{Error: msg})
}
