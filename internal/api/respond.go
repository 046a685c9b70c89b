package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/example/luxa-shop/internal/domain/admin"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, admin.ErrWrongPassword):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConfiguration):
		return http.StatusServiceUnavailable
	case errors.Is(err, apperr.ErrRemote):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes err with the status it maps to. Server-side
// failures are logged.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[API] %s %s failed: %v", r.Method, r.URL.Path, err)
	}
	body := map[string]any{"error": err.Error()}
	var ve *apperr.ValidationError
	if errors.As(err, &ve) && ve.Field != "" {
		body["field"] = ve.Field
	}
	if apperr.IsRetryable(err) {
		body["retryable"] = true
	}
	respondJSON(w, status, body)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("", "invalid request body")
	}
	return nil
}
