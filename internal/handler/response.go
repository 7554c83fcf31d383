package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/wolber/school-portal/internal/apperror"
)

// ErrorResponse is the error body every non-2xx response carries:
// {"error": "<message>"}. Existing portal clients parse exactly this shape.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent at this point; logging is all we can do.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status and emits the standard
// error body. This is the only place status codes are decided:
//
//	validation / conflict / invalid credentials → 400
//	missing or invalid token                    → 401
//	role not permitted                          → 403
//	anything else (store failure)               → 500
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Erreur interne"

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		switch {
		case errors.Is(err, apperror.ErrValidation),
			errors.Is(err, apperror.ErrConflict),
			errors.Is(err, apperror.ErrInvalidCredentials):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		default:
			status = http.StatusInternalServerError
		}
	}

	writeJSON(w, status, ErrorResponse{Error: message})
}
