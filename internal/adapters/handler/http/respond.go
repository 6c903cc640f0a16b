package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
)

const genericErrorMessage = "something went wrong, try again"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps domain errors to a status code and a message safe to show
// to customers. Anything unrecognised is logged and hidden.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorStatus(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()), "error", err)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
	case errors.Is(err, domain.ErrInvalidPollID):
		return http.StatusBadRequest, domain.ErrInvalidPollID.Error()
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, domain.ErrInvalidToken.Error()
	case errors.Is(err, domain.ErrPollNotFound):
		return http.StatusNotFound, domain.ErrPollNotFound.Error()
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, domain.ErrCustomerNotFound.Error()
	case errors.Is(err, domain.ErrResponseNotFound):
		return http.StatusNotFound, domain.ErrResponseNotFound.Error()
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, domain.ErrAlreadyResponded.Error()
	case errors.Is(err, domain.ErrPollClosed):
		return http.StatusConflict, domain.ErrPollClosed.Error()
	case errors.Is(err, domain.ErrBallotNotEditable):
		return http.StatusConflict, domain.ErrBallotNotEditable.Error()
	case errors.Is(err, domain.ErrTransient):
		return http.StatusServiceUnavailable, domain.ErrTransient.Error()
	default:
		return http.StatusInternalServerError, genericErrorMessage
	}
}
