package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/dtroode/tutordash-web/internal/logger"
	"github.com/dtroode/tutordash-web/internal/model"
	"github.com/dtroode/tutordash-web/internal/session"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// handleError writes err using the model error taxonomy. Messages from the
// backend are passed through verbatim.
func handleError(w http.ResponseWriter, log *logger.Logger, err error) {
	var (
		verr *model.ValidationError
		serr *model.ServerError
	)

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, model.ErrUnavailable):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: model.ErrUnavailable.Error()})
	case errors.As(err, &serr):
		writeJSON(w, serr.Status, errorResponse{Error: serr.Message})
	case errors.Is(err, model.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, session.ErrClosed):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "session expired, please retry"})
	case errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: model.ErrUnavailable.Error()})
	default:
		log.Error("Handler: unexpected error", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
