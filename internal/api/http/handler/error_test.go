package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/tutordash-web/internal/model"
	"github.com/dtroode/tutordash-web/internal/session"
	"github.com/dtroode/tutordash-web/internal/testutil"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "validation",
			err:    model.NewValidationError("email", "Email is required"),
			status: http.StatusBadRequest,
			body:   `{"error":"Email is required","field":"email"}`,
		},
		{
			name:   "backend unavailable",
			err:    fmt.Errorf("POST /auth/parent-login/: %w", model.ErrUnavailable),
			status: http.StatusBadGateway,
			body:   `{"error":"service temporarily unavailable, please try again"}`,
		},
		{
			name:   "server message passes through",
			err:    &model.ServerError{Status: http.StatusBadRequest, Message: "Invalid join code", Kind: model.ErrInvalidJoinCode},
			status: http.StatusBadRequest,
			body:   `{"error":"Invalid join code"}`,
		},
		{
			name:   "server unauthorized keeps message",
			err:    &model.ServerError{Status: http.StatusUnauthorized, Message: "Invalid token.", Kind: model.ErrUnauthorized},
			status: http.StatusUnauthorized,
			body:   `{"error":"Invalid token."}`,
		},
		{
			name:   "bare unauthorized",
			err:    model.ErrUnauthorized,
			status: http.StatusUnauthorized,
			body:   `{"error":"unauthorized"}`,
		},
		{
			name:   "not found",
			err:    fmt.Errorf("lookup: %w", model.ErrNotFound),
			status: http.StatusNotFound,
			body:   `{"error":"not found"}`,
		},
		{
			name:   "evicted session",
			err:    fmt.Errorf("failed to store parent session: %w", session.ErrClosed),
			status: http.StatusServiceUnavailable,
			body:   `{"error":"session expired, please retry"}`,
		},
		{
			name:   "deadline",
			err:    context.DeadlineExceeded,
			status: http.StatusGatewayTimeout,
			body:   `{"error":"service temporarily unavailable, please try again"}`,
		},
		{
			name:   "unexpected",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			body:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, testutil.MakeNoopLogger(), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}
