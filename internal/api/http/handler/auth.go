package handler

import (
	"context"
	"net/http"
	"time"

	apictx "github.com/dtroode/tutordash-web/internal/api/http/context"
	"github.com/dtroode/tutordash-web/internal/logger"
	"github.com/dtroode/tutordash-web/internal/model"
	"github.com/dtroode/tutordash-web/internal/service"
	"github.com/dtroode/tutordash-web/internal/session"
)

// AuthService defines the login, signup and recovery flows.
type AuthService interface {
	LoginParent(ctx context.Context, store service.SessionStore, email, password string) (model.ParentUser, error)
	SignupParent(ctx context.Context, form service.SignupForm) (model.Message, error)
	VerifyEmail(ctx context.Context, token string) (model.Message, error)
	RequestPasswordReset(ctx context.Context, email string) (model.Message, error)
	ResetPassword(ctx context.Context, form service.ResetPasswordForm) (model.Message, error)
	LoginStudent(ctx context.Context, store service.SessionStore, joinCode string) (model.Student, error)
	Logout(ctx context.Context, store service.SessionStore) error
	GoogleLoginURL() string
}

// Auth handles the public authentication endpoints.
type Auth struct {
	authService    AuthService
	contextManager *apictx.Manager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager *apictx.Manager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// SessionResponse is the snapshot the browser renders from.
type SessionResponse struct {
	IsAuthenticated bool              `json:"is_authenticated"`
	IsParent        bool              `json:"is_parent"`
	IsStudent       bool              `json:"is_student"`
	Loading         bool              `json:"loading"`
	User            *model.ParentUser `json:"user"`
	Student         *model.Student    `json:"student"`
}

func newSessionResponse(st session.State) SessionResponse {
	return SessionResponse{
		IsAuthenticated: st.IsAuthenticated(),
		IsParent:        st.IsParent(),
		IsStudent:       st.IsStudent(),
		Loading:         st.Loading,
		User:            st.User,
		Student:         st.Student,
	}
}

// sessionWaitLimit caps how long ?wait=1 holds a request for rehydration.
const sessionWaitLimit = 5 * time.Second

// Session returns the current session snapshot. With ?wait=1 it first waits
// for a loading session to settle, so the browser can skip polling.
func (h *Auth) Session(w http.ResponseWriter, r *http.Request) {
	store, ok := h.session(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("wait") != "" {
		timer := time.NewTimer(sessionWaitLimit)
		defer timer.Stop()

		select {
		case <-store.Ready():
		case <-timer.C:
		case <-r.Context().Done():
			return
		}
	}

	writeJSON(w, http.StatusOK, newSessionResponse(store.State()))
}

type parentLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ParentLogin logs a parent in with email and password.
func (h *Auth) ParentLogin(w http.ResponseWriter, r *http.Request) {
	store, ok := h.session(w, r)
	if !ok {
		return
	}

	var req parentLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	if _, err := h.authService.LoginParent(r.Context(), store, req.Email, req.Password); err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionResponse(store.State()))
}

// ParentSignup registers a parent account.
func (h *Auth) ParentSignup(w http.ResponseWriter, r *http.Request) {
	var form service.SignupForm
	if err := decodeJSON(w, r, &form); err != nil {
		handleError(w, h.logger, err)
		return
	}

	msg, err := h.authService.SignupParent(r.Context(), form)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, msg.Message)
}

type tokenRequest struct {
	Token string `json:"token"`
}

// VerifyEmail confirms a parent's email address.
func (h *Auth) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	msg, err := h.authService.VerifyEmail(r.Context(), req.Token)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, msg.Message)
}

type emailRequest struct {
	Email string `json:"email"`
}

// ForgotPassword requests a password reset email.
func (h *Auth) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	msg, err := h.authService.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, msg.Message)
}

// ResetPassword sets a new password with a reset token.
func (h *Auth) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var form service.ResetPasswordForm
	if err := decodeJSON(w, r, &form); err != nil {
		handleError(w, h.logger, err)
		return
	}

	msg, err := h.authService.ResetPassword(r.Context(), form)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, msg.Message)
}

type studentLoginRequest struct {
	JoinCode string `json:"join_code"`
}

// StudentLogin logs a student in with a join code.
func (h *Auth) StudentLogin(w http.ResponseWriter, r *http.Request) {
	store, ok := h.session(w, r)
	if !ok {
		return
	}

	var req studentLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	if _, err := h.authService.LoginStudent(r.Context(), store, req.JoinCode); err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionResponse(store.State()))
}

// Logout clears both identities.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	store, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := h.authService.Logout(r.Context(), store); err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionResponse(store.State()))
}

func (h *Auth) session(w http.ResponseWriter, r *http.Request) (*session.Store, bool) {
	store, ok := h.contextManager.GetSessionFromContext(r.Context())
	if !ok {
		h.logger.Error("Auth handler: no session in request context", "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return nil, false
	}
	return store, true
}

// GoogleLogin sends the browser to the backend's Google sign-in page.
func (h *Auth) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	target := h.authService.GoogleLoginURL()
	if target == "" {
		handleError(w, h.logger, model.ErrNotFound)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}
