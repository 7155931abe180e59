package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dtroode/tutordash-web/internal/logger"
	"github.com/dtroode/tutordash-web/internal/model"
)

const (
	minPasswordLength = 6
	joinCodeLength    = 6
)

// AuthBackend is the part of the backend client used by the auth flows.
type AuthBackend interface {
	LoginParent(ctx context.Context, email, password string) (model.ParentLogin, error)
	SignupParent(ctx context.Context, req model.SignupRequest) (model.Message, error)
	VerifyEmail(ctx context.Context, token string) (model.Message, error)
	RequestPasswordReset(ctx context.Context, email string) (model.Message, error)
	ResetPassword(ctx context.Context, token, newPassword string) (model.Message, error)
	LoginStudent(ctx context.Context, joinCode string) (model.StudentLogin, error)
}

// SessionStore is the per-browser session the auth flows write to.
type SessionStore interface {
	Login(ctx context.Context, user model.ParentUser, token string) error
	LoginStudent(ctx context.Context, student model.Student) error
	Logout(ctx context.Context) error
}

// SignupForm is the parent signup form as submitted by the browser.
type SignupForm struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// ResetPasswordForm is the reset form as submitted by the browser.
type ResetPasswordForm struct {
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Auth runs the login, signup and recovery flows against the backend and
// records the outcome in the browser's session.
type Auth struct {
	backend        AuthBackend
	logger         *logger.Logger
	googleLoginURL string
}

// AuthOption configures Auth.
type AuthOption func(*Auth)

// WithGoogleLoginURL enables the Google sign-in redirect.
func WithGoogleLoginURL(url string) AuthOption {
	return func(a *Auth) {
		a.googleLoginURL = url
	}
}

func NewAuth(backend AuthBackend, logger *logger.Logger, opts ...AuthOption) *Auth {
	a := &Auth{backend: backend, logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GoogleLoginURL is where the browser starts a Google sign-in. The backend
// completes the flow itself. Empty means the redirect is disabled.
func (a *Auth) GoogleLoginURL() string {
	return a.googleLoginURL
}

func (a *Auth) LoginParent(ctx context.Context, session SessionStore, email, password string) (model.ParentUser, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return model.ParentUser{}, model.NewValidationError("email", "Email is required")
	}
	if password == "" {
		return model.ParentUser{}, model.NewValidationError("password", "Password is required")
	}

	a.logger.Debug("Auth service: parent login attempt", "email", email)

	res, err := a.backend.LoginParent(ctx, email, password)
	if err != nil {
		a.logger.Info("Auth service: parent login rejected",
			"email", email,
			"error", err.Error())
		return model.ParentUser{}, err
	}

	if err := session.Login(ctx, res.User, res.Token); err != nil {
		a.logger.Error("Auth service: failed to store parent session",
			"user_id", res.User.ID,
			"error", err.Error())
		return model.ParentUser{}, fmt.Errorf("failed to store parent session: %w", err)
	}

	a.logger.Info("Auth service: parent logged in", "user_id", res.User.ID)
	return res.User, nil
}

func (a *Auth) SignupParent(ctx context.Context, form SignupForm) (model.Message, error) {
	form.Email = strings.TrimSpace(form.Email)
	if form.Email == "" {
		return model.Message{}, model.NewValidationError("email", "Email is required")
	}
	if err := validateNewPassword("password", form.Password, form.ConfirmPassword); err != nil {
		return model.Message{}, err
	}

	msg, err := a.backend.SignupParent(ctx, model.SignupRequest{
		Email:     form.Email,
		Password:  form.Password,
		FirstName: strings.TrimSpace(form.FirstName),
		LastName:  strings.TrimSpace(form.LastName),
	})
	if err != nil {
		return model.Message{}, err
	}

	a.logger.Info("Auth service: parent signup submitted", "email", form.Email)
	return withDefaultMessage(msg, "Registration successful! Please check your email to verify your account."), nil
}

func (a *Auth) VerifyEmail(ctx context.Context, token string) (model.Message, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.Message{}, model.NewValidationError("token", "Verification token is required")
	}

	msg, err := a.backend.VerifyEmail(ctx, token)
	if err != nil {
		return model.Message{}, err
	}
	return withDefaultMessage(msg, "Email verified successfully."), nil
}

func (a *Auth) RequestPasswordReset(ctx context.Context, email string) (model.Message, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return model.Message{}, model.NewValidationError("email", "Email is required")
	}

	msg, err := a.backend.RequestPasswordReset(ctx, email)
	if err != nil {
		return model.Message{}, err
	}
	return withDefaultMessage(msg, "If an account exists, a reset email has been sent."), nil
}

func (a *Auth) ResetPassword(ctx context.Context, form ResetPasswordForm) (model.Message, error) {
	if strings.TrimSpace(form.Token) == "" {
		return model.Message{}, model.NewValidationError("token", "Missing reset token. Please use the link from your email.")
	}
	if err := validateNewPassword("new_password", form.NewPassword, form.ConfirmPassword); err != nil {
		return model.Message{}, err
	}

	msg, err := a.backend.ResetPassword(ctx, form.Token, form.NewPassword)
	if err != nil {
		return model.Message{}, err
	}
	return withDefaultMessage(msg, "Password reset successfully."), nil
}

func (a *Auth) LoginStudent(ctx context.Context, session SessionStore, joinCode string) (model.Student, error) {
	code, err := NormalizeJoinCode(joinCode)
	if err != nil {
		return model.Student{}, err
	}

	res, err := a.backend.LoginStudent(ctx, code)
	if err != nil {
		if errors.Is(err, model.ErrInvalidJoinCode) {
			a.logger.Info("Auth service: unknown join code", "join_code", code)
		}
		return model.Student{}, err
	}

	if err := session.LoginStudent(ctx, res.Student); err != nil {
		a.logger.Error("Auth service: failed to store student session",
			"student_id", res.Student.ID,
			"error", err.Error())
		return model.Student{}, fmt.Errorf("failed to store student session: %w", err)
	}

	a.logger.Info("Auth service: student logged in", "student_id", res.Student.ID)
	return res.Student, nil
}

func (a *Auth) Logout(ctx context.Context, session SessionStore) error {
	return session.Logout(ctx)
}

// NormalizeJoinCode upper-cases code and checks it is six letters or digits.
func NormalizeJoinCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", model.NewValidationError("join_code", "Join code is required")
	}
	if len(code) != joinCodeLength {
		return "", model.NewValidationError("join_code", "Join code must be 6 characters")
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", model.NewValidationError("join_code", "Join code may only contain letters and digits")
		}
	}
	return code, nil
}

func validateNewPassword(field, password, confirm string) error {
	if password != confirm {
		return model.NewValidationError(field, "Passwords do not match")
	}
	if len(password) < minPasswordLength {
		return model.NewValidationError(field, "Password must be at least 6 characters long")
	}
	return nil
}

func withDefaultMessage(msg model.Message, fallback string) model.Message {
	if msg.Message == "" {
		msg.Message = fallback
	}
	return msg
}
