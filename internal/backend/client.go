// Package backend is the HTTP client for the tutoring REST backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dtroode/tutordash-web/internal/logger"
	"github.com/dtroode/tutordash-web/internal/model"
)

const (
	headerAuthorization = "Authorization"
	headerUserData      = "X-User-Data"

	// Large enough for a question bank page, small enough to bound a bad upstream.
	maxResponseBytes = 4 << 20
)

var errEmptyToken = errors.New("backend returned no token")

// Response is a successful backend reply relayed as is.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Client calls the backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a Client for baseURL, for example http://localhost:8000/api.
func NewClient(baseURL string, timeout time.Duration, logger *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchProfile returns the parent profile for creds. A rejected token yields
// an error matching model.ErrUnauthorized.
func (c *Client) FetchProfile(ctx context.Context, creds model.Credentials) (model.ParentUser, error) {
	var user model.ParentUser
	if err := c.doJSON(ctx, http.MethodGet, "/auth/profile/", &creds, nil, &user); err != nil {
		return model.ParentUser{}, err
	}
	return user, nil
}

// LoginParent exchanges email and password for a token and profile.
func (c *Client) LoginParent(ctx context.Context, email, password string) (model.ParentLogin, error) {
	var res model.ParentLogin
	in := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/parent-login/", nil, in, &res); err != nil {
		return model.ParentLogin{}, err
	}
	if res.Token == "" {
		return model.ParentLogin{}, fmt.Errorf("parent login: %w", errEmptyToken)
	}
	return res, nil
}

// SignupParent registers a parent account pending email verification.
func (c *Client) SignupParent(ctx context.Context, req model.SignupRequest) (model.Message, error) {
	var res model.Message
	if err := c.doJSON(ctx, http.MethodPost, "/auth/parent-signup/", nil, req, &res); err != nil {
		return model.Message{}, err
	}
	return res, nil
}

// VerifyEmail activates the account the verification token was issued for.
func (c *Client) VerifyEmail(ctx context.Context, token string) (model.Message, error) {
	var res model.Message
	in := map[string]string{"token": token}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/verify-email/", nil, in, &res); err != nil {
		return model.Message{}, err
	}
	return res, nil
}

// RequestPasswordReset asks the backend to mail a reset link.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (model.Message, error) {
	var res model.Message
	in := map[string]string{"email": email}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/request-password-reset/", nil, in, &res); err != nil {
		return model.Message{}, err
	}
	return res, nil
}

// ResetPassword sets a new password using a reset token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (model.Message, error) {
	var res model.Message
	in := map[string]string{"token": token, "new_password": newPassword}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/reset-password/", nil, in, &res); err != nil {
		return model.Message{}, err
	}
	return res, nil
}

// LoginStudent exchanges a join code for a student record. An unknown code
// yields an error matching model.ErrInvalidJoinCode.
func (c *Client) LoginStudent(ctx context.Context, joinCode string) (model.StudentLogin, error) {
	var res model.StudentLogin
	in := map[string]string{"join_code": joinCode}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/student-login/", nil, in, &res); err != nil {
		return model.StudentLogin{}, err
	}
	return res, nil
}

// Health checks that the backend is up.
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/auth/health/", nil, nil, nil)
}

// Forward relays a request to path and returns the reply untouched. Non-2xx
// replies are turned into errors the same way as for every other call.
func (c *Client) Forward(ctx context.Context, creds model.Credentials, method, path string, query url.Values, body io.Reader) (Response, error) {
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	return c.send(ctx, method, target, &creds, body)
}

func (c *Client) doJSON(ctx context.Context, method, path string, creds *model.Credentials, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	resp, err := c.send(ctx, method, path, creds, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, creds *model.Credentials, body io.Reader) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds != nil {
		if err := setCredentials(req, *creds); err != nil {
			return Response{}, err
		}
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Response{}, ctxErr
		}
		c.logger.Warn("Backend: request failed",
			"method", method,
			"path", path,
			"error", err.Error())
		return Response{}, fmt.Errorf("%s %s: %w", method, path, model.ErrUnavailable)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: %w", method, path, model.ErrUnavailable)
	}

	c.logger.Debug("Backend: request done",
		"method", method,
		"path", path,
		"status", res.StatusCode,
		"duration", time.Since(start))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return Response{}, decodeError(res.StatusCode, raw)
	}
	return Response{
		Status:      res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Body:        raw,
	}, nil
}

func setCredentials(req *http.Request, creds model.Credentials) error {
	if creds.Token != "" {
		req.Header.Set(headerAuthorization, "Token "+creds.Token)
	}
	if creds.User != nil {
		raw, err := json.Marshal(creds.User)
		if err != nil {
			return fmt.Errorf("failed to marshal user data: %w", err)
		}
		req.Header.Set(headerUserData, string(raw))
	}
	return nil
}

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

const invalidJoinCodeMessage = "Invalid join code"

// decodeError maps a non-2xx reply to the model error taxonomy. The server's
// message is kept verbatim so the user sees it.
func decodeError(status int, raw []byte) error {
	if status >= http.StatusInternalServerError {
		return fmt.Errorf("backend responded %d: %w", status, model.ErrUnavailable)
	}

	var body errorBody
	_ = json.Unmarshal(raw, &body)

	msg := body.Error
	if msg == "" {
		msg = body.Detail
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	serr := &model.ServerError{Status: status, Message: msg}
	switch {
	case status == http.StatusUnauthorized:
		serr.Kind = model.ErrUnauthorized
	case status == http.StatusNotFound:
		serr.Kind = model.ErrNotFound
	case msg == invalidJoinCodeMessage:
		serr.Kind = model.ErrInvalidJoinCode
	}
	return serr
}
