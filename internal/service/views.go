package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dtroode/tutordash-web/internal/backend"
	"github.com/dtroode/tutordash-web/internal/logger"
	"github.com/dtroode/tutordash-web/internal/model"
)

const defaultSubject = "Math"

var emptyList = json.RawMessage("[]")

// Forwarder relays authenticated calls to the backend.
type Forwarder interface {
	Forward(ctx context.Context, creds model.Credentials, method, path string, query url.Values, body io.Reader) (backend.Response, error)
}

// ParentDashboard is the parent landing view.
type ParentDashboard struct {
	User     model.ParentUser `json:"user"`
	Children json.RawMessage  `json:"children"`
}

// StudentDashboard is the student landing view.
type StudentDashboard struct {
	Student model.Student   `json:"student"`
	Subject string          `json:"subject"`
	Topics  json.RawMessage `json:"topics"`
}

// PracticeParams select the question a practice view shows.
type PracticeParams struct {
	Topic   string
	Subject string
	Level   string
}

// PracticeParamsFor reads topic, subject and level from query. Subject
// defaults to Math and level to the student's own level.
func PracticeParamsFor(student model.Student, query url.Values) PracticeParams {
	p := PracticeParams{
		Topic:   query.Get("topic"),
		Subject: query.Get("subject"),
		Level:   query.Get("level"),
	}
	if p.Subject == "" {
		p.Subject = defaultSubject
	}
	if p.Level == "" {
		p.Level = student.Level
	}
	return p
}

// Views loads the data behind the protected views. It holds no business
// logic of its own; the backend decides what each identity may see.
type Views struct {
	backend Forwarder
	logger  *logger.Logger
}

func NewViews(backend Forwarder, logger *logger.Logger) *Views {
	return &Views{backend: backend, logger: logger}
}

func (v *Views) ParentDashboard(ctx context.Context, creds model.Credentials) (ParentDashboard, error) {
	if creds.User == nil {
		return ParentDashboard{}, model.ErrUnauthorized
	}

	res, err := v.backend.Forward(ctx, creds, http.MethodGet, "/auth/children/", nil, nil)
	if err != nil {
		return ParentDashboard{}, err
	}

	return ParentDashboard{
		User:     *creds.User,
		Children: listOrEmpty(res.Body),
	}, nil
}

func (v *Views) CreateChild(ctx context.Context, creds model.Credentials, body io.Reader) (backend.Response, error) {
	res, err := v.backend.Forward(ctx, creds, http.MethodPost, "/auth/create-child/", nil, body)
	if err != nil {
		return backend.Response{}, err
	}
	v.logger.Info("Views: child created", "user_id", userID(creds))
	return res, nil
}

func (v *Views) DeleteChild(ctx context.Context, creds model.Credentials, childID int64) (backend.Response, error) {
	path := fmt.Sprintf("/auth/delete-child/%d/", childID)
	res, err := v.backend.Forward(ctx, creds, http.MethodDelete, path, nil, nil)
	if err != nil {
		return backend.Response{}, err
	}
	v.logger.Info("Views: child deleted",
		"user_id", userID(creds),
		"child_id", childID)
	return res, nil
}

func (v *Views) Progress(ctx context.Context, creds model.Credentials, studentID int64) (backend.Response, error) {
	return v.backend.Forward(ctx, creds, http.MethodGet, fmt.Sprintf("/progress/%d/", studentID), nil, nil)
}

func (v *Views) StudentDashboard(ctx context.Context, creds model.Credentials, student model.Student, subject string) (StudentDashboard, error) {
	if subject == "" {
		subject = defaultSubject
	}

	query := url.Values{
		"level":   {student.Level},
		"subject": {subject},
	}
	res, err := v.backend.Forward(ctx, creds, http.MethodGet, "/topics/", query, nil)
	if err != nil {
		return StudentDashboard{}, err
	}

	var body struct {
		Topics json.RawMessage `json:"topics"`
	}
	if err := json.Unmarshal(res.Body, &body); err != nil {
		return StudentDashboard{}, fmt.Errorf("failed to decode topics: %w", err)
	}

	return StudentDashboard{
		Student: student,
		Subject: subject,
		Topics:  listOrEmpty(body.Topics),
	}, nil
}

func (v *Views) RandomQuestion(ctx context.Context, creds model.Credentials, p PracticeParams) (backend.Response, error) {
	query := url.Values{
		"subject": {p.Subject},
		"level":   {p.Level},
	}
	return v.backend.Forward(ctx, creds, http.MethodGet, "/questions/random/", query, nil)
}

func (v *Views) GenerateQuestion(ctx context.Context, creds model.Credentials, p PracticeParams) (backend.Response, error) {
	query := url.Values{
		"topic":   {p.Topic},
		"subject": {p.Subject},
		"level":   {p.Level},
	}
	return v.backend.Forward(ctx, creds, http.MethodGet, "/generate-question/", query, nil)
}

func (v *Views) StartSession(ctx context.Context, creds model.Credentials, body io.Reader) (backend.Response, error) {
	return v.backend.Forward(ctx, creds, http.MethodPost, "/start-session/", nil, body)
}

func (v *Views) SubmitAnswer(ctx context.Context, creds model.Credentials, body io.Reader) (backend.Response, error) {
	return v.backend.Forward(ctx, creds, http.MethodPost, "/submit-answer/", nil, body)
}

// ParseID parses a positive numeric path parameter.
func ParseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewValidationError(field, "must be a positive number")
	}
	return id, nil
}

// listOrEmpty returns raw when it is a JSON array and [] otherwise.
func listOrEmpty(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' || !json.Valid(trimmed) {
		return emptyList
	}
	return json.RawMessage(trimmed)
}

func userID(creds model.Credentials) int64 {
	if creds.User == nil {
		return 0
	}
	return creds.User.ID
}
