package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	apictx "github.com/dtroode/tutordash-web/internal/api/http/context"
	"github.com/dtroode/tutordash-web/internal/backend"
	"github.com/dtroode/tutordash-web/internal/guard"
	"github.com/dtroode/tutordash-web/internal/logger"
	"github.com/dtroode/tutordash-web/internal/model"
	"github.com/dtroode/tutordash-web/internal/service"
)

// ViewsService loads the data behind the protected views.
type ViewsService interface {
	ParentDashboard(ctx context.Context, creds model.Credentials) (service.ParentDashboard, error)
	CreateChild(ctx context.Context, creds model.Credentials, body io.Reader) (backend.Response, error)
	DeleteChild(ctx context.Context, creds model.Credentials, childID int64) (backend.Response, error)
	Progress(ctx context.Context, creds model.Credentials, studentID int64) (backend.Response, error)
	StudentDashboard(ctx context.Context, creds model.Credentials, student model.Student, subject string) (service.StudentDashboard, error)
	RandomQuestion(ctx context.Context, creds model.Credentials, p service.PracticeParams) (backend.Response, error)
	GenerateQuestion(ctx context.Context, creds model.Credentials, p service.PracticeParams) (backend.Response, error)
	StartSession(ctx context.Context, creds model.Credentials, body io.Reader) (backend.Response, error)
	SubmitAnswer(ctx context.Context, creds model.Credentials, body io.Reader) (backend.Response, error)
}

// Views handles the landing page and the guarded views. Identity checks
// happen in middleware before these run.
type Views struct {
	views          ViewsService
	contextManager *apictx.Manager
	logger         *logger.Logger
}

// NewViews creates a new Views handler.
func NewViews(views ViewsService, contextManager *apictx.Manager, logger *logger.Logger) *Views {
	return &Views{
		views:          views,
		contextManager: contextManager,
		logger:         logger,
	}
}

type landingResponse struct {
	Page    string          `json:"page"`
	Session SessionResponse `json:"session"`
}

// Landing sends a signed-in visitor to their dashboard and otherwise shows
// the public landing page.
func (h *Views) Landing(w http.ResponseWriter, r *http.Request) {
	var res landingResponse
	res.Page = "landing"

	if store, ok := h.contextManager.GetSessionFromContext(r.Context()); ok {
		st := store.State()
		if home := guard.Home(st); !st.Loading && home != guard.RouteLanding {
			http.Redirect(w, r, home, http.StatusFound)
			return
		}
		res.Session = newSessionResponse(st)
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *Views) ParentDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.views.ParentDashboard(r.Context(), h.credentials(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (h *Views) CreateChild(w http.ResponseWriter, r *http.Request) {
	res, err := h.views.CreateChild(r.Context(), h.credentials(r), http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	relay(w, res)
}

func (h *Views) DeleteChild(w http.ResponseWriter, r *http.Request) {
	childID, err := service.ParseID("child_id", chi.URLParam(r, "childID"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	res, err := h.views.DeleteChild(r.Context(), h.credentials(r), childID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	relay(w, res)
}

func (h *Views) Progress(w http.ResponseWriter, r *http.Request) {
	studentID, err := service.ParseID("student_id", chi.URLParam(r, "studentID"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	res, err := h.views.Progress(r.Context(), h.credentials(r), studentID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	relay(w, res)
}

func (h *Views) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	student, ok := h.student(w, r)
	if !ok {
		return
	}

	dash, err := h.views.StudentDashboard(r.Context(), h.credentials(r), student, r.URL.Query().Get("subject"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// Practice shows a random question for the chosen topic. Without a topic
// the student is sent back to pick one.
func (h *Views) Practice(w http.ResponseWriter, r *http.Request) {
	student, ok := h.student(w, r)
	if !ok {
		return
	}

	p := service.PracticeParamsFor(student, r.URL.Query())
	if p.Topic == "" {
		http.Redirect(w, r, guard.RouteStudentDashboard, http.StatusFound)
		return
	}

	res, err := h.views.RandomQuestion(r.Context(), h.credentials(r), p)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	relay(w, res)
}

func (h *Views) GenerateQuestion(w http.ResponseWriter, r *http.Request) {
	student, ok := h.student(w, r)
	if !ok {
		return
	}

	p := service.PracticeParamsFor(student, r.URL.Query())
	if p.Topic == "" {
		handleError(w, h.logger, model.NewValidationError("topic", "Topic is required"))
		return
	}

	res, err := h.views.GenerateQuestion(r.Context(), h.credentials(r), p)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	relay(w, res)
}

func (h *Views) StartSession(w http.ResponseWriter, r *http.Request) {
	res, err := h.views.StartSession(r.Context(), h.credentials(r), http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	relay(w, res)
}

func (h *Views) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	res, err := h.views.SubmitAnswer(r.Context(), h.credentials(r), http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	relay(w, res)
}

// NotFound sends unknown paths to the landing page.
func (h *Views) NotFound(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, guard.RouteLanding, http.StatusFound)
}

func (h *Views) credentials(r *http.Request) model.Credentials {
	store, ok := h.contextManager.GetSessionFromContext(r.Context())
	if !ok {
		return model.Credentials{}
	}
	return store.Credentials()
}

func (h *Views) student(w http.ResponseWriter, r *http.Request) (model.Student, bool) {
	store, ok := h.contextManager.GetSessionFromContext(r.Context())
	if ok {
		if st := store.State(); st.Student != nil {
			return *st.Student, true
		}
	}
	http.Redirect(w, r, guard.RouteLanding, http.StatusFound)
	return model.Student{}, false
}
