package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	apictx "github.com/dtroode/tutordash-web/internal/api/http/context"
	"github.com/dtroode/tutordash-web/internal/api/http/handler"
	"github.com/dtroode/tutordash-web/internal/api/http/middleware"
	"github.com/dtroode/tutordash-web/internal/logger"
	"github.com/dtroode/tutordash-web/internal/model"
)

// Sessions hands out live session stores and reports their counters.
type Sessions interface {
	middleware.Sessions
	handler.RegistryStats
}

// Router wires handlers and middleware into the HTTP surface.
type Router struct {
	authService    handler.AuthService
	viewsService   handler.ViewsService
	health         handler.HealthChecker
	tokens         middleware.BrowserTokens
	sessions       Sessions
	contextManager *apictx.Manager
	cookie         middleware.CookieConfig
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	authService handler.AuthService,
	viewsService handler.ViewsService,
	health handler.HealthChecker,
	tokens middleware.BrowserTokens,
	sessions Sessions,
	contextManager *apictx.Manager,
	cookie middleware.CookieConfig,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		viewsService:   viewsService,
		health:         health,
		tokens:         tokens,
		sessions:       sessions,
		contextManager: contextManager,
		cookie:         cookie,
		logger:         logger,
	}
}

// Register builds the handler tree. Every route except /health runs behind
// the browser middleware; dashboards also run behind the identity guard.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	browser := middleware.NewBrowser(r.tokens, r.sessions, r.contextManager, r.cookie, r.logger)
	requireParent := middleware.RequireIdentity(r.contextManager, model.ClassParent)
	requireStudent := middleware.RequireIdentity(r.contextManager, model.ClassStudent)

	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	viewsHandler := handler.NewViews(r.viewsService, r.contextManager, r.logger)
	healthHandler := handler.NewHealth(r.health, r.sessions, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimw.Recoverer, logging.Handle)

	mux.Get("/health", healthHandler.Check)
	mux.NotFound(viewsHandler.NotFound)

	mux.Group(func(rt chi.Router) {
		rt.Use(browser.Handle)

		rt.Get("/", viewsHandler.Landing)

		rt.Route("/api", func(api chi.Router) {
			api.Get("/session", authHandler.Session)
			api.Route("/auth", func(auth chi.Router) {
				auth.Post("/parent-login", authHandler.ParentLogin)
				auth.Post("/parent-signup", authHandler.ParentSignup)
				auth.Post("/verify-email", authHandler.VerifyEmail)
				auth.Post("/forgot-password", authHandler.ForgotPassword)
				auth.Post("/reset-password", authHandler.ResetPassword)
				auth.Post("/student-login", authHandler.StudentLogin)
				auth.Post("/logout", authHandler.Logout)
				auth.Get("/google", authHandler.GoogleLogin)
			})
		})

		rt.Group(func(parent chi.Router) {
			parent.Use(requireParent)
			parent.Get("/parent-dashboard", viewsHandler.ParentDashboard)
			parent.Post("/parent-dashboard/children", viewsHandler.CreateChild)
			parent.Delete("/parent-dashboard/children/{childID}", viewsHandler.DeleteChild)
			parent.Get("/progress/{studentID}", viewsHandler.Progress)
		})

		rt.Group(func(student chi.Router) {
			student.Use(requireStudent)
			student.Get("/student-dashboard", viewsHandler.StudentDashboard)
			student.Get("/practice", viewsHandler.Practice)
			student.Get("/practice/generate", viewsHandler.GenerateQuestion)
			student.Post("/practice/sessions", viewsHandler.StartSession)
			student.Post("/practice/answers", viewsHandler.SubmitAnswer)
		})
	})

	return mux
}
