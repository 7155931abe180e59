package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	apictx "github.com/dtroode/tutordash-web/internal/api/http/context"
	"github.com/dtroode/tutordash-web/internal/logger"
	"github.com/dtroode/tutordash-web/internal/session"
)

// BrowserTokens issues and resolves browser identity tokens.
type BrowserTokens interface {
	Issue() (uuid.UUID, string, error)
	Resolve(token string) (uuid.UUID, error)
}

// Sessions hands out the live session store of a browser.
type Sessions interface {
	Get(ctx context.Context, browserID string) *session.Store
}

// CookieConfig controls the browser identity cookie.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Browser identifies the browser behind a request by its signed cookie and
// attaches its session store to the request context. Browsers without a
// valid cookie get a fresh identity.
type Browser struct {
	tokens         BrowserTokens
	sessions       Sessions
	contextManager *apictx.Manager
	cookie         CookieConfig
	logger         *logger.Logger
}

// NewBrowser creates a new Browser middleware instance.
func NewBrowser(tokens BrowserTokens, sessions Sessions, contextManager *apictx.Manager, cookie CookieConfig, logger *logger.Logger) *Browser {
	return &Browser{
		tokens:         tokens,
		sessions:       sessions,
		contextManager: contextManager,
		cookie:         cookie,
		logger:         logger,
	}
}

func (m *Browser) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		browserID, err := m.resolve(r)
		if err != nil {
			browserID, err = m.issue(w)
			if err != nil {
				m.logger.Error("Browser middleware: failed to issue browser token",
					"error", err.Error())
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
		}

		store := m.sessions.Get(r.Context(), browserID.String())

		ctx := m.contextManager.SetBrowserIDToContext(r.Context(), browserID)
		ctx = m.contextManager.SetSessionToContext(ctx, store)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Browser) resolve(r *http.Request) (uuid.UUID, error) {
	c, err := r.Cookie(m.cookie.Name)
	if err != nil {
		return uuid.Nil, err
	}
	return m.tokens.Resolve(c.Value)
}

func (m *Browser) issue(w http.ResponseWriter) (uuid.UUID, error) {
	browserID, token, err := m.tokens.Issue()
	if err != nil {
		return uuid.Nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	m.logger.Debug("Browser middleware: new browser", "browser_id", browserID)
	return browserID, nil
}
