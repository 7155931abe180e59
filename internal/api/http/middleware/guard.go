package middleware

import (
	"net/http"

	apictx "github.com/dtroode/tutordash-web/internal/api/http/context"
	"github.com/dtroode/tutordash-web/internal/guard"
	"github.com/dtroode/tutordash-web/internal/model"
	"github.com/dtroode/tutordash-web/internal/session"
)

// RetryAfterSeconds is sent with pending responses while a session loads.
const RetryAfterSeconds = "1"

// RequireIdentity only lets a request through when the browser's session
// holds the identity class required. A loading session answers 202 so the
// client retries; any other denial redirects.
func RequireIdentity(contextManager *apictx.Manager, required model.Class) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var state session.State
			if store, ok := contextManager.GetSessionFromContext(r.Context()); ok {
				state = store.State()
			}

			decision := guard.Decide(required, state)
			switch decision.Kind {
			case guard.Allow:
				next.ServeHTTP(w, r)
			case guard.Pending:
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", RetryAfterSeconds)
				w.WriteHeader(http.StatusAccepted)
				_, _ = w.Write([]byte(`{"status":"pending"}` + "\n"))
			default:
				http.Redirect(w, r, decision.Target, http.StatusFound)
			}
		})
	}
}
