// Package guard decides whether a view may be shown for the current session.
package guard

import (
	"github.com/dtroode/tutordash-web/internal/model"
	"github.com/dtroode/tutordash-web/internal/session"
)

// Routes the guard redirects to.
const (
	RouteLanding          = "/"
	RouteParentDashboard  = "/parent-dashboard"
	RouteStudentDashboard = "/student-dashboard"
)

// Kind is the outcome of a guard decision.
type Kind int

const (
	// Pending means the session is still loading; render nothing yet.
	Pending Kind = iota
	// Redirect means send the visitor to Target.
	Redirect
	// Allow means render the protected view.
	Allow
)

func (k Kind) String() string {
	switch k {
	case Pending:
		return "pending"
	case Redirect:
		return "redirect"
	case Allow:
		return "allow"
	default:
		return "unknown"
	}
}

// Decision is what Decide returns. Target is set only for Redirect.
type Decision struct {
	Kind   Kind
	Target string
}

// Decide evaluates required against a session snapshot. It never errors and
// has no side effects.
func Decide(required model.Class, state session.State) Decision {
	if state.Loading {
		return Decision{Kind: Pending}
	}
	if !state.IsAuthenticated() {
		return redirect(RouteLanding)
	}

	switch required {
	case model.ClassParent:
		if state.IsParent() {
			return Decision{Kind: Allow}
		}
	case model.ClassStudent:
		if state.IsStudent() {
			return Decision{Kind: Allow}
		}
	}

	return redirect(Home(state))
}

// Home is the dashboard of the identity the session actually holds, or the
// landing page when it holds neither usable identity.
func Home(state session.State) string {
	switch {
	case state.IsParent():
		return RouteParentDashboard
	case state.IsStudent():
		return RouteStudentDashboard
	default:
		return RouteLanding
	}
}

func redirect(target string) Decision {
	return Decision{Kind: Redirect, Target: target}
}
