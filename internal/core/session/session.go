// Package session owns the process-wide resolved session: the
// {isAuthenticated, userID, role} triple derived from the latest
// authentication event, and the routing decision built on top of it.
package session

import "github.com/qent/car-rental-system/internal/core/domain"

// Route identifies the navigation tree a client should land on.
type Route string

const (
	RouteOnboarding Route = "Onboarding"
	RouteSignIn     Route = "SignIn"
	RouteUserStack  Route = "UserStack"
	RouteAdminStack Route = "AdminStack"
)

// AuthEvent is a single authentication-state transition. An empty UserID
// means signed out.
type AuthEvent struct {
	UserID string
}

// Session is the resolved state for the latest auth event.
type Session struct {
	IsAuthenticated bool
	UserID          string
	Role            domain.Role
}

// RouteFor decides the initial route from a resolved session. Onboarding is
// tracked independently of auth state and always takes precedence.
func RouteFor(s Session, onboarded bool) Route {
	if !onboarded {
		return RouteOnboarding
	}
	if !s.IsAuthenticated {
		return RouteSignIn
	}
	if s.Role == domain.RoleAdmin {
		return RouteAdminStack
	}
	return RouteUserStack
}
