package navigation

import (
	"github.com/pkg/errors"
)

// Access is a page's entry requirement.
type Access struct {
	RequiredPermissions []string
	RequireAll          bool
}

// Decision is the guard's verdict. It is a plain value, never an
// error; the page-level collaborator turns a negative decision into a
// redirect.
type Decision int

const (
	DecisionAllow Decision = iota
	// DecisionRequireLogin means there is no valid session.
	DecisionRequireLogin
	// DecisionDenied means the session is valid but lacks the required
	// permissions or carries a denied user type.
	DecisionDenied
)

// Authority is what the guard needs to know about the current session.
// *session.Store satisfies it.
type Authority interface {
	IsAuthenticated() bool
	HasAnyPermission(slugs []string) bool
	HasAllPermissions(slugs []string) bool
	HasUserType(code int) bool
}

// Guard gates whole-page access using the same matching primitive as
// the menu filter.
type Guard struct {
	authority       Authority
	deniedUserTypes []int
}

// GuardOption modifies a Guard at construction time.
type GuardOption func(*Guard)

// WithDeniedUserTypes configures user-type codes that are refused
// entry regardless of permissions.
func WithDeniedUserTypes(codes ...int) GuardOption {
	return func(g *Guard) {
		g.deniedUserTypes = codes
	}
}

// NewGuard initializes a Guard over the session authority.
func NewGuard(authority Authority, options ...GuardOption) (*Guard, error) {
	if authority == nil {
		return nil, errors.New("[NewGuard] authority is required")
	}

	guard := &Guard{authority: authority}
	for _, opt := range options {
		opt(guard)
	}
	return guard, nil
}

// Check evaluates page access for the current session.
func (g *Guard) Check(access Access) Decision {
	if !g.authority.IsAuthenticated() {
		return DecisionRequireLogin
	}
	for _, code := range g.deniedUserTypes {
		if g.authority.HasUserType(code) {
			return DecisionDenied
		}
	}
	if len(access.RequiredPermissions) == 0 {
		return DecisionAllow
	}
	if !permissionsMatch(g.authority, access) {
		return DecisionDenied
	}
	return DecisionAllow
}

// Allow is a convenience wrapper over Check.
func (g *Guard) Allow(access Access) bool {
	return g.Check(access) == DecisionAllow
}

func permissionsMatch(authority Authority, access Access) bool {
	if access.RequireAll {
		return authority.HasAllPermissions(access.RequiredPermissions)
	}
	return authority.HasAnyPermission(access.RequiredPermissions)
}
