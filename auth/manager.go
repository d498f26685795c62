// Package auth implements the session manager: the only component
// permitted to change authentication state. It bridges the remote
// admin API to the session store and exposes the current state to UI
// collaborators.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/zarvisretail/authkit/apiclient"
	"github.com/zarvisretail/authkit/permission"
	"github.com/zarvisretail/authkit/session"
	"github.com/zarvisretail/authkit/users"
)

// State is the manager's authentication state.
type State int

const (
	StateInitializing State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Credentials is the login input. Format validation beyond non-empty is
// a UI-layer concern.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Result is the uniform login outcome. Network errors, malformed
// payloads, and explicit API rejection all normalize to Success=false;
// Login never returns a Go error for expected failure modes.
type Result struct {
	Success bool
	Message string
	Errors  map[string]string
}

// Listener is notified on every state transition.
type Listener func(State)

// Manager orchestrates login, logout, and session rehydration.
type Manager struct {
	sessions        *session.Store
	api             *apiclient.Client
	loginPath       string
	logoutPath      string
	permissionsPath string
	log             zerolog.Logger

	lock      sync.Mutex
	state     State
	listeners []Listener
}

// Option modifies a Manager at construction time.
type Option func(*Manager)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.log = logger
	}
}

// WithPaths overrides the API endpoint paths. permissionsPath must
// carry a single %s verb for the role ID.
func WithPaths(loginPath, logoutPath, permissionsPath string) Option {
	return func(m *Manager) {
		m.loginPath = loginPath
		m.logoutPath = logoutPath
		m.permissionsPath = permissionsPath
	}
}

// NewManager initializes a Manager with required dependencies.
func NewManager(sessions *session.Store, api *apiclient.Client, options ...Option) (*Manager, error) {
	if sessions == nil {
		return nil, errors.New("[NewManager] session store is required")
	}
	if api == nil {
		return nil, errors.New("[NewManager] api client is required")
	}

	manager := &Manager{
		sessions:        sessions,
		api:             api,
		loginPath:       "api/v1/auth/login",
		logoutPath:      "api/v1/auth/logout",
		permissionsPath: "api/v1/roles/%s/permissions",
		log:             zerolog.Nop(),
		state:           StateInitializing,
	}
	for _, opt := range options {
		opt(manager)
	}
	return manager, nil
}

// Init rehydrates authentication state from the session store. Call it
// once at application start. A valid persisted session transitions to
// Authenticated and fetches permissions if they are not already cached;
// anything else transitions to Unauthenticated.
func (m *Manager) Init(ctx context.Context) {
	if !m.sessions.IsAuthenticated() {
		m.setState(StateUnauthenticated)
		return
	}

	if m.sessions.Permissions() == nil {
		if user := m.sessions.User(); user != nil && user.RoleID != "" {
			if err := m.fetchPermissions(ctx, user.RoleID); err != nil {
				m.log.Warn().Err(err).Msg("permission fetch during init failed")
			}
		}
	}
	m.setState(StateAuthenticated)
}

// State returns the manager's current state.
func (m *Manager) State() State {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.state
}

// IsAuthenticated reports the session store's verdict.
func (m *Manager) IsAuthenticated() bool {
	return m.sessions.IsAuthenticated()
}

// CurrentUser returns the stored user record, or nil.
func (m *Manager) CurrentUser() *users.User {
	return m.sessions.User()
}

// Subscribe registers a listener for state transitions.
func (m *Manager) Subscribe(listener Listener) {
	if listener == nil {
		return
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.listeners = append(m.listeners, listener)
}

// Login authenticates against the remote API. On success the session
// store is populated, permissions for the user's role are fetched, and
// the state becomes Authenticated. On any failure the prior session, if
// one exists, is left untouched.
func (m *Manager) Login(ctx context.Context, credentials Credentials) Result {
	resp := m.api.Post(ctx, m.loginPath, credentials)
	if !resp.Success {
		return failure(resp.Message, resp.Errors)
	}

	token, user, err := normalizeLogin(resp.Data)
	if err != nil {
		m.log.Warn().Err(err).Msg("malformed login response")
		return failure("login response missing user or token", nil)
	}

	if err := m.sessions.SetAuth(token, user); err != nil {
		m.log.Error().Err(err).Msg("persisting session failed")
		return failure("could not persist session", nil)
	}

	if user.RoleID != "" {
		if err := m.fetchPermissions(ctx, user.RoleID); err != nil {
			// Fail closed: the user simply has no permissions until a
			// refresh succeeds.
			m.log.Warn().Err(err).Str("roleId", user.RoleID).Msg("permission fetch after login failed")
		}
	}

	m.setState(StateAuthenticated)
	m.log.Info().Str("email", user.Email).Msg("login succeeded")

	message := resp.Message
	if message == "" {
		message = "login successful"
	}
	return Result{Success: true, Message: message}
}

// Logout clears the local session and transitions to Unauthenticated.
// The API notification is best effort: it runs after the local clear
// with a snapshot of the token, and a failure is logged, never
// surfaced.
func (m *Manager) Logout(ctx context.Context) {
	token := m.sessions.Token()

	m.sessions.ClearAuth()
	m.setState(StateUnauthenticated)

	if token == "" {
		return
	}
	go func() {
		resp := m.api.PostBearer(context.WithoutCancel(ctx), m.logoutPath, nil, token)
		if !resp.Success {
			m.log.Warn().Str("message", resp.Message).Msg("logout notification failed")
		}
	}()
}

// RefreshPermissions re-fetches the permission list for the current
// user's role, bypassing the cache.
func (m *Manager) RefreshPermissions(ctx context.Context) error {
	user := m.sessions.User()
	if user == nil || user.RoleID == "" {
		return errors.New("[Manager.RefreshPermissions] no authenticated user with a role")
	}
	return m.fetchPermissions(ctx, user.RoleID)
}

// fetchPermissions loads the permission list for roleID and caches it.
// Before writing it re-validates that the session still belongs to the
// role that initiated the fetch, so a response arriving after a logout
// or role switch cannot resurrect or pollute a session.
func (m *Manager) fetchPermissions(ctx context.Context, roleID string) error {
	endpoint := fmt.Sprintf(m.permissionsPath, url.PathEscape(roleID))
	resp := m.api.GetAuth(ctx, endpoint)
	if !resp.Success {
		return errors.Errorf("[Manager.fetchPermissions] %s", resp.Message)
	}

	var list []permission.Permission
	if err := json.Unmarshal(resp.Data, &list); err != nil {
		return errors.Wrap(err, "[Manager.fetchPermissions] parse permissions")
	}

	current := m.sessions.User()
	if current == nil || current.RoleID != roleID {
		m.log.Debug().Str("roleId", roleID).Msg("discarding stale permission response")
		return nil
	}
	if err := m.sessions.SetPermissions(list); err != nil {
		m.log.Debug().Err(err).Msg("discarding permission response for invalid session")
		return nil
	}
	return nil
}

func (m *Manager) setState(next State) {
	m.lock.Lock()
	if m.state == next {
		m.lock.Unlock()
		return
	}
	m.state = next
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.lock.Unlock()

	for _, listener := range listeners {
		listener(next)
	}
}

func failure(message string, fieldErrors map[string]string) Result {
	if message == "" {
		message = "login failed"
	}
	if fieldErrors == nil {
		fieldErrors = map[string]string{"general": message}
	}
	return Result{Success: false, Message: message, Errors: fieldErrors}
}
