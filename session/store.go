// Package session implements the session-bound persistence of the
// access token, the sanitized user record, and the cached permission
// list. It is the sole authority on whether this client is currently
// authenticated, and the only package that touches storage directly.
//
// Authentication state is bound to the live session by a random
// binding ID written to both the durable and the session-scoped store
// at login. A durable copy without a matching session-scoped copy
// (copied storage reused in another session) reads as unauthenticated
// and is wiped on first access.
package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	interrors "github.com/zarvisretail/authkit/internal/errors"
	"github.com/zarvisretail/authkit/permission"
	"github.com/zarvisretail/authkit/storage"
	"github.com/zarvisretail/authkit/users"
)

// Storage keys, durable side. The session-scoped store only ever holds
// bindingKey.
const (
	tokenKey       = "authToken"
	userKey        = "user"
	authFlagKey    = "isAuthenticated"
	bindingKey     = "sessionId"
	permissionsKey = "permissions"

	authFlagValue = "true"
)

// Store persists authentication state across a durable and a
// session-scoped storage.Store. Every read fails closed: parse errors,
// partial writes, and binding mismatches all read as unauthenticated
// and proactively clear state rather than returning an error.
type Store struct {
	durable storage.Store
	scoped  storage.Store
	nowTime func() time.Time
	newID   func() string
	lock    sync.Mutex
}

// Option modifies a Store at construction time.
type Option func(*Store)

// WithNowTime sets the clock (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// WithBindingIDFunc sets the binding-ID generator (primarily for testing).
func WithBindingIDFunc(idFunc func() string) Option {
	return func(s *Store) {
		s.newID = idFunc
	}
}

// New initializes a Store over the durable and session-scoped stores.
func New(durable, scoped storage.Store, options ...Option) (*Store, error) {
	if durable == nil {
		return nil, errors.New("[session.New] durable store is required")
	}
	if scoped == nil {
		return nil, errors.New("[session.New] session-scoped store is required")
	}

	store := &Store{
		durable: durable,
		scoped:  scoped,
		nowTime: time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range options {
		opt(store)
	}
	return store, nil
}

// SetAuth persists a new authenticated session, overwriting any prior
// one. It stores the token, the sanitized user record stamped with the
// login time, a fresh binding ID in both stores, and finally the
// authenticated flag. Any previously cached permissions are discarded
// so a role switch cannot leak the old role's permissions.
func (s *Store) SetAuth(token string, user users.User) error {
	if token == "" {
		return interrors.ErrEmptyToken
	}
	if err := user.Validate(); err != nil {
		return err
	}

	stored := users.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		UserType:  user.UserType,
		RoleID:    user.RoleID,
		Avatar:    user.Avatar,
		LoginTime: s.nowTime(),
	}
	userJSON, err := json.Marshal(stored)
	if err != nil {
		return errors.Wrap(err, "[Store.SetAuth] marshal user")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	_ = s.durable.Delete(permissionsKey)

	bindingID := s.newID()
	if err := s.scoped.Set(bindingKey, bindingID); err != nil {
		return errors.Wrap(err, "[Store.SetAuth] write session binding")
	}
	if err := s.durable.Set(bindingKey, bindingID); err != nil {
		return errors.Wrap(err, "[Store.SetAuth] write durable binding")
	}
	if err := s.durable.Set(tokenKey, token); err != nil {
		return errors.Wrap(err, "[Store.SetAuth] write token")
	}
	if err := s.durable.Set(userKey, string(userJSON)); err != nil {
		return errors.Wrap(err, "[Store.SetAuth] write user")
	}
	// Flag goes last so a concurrent read never sees the flag without
	// the data behind it.
	if err := s.durable.Set(authFlagKey, authFlagValue); err != nil {
		return errors.Wrap(err, "[Store.SetAuth] write auth flag")
	}
	return nil
}

// Token returns the stored access token, or "" when the session is
// invalid or absent. An invalid binding clears all state as a side
// effect, so a stale session self-heals on first access.
func (s *Store) Token() string {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.sessionValidLocked() {
		s.clearLocked()
		return ""
	}
	token, err := s.durable.Get(tokenKey)
	if err != nil {
		return ""
	}
	return token
}

// User returns the stored user record, or nil when the session is
// invalid, the record is missing, or it cannot be parsed. A corrupt
// record clears all state (fails closed).
func (s *Store) User() *users.User {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.userLocked()
}

func (s *Store) userLocked() *users.User {
	if !s.sessionValidLocked() {
		s.clearLocked()
		return nil
	}
	raw, err := s.durable.Get(userKey)
	if err != nil {
		return nil
	}
	var user users.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.clearLocked()
		return nil
	}
	return &user
}

// IsAuthenticated reports whether the session binding is valid AND a
// token is present AND a parsable user is present AND the explicit
// authenticated flag is set. A partial write fails any one of the four
// checks and reads as unauthenticated.
func (s *Store) IsAuthenticated() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.sessionValidLocked() {
		s.clearLocked()
		return false
	}
	token, err := s.durable.Get(tokenKey)
	if err != nil || token == "" {
		return false
	}
	if s.userLocked() == nil {
		return false
	}
	flag, err := s.durable.Get(authFlagKey)
	if err != nil || flag != authFlagValue {
		return false
	}
	return true
}

// SetPermissions replaces the cached permission list wholesale.
func (s *Store) SetPermissions(list []permission.Permission) error {
	data, err := json.Marshal(list)
	if err != nil {
		return errors.Wrap(err, "[Store.SetPermissions] marshal")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.sessionValidLocked() {
		s.clearLocked()
		return interrors.ErrSessionInvalid
	}
	if err := s.durable.Set(permissionsKey, string(data)); err != nil {
		return errors.Wrap(err, "[Store.SetPermissions] write")
	}
	return nil
}

// Permissions returns the cached permission list, or nil when no cache
// exists or the session is invalid.
func (s *Store) Permissions() []permission.Permission {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.permissionsLocked()
}

func (s *Store) permissionsLocked() []permission.Permission {
	if !s.sessionValidLocked() {
		s.clearLocked()
		return nil
	}
	raw, err := s.durable.Get(permissionsKey)
	if err != nil {
		return nil
	}
	var list []permission.Permission
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		_ = s.durable.Delete(permissionsKey)
		return nil
	}
	return list
}

// ClearPermissions drops the cached permission list only.
func (s *Store) ClearPermissions() {
	s.lock.Lock()
	defer s.lock.Unlock()

	_ = s.durable.Delete(permissionsKey)
}

// HasPermission reports whether the cached list contains the slug.
// No cache means false, not an error.
func (s *Store) HasPermission(slug string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return permission.Has(s.permissionsLocked(), slug)
}

// HasAnyPermission reports whether the cached list contains at least
// one of the slugs.
func (s *Store) HasAnyPermission(slugs []string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return permission.HasAny(s.permissionsLocked(), slugs)
}

// HasAllPermissions reports whether the cached list contains every one
// of the slugs.
func (s *Store) HasAllPermissions(slugs []string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return permission.HasAll(s.permissionsLocked(), slugs)
}

// ClearAuth removes the token, user, authenticated flag, permission
// cache, and both binding copies. Safe to call repeatedly.
func (s *Store) ClearAuth() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.clearLocked()
}

// clearLocked removes the binding pair first so a concurrent reader in
// another process can never observe "flag set, binding absent".
func (s *Store) clearLocked() {
	_ = s.scoped.Delete(bindingKey)
	_ = s.durable.Delete(bindingKey)
	_ = s.durable.Delete(authFlagKey)
	_ = s.durable.Delete(tokenKey)
	_ = s.durable.Delete(userKey)
	_ = s.durable.Delete(permissionsKey)
}

// sessionValidLocked checks the binding invariant: both copies of the
// binding ID exist and are equal.
func (s *Store) sessionValidLocked() bool {
	scopedID, err := s.scoped.Get(bindingKey)
	if err != nil || scopedID == "" {
		return false
	}
	durableID, err := s.durable.Get(bindingKey)
	if err != nil || durableID == "" {
		return false
	}
	return scopedID == durableID
}

// HasRole reports whether the stored user carries the role ID.
func (s *Store) HasRole(roleID string) bool {
	user := s.User()
	return user != nil && user.RoleID == roleID
}

// HasUserType reports whether the stored user carries the user type
// code.
func (s *Store) HasUserType(code int) bool {
	user := s.User()
	return user != nil && user.UserType == code
}

// IsAdmin reports whether the stored user is an administrator.
func (s *Store) IsAdmin() bool {
	return s.HasUserType(users.AdminUserType)
}

// AuthHeaders returns the outbound headers for authenticated API
// calls: Content-Type always, Authorization only when a token exists.
func (s *Store) AuthHeaders() map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
	}
	if token := s.Token(); token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return headers
}
