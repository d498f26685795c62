// Package users holds the sanitized user record kept for an
// authenticated session. Only non-sensitive fields are retained; the
// raw API payload is never persisted.
package users

import (
	"time"

	interrors "github.com/zarvisretail/authkit/internal/errors"
)

// AdminUserType is the user_type code the upstream API assigns to
// administrators. Magic constant carried from the API contract, not
// derived.
const AdminUserType = 2

// User is the sanitized projection of the API's user object. It is
// created at login and read-only until logout or re-login.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	UserType  int       `json:"userType"`
	RoleID    string    `json:"roleId"`
	Avatar    string    `json:"avatar,omitempty"`
	LoginTime time.Time `json:"loginTime,omitempty"`
}

// Validate checks the fields the session store requires before it will
// persist a record. RoleID may be empty; a user without a role simply
// has no permissions to fetch.
func (u User) Validate() error {
	if u.ID == "" || u.Email == "" {
		return interrors.ErrIncompleteUser
	}
	return nil
}

// IsAdmin reports whether the record carries the admin user type.
func (u User) IsAdmin() bool {
	return u.UserType == AdminUserType
}
