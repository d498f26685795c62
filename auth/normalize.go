package auth

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/zarvisretail/authkit/users"
)

// flexString decodes a JSON string or number into a string. The API is
// inconsistent about whether IDs are numbers or strings.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

// wireUser is the API's user object. In the flattened login shape the
// token rides along in the same object.
type wireUser struct {
	ID       flexString  `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	UserType json.Number `json:"user_type"`
	RoleID   flexString  `json:"role_id"`
	Avatar   string      `json:"avatar"`
	Token    string      `json:"token"`
}

func (w wireUser) toUser() users.User {
	userType, _ := w.UserType.Int64()
	return users.User{
		ID:       string(w.ID),
		Name:     w.Name,
		Email:    w.Email,
		UserType: int(userType),
		RoleID:   string(w.RoleID),
		Avatar:   w.Avatar,
	}
}

// normalizeLogin inspects the login payload shape once and emits the
// canonical token + user pair. Two shapes are tolerated:
//
//	{"token": "...", "user": {...}}          (nested)
//	{"id": ..., "email": ..., "token": ...}  (flattened)
//
// The ambiguity stops here; nothing past this function sees the wire
// shape.
func normalizeLogin(data json.RawMessage) (string, users.User, error) {
	if len(data) == 0 {
		return "", users.User{}, errors.New("[normalizeLogin] empty login payload")
	}

	var nested struct {
		Token string    `json:"token"`
		User  *wireUser `json:"user"`
	}
	if err := json.Unmarshal(data, &nested); err == nil && nested.User != nil && nested.Token != "" {
		user := nested.User.toUser()
		if user.ID == "" || user.Email == "" {
			return "", users.User{}, errors.New("[normalizeLogin] user missing id or email")
		}
		return nested.Token, user, nil
	}

	var flat wireUser
	if err := json.Unmarshal(data, &flat); err != nil {
		return "", users.User{}, errors.Wrap(err, "[normalizeLogin] parse login payload")
	}
	if flat.Token == "" || flat.ID == "" || flat.Email == "" {
		return "", users.User{}, errors.New("[normalizeLogin] payload missing user or token")
	}
	return flat.Token, flat.toUser(), nil
}
