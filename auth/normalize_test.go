package auth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLoginNestedShape(t *testing.T) {
	data := json.RawMessage(`{"token":"t1","user":{"id":"5","name":"Jane","email":"jane@example.com","user_type":2,"role_id":"r1"}}`)

	token, user, err := normalizeLogin(data)
	require.NoError(t, err)
	require.Equal(t, "t1", token)
	require.Equal(t, "5", user.ID)
	require.Equal(t, "jane@example.com", user.Email)
	require.Equal(t, 2, user.UserType)
	require.Equal(t, "r1", user.RoleID)
}

func TestNormalizeLoginFlattenedShape(t *testing.T) {
	data := json.RawMessage(`{"id":5,"email":"jane@example.com","user_type":2,"role_id":7,"token":"t1"}`)

	token, user, err := normalizeLogin(data)
	require.NoError(t, err)
	require.Equal(t, "t1", token)
	require.Equal(t, "5", user.ID)
	require.Equal(t, "7", user.RoleID)
}

func TestNormalizeLoginMissingToken(t *testing.T) {
	data := json.RawMessage(`{"user":{"id":"5","email":"jane@example.com"}}`)

	_, _, err := normalizeLogin(data)
	require.Error(t, err)
}

func TestNormalizeLoginMissingUser(t *testing.T) {
	data := json.RawMessage(`{"token":"t1"}`)

	_, _, err := normalizeLogin(data)
	require.Error(t, err)
}

func TestNormalizeLoginEmptyPayload(t *testing.T) {
	_, _, err := normalizeLogin(nil)
	require.Error(t, err)

	_, _, err = normalizeLogin(json.RawMessage(`not json`))
	require.Error(t, err)
}
