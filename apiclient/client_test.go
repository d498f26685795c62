package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zarvisretail/authkit/apiclient"
)

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := apiclient.New("")
	require.Error(t, err)
}

func TestURLJoining(t *testing.T) {
	client, err := apiclient.New("http://api.example.com/")
	require.NoError(t, err)

	require.Equal(t, "http://api.example.com/api/v1/auth/login", client.URL("api/v1/auth/login"))
	require.Equal(t, "http://api.example.com/api/v1/auth/login", client.URL("/api/v1/auth/login"))
}

func TestSuccessEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":{"id":"1"}}`))
	}))
	defer server.Close()

	client, err := apiclient.New(server.URL)
	require.NoError(t, err)

	resp := client.Post(context.Background(), "api/v1/things", map[string]string{"a": "b"})
	require.True(t, resp.Success)
	require.Equal(t, "ok", resp.Message)
	require.JSONEq(t, `{"id":"1"}`, string(resp.Data))
}

func TestSuccessWithoutEnvelopeUsesWholeBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","email":"a@b.c"}`))
	}))
	defer server.Close()

	client, err := apiclient.New(server.URL)
	require.NoError(t, err)

	resp := client.Post(context.Background(), "login", nil)
	require.True(t, resp.Success)
	require.JSONEq(t, `{"id":"1","email":"a@b.c"}`, string(resp.Data))
}

func TestEmptyBodySuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := apiclient.New(server.URL)
	require.NoError(t, err)

	resp := client.Post(context.Background(), "logout", nil)
	require.True(t, resp.Success)
}

func TestErrorStatusWithFieldErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"success":false,"message":"validation failed","errors":{"email":["email is invalid"],"password":"too short"}}`))
	}))
	defer server.Close()

	client, err := apiclient.New(server.URL)
	require.NoError(t, err)

	resp := client.Post(context.Background(), "login", nil)
	require.False(t, resp.Success)
	require.Equal(t, "validation failed", resp.Message)
	require.Equal(t, "email is invalid", resp.Errors["email"])
	require.Equal(t, "too short", resp.Errors["password"])
}

func TestSuccessFalseEnvelopeOn200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"message":"wrong password"}`))
	}))
	defer server.Close()

	client, err := apiclient.New(server.URL)
	require.NoError(t, err)

	resp := client.Post(context.Background(), "login", nil)
	require.False(t, resp.Success)
	require.Equal(t, "wrong password", resp.Message)
}

func TestNonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client, err := apiclient.New(server.URL)
	require.NoError(t, err)

	resp := client.Post(context.Background(), "login", nil)
	require.False(t, resp.Success)
	require.Equal(t, "server error (non-JSON response)", resp.Message)
}

func TestTransportErrorNormalized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client, err := apiclient.New(server.URL)
	require.NoError(t, err)

	resp := client.Post(context.Background(), "login", nil)
	require.False(t, resp.Success)
	require.NotEmpty(t, resp.Message)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client, err := apiclient.New(server.URL,
		apiclient.WithTokenSource(func() string { return "token-123" }))
	require.NoError(t, err)

	resp := client.GetAuth(context.Background(), "api/v1/roles/1/permissions")
	require.True(t, resp.Success)
	require.Equal(t, "Bearer token-123", gotAuth)
}

func TestPostBearerUsesExplicitToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client, err := apiclient.New(server.URL,
		apiclient.WithTokenSource(func() string { return "" }))
	require.NoError(t, err)

	resp := client.PostBearer(context.Background(), "logout", nil, "snapshot-token")
	require.True(t, resp.Success)
	require.Equal(t, "Bearer snapshot-token", gotAuth)
}

func TestRequestBodyIsJSON(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client, err := apiclient.New(server.URL)
	require.NoError(t, err)

	client.Post(context.Background(), "login", map[string]string{"email": "a@b.c"})
	require.Equal(t, "a@b.c", got["email"])
}
