package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	apiBaseURLVar      = "API_BASE_URL"
	httpTimeoutVar     = "API_HTTP_TIMEOUT"
	loginPathVar       = "AUTH_LOGIN_PATH"
	logoutPathVar      = "AUTH_LOGOUT_PATH"
	permissionsPathVar = "AUTH_PERMISSIONS_PATH"
	adminUserTypeVar   = "AUTH_ADMIN_USER_TYPE"
	deniedUserTypesVar = "AUTH_DENIED_USER_TYPES"
)

type APIConfig interface {
	GetAPIBaseURL() string
	GetHTTPTimeout() time.Duration
}

type AuthConfig interface {
	GetLoginPath() string
	GetLogoutPath() string
	// GetPermissionsPath returns a path template with a single %s verb
	// for the role ID.
	GetPermissionsPath() string
	GetAdminUserType() int
	GetDeniedUserTypes() []int
}

type EnvVars struct{}

var _ APIConfig = EnvVars{}
var _ AuthConfig = EnvVars{}

func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8080")
}

func (EnvVars) GetHTTPTimeout() time.Duration {
	raw := GetEnv(httpTimeoutVar, "15s")
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

func (EnvVars) GetLoginPath() string {
	return GetEnv(loginPathVar, "api/v1/auth/login")
}

func (EnvVars) GetLogoutPath() string {
	return GetEnv(logoutPathVar, "api/v1/auth/logout")
}

func (EnvVars) GetPermissionsPath() string {
	return GetEnv(permissionsPathVar, "api/v1/roles/%s/permissions")
}

func (EnvVars) GetAdminUserType() int {
	raw := GetEnv(adminUserTypeVar, "2")
	code, err := strconv.Atoi(raw)
	if err != nil {
		return 2
	}
	return code
}

func (EnvVars) GetDeniedUserTypes() []int {
	raw := GetEnv(deniedUserTypesVar, "")
	if raw == "" {
		return nil
	}
	var codes []int
	for _, part := range strings.Split(raw, ",") {
		code, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		codes = append(codes, code)
	}
	return codes
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
