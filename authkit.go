package authkit

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/zarvisretail/authkit/apiclient"
	"github.com/zarvisretail/authkit/auth"
	"github.com/zarvisretail/authkit/internal/config"
	"github.com/zarvisretail/authkit/navigation"
	"github.com/zarvisretail/authkit/session"
	"github.com/zarvisretail/authkit/storage"
)

// Core bundles the wired-up authorization components for an
// application: the session store, the auth manager, and the route
// guard over the default menu.
type Core struct {
	Sessions *session.Store
	Manager  *auth.Manager
	Guard    *navigation.Guard
}

// Options tunes New beyond what the environment provides.
type Options struct {
	Logger     zerolog.Logger
	HTTPClient *http.Client
}

// New assembles a Core from environment configuration (API base URL,
// endpoint paths, denied user types) and the two storage scopes the
// caller provides.
func New(durable, scoped storage.Store, opts Options) (*Core, error) {
	cfg := config.New()

	sessions, err := session.New(durable, scoped)
	if err != nil {
		return nil, errors.Wrap(err, "[authkit.New] session store")
	}

	clientOptions := []apiclient.Option{
		apiclient.WithTokenSource(sessions.Token),
		apiclient.WithLogger(opts.Logger),
	}
	if opts.HTTPClient != nil {
		clientOptions = append(clientOptions, apiclient.WithHTTPClient(opts.HTTPClient))
	} else {
		clientOptions = append(clientOptions, apiclient.WithHTTPClient(&http.Client{Timeout: cfg.GetHTTPTimeout()}))
	}
	api, err := apiclient.New(cfg.GetAPIBaseURL(), clientOptions...)
	if err != nil {
		return nil, errors.Wrap(err, "[authkit.New] api client")
	}

	manager, err := auth.NewManager(sessions, api,
		auth.WithLogger(opts.Logger),
		auth.WithPaths(cfg.GetLoginPath(), cfg.GetLogoutPath(), cfg.GetPermissionsPath()),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[authkit.New] auth manager")
	}

	guard, err := navigation.NewGuard(sessions,
		navigation.WithDeniedUserTypes(cfg.GetDeniedUserTypes()...))
	if err != nil {
		return nil, errors.Wrap(err, "[authkit.New] guard")
	}

	return &Core{
		Sessions: sessions,
		Manager:  manager,
		Guard:    guard,
	}, nil
}
