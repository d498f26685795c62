// Package authkit is the client-side authorization core of the ZARVIS
// retail admin dashboard: session-bound credential storage, an auth
// session manager over the remote admin REST API, and permission-based
// menu and route filtering.
//
// The package itself only assembles the parts; the behavior lives in
// the subpackages:
//
//   - session: durable, session-bound persistence of the access token,
//     sanitized user record, and cached permission list.
//   - auth: login/logout/rehydration orchestration and permission
//     fetching by role.
//   - navigation: menu-tree filtering and page-boundary guarding.
//   - permission: the slug-matching primitive both of the above share.
//   - storage: the key-value capability with in-memory, file, and
//     Redis implementations.
//
// Authentication is deliberately bound to the live session: a random
// binding ID is written to both a durable and a session-scoped store
// at login, and every read requires the two copies to match. Durable
// state copied into another session therefore never authenticates.
package authkit
