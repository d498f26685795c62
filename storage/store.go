// Package storage defines the key-value capability that the session
// store persists through. Two scopes exist at runtime: a durable store
// that survives restarts (the localStorage analogue) and a
// session-scoped store that lives only as long as the current session
// (the sessionStorage analogue).
package storage

import "errors"

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a minimal string key-value store. Implementations must be
// safe for concurrent use. Delete on a missing key is not an error.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
