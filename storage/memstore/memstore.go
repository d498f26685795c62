// Package memstore provides an in-memory storage.Store. It backs the
// session-scoped side of the session store and serves as the fake for
// the durable side in tests.
package memstore

import (
	"sync"

	"github.com/zarvisretail/authkit/storage"
)

var _ storage.Store = (*MemStore)(nil)

type MemStore struct {
	values map[string]string
	lock   sync.RWMutex
}

func New() *MemStore {
	return &MemStore{
		values: make(map[string]string),
	}
}

func (ms *MemStore) Get(key string) (string, error) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()

	value, ok := ms.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

func (ms *MemStore) Set(key, value string) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()

	ms.values[key] = value
	return nil
}

func (ms *MemStore) Delete(key string) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()

	delete(ms.values, key)
	return nil
}

// Len reports the number of stored keys. Used by tests to assert that
// clearing really removes everything.
func (ms *MemStore) Len() int {
	ms.lock.RLock()
	defer ms.lock.RUnlock()

	return len(ms.values)
}
