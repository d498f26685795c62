// Package filestore provides a storage.Store persisted as a single
// JSON file, used as the durable store for desktop/tooling consumers
// of the authorization core.
package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/zarvisretail/authkit/storage"
)

var _ storage.Store = (*FileStore)(nil)

type FileStore struct {
	path   string
	values map[string]string
	lock   sync.Mutex
}

// New loads (or creates) the store backed by the file at path. The
// parent directory is created if needed.
func New(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("[filestore.New] path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "[filestore.New] create data folder")
	}

	fs := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fs, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[filestore.New] read store file")
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &fs.values); err != nil {
			return nil, errors.Wrap(err, "[filestore.New] parse store file")
		}
	}
	return fs, nil
}

func (fs *FileStore) Get(key string) (string, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	value, ok := fs.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

func (fs *FileStore) Set(key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.values[key] = value
	return fs.persist()
}

func (fs *FileStore) Delete(key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if _, ok := fs.values[key]; !ok {
		return nil
	}
	delete(fs.values, key)
	return fs.persist()
}

// persist writes the whole map through a temp file rename so a crash
// mid-write cannot leave a truncated store. Caller holds the lock.
func (fs *FileStore) persist() error {
	data, err := json.Marshal(fs.values)
	if err != nil {
		return errors.Wrap(err, "[filestore.persist] marshal")
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "[filestore.persist] write temp file")
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return errors.Wrap(err, "[filestore.persist] rename")
	}
	return nil
}
