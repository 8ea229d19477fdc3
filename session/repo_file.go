package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var _ Repo = (*FileRepo)(nil)

// FileRepo persists the session as a JSON object on disk so that it survives
// between CLI invocations. Every write rewrites the whole file through a
// temporary file and a rename.
type FileRepo struct {
	path   string
	values map[string]string
	lock   sync.RWMutex
}

// NewFileRepo loads path if it exists. A missing file is an empty session.
func NewFileRepo(path string) (*FileRepo, error) {
	r := &FileRepo{path: path, values: make(map[string]string)}
	if err := r.load(); err != nil {
		return nil, fmt.Errorf("session.NewFileRepo: %w", err)
	}
	return r, nil
}

func (r *FileRepo) Get(_ context.Context, key string) (string, bool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	v, ok := r.values[key]
	return v, ok, nil
}

func (r *FileRepo) Set(_ context.Context, key, value string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.values[key] = value
	return r.save()
}

func (r *FileRepo) Delete(_ context.Context, key string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.values[key]; !ok {
		return nil
	}
	delete(r.values, key)
	return r.save()
}

func (r *FileRepo) Clear(_ context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.values = make(map[string]string)
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func (r *FileRepo) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, &r.values)
}

// save must be called with the write lock held
func (r *FileRepo) save() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := json.MarshalIndent(r.values, "", "  ")
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return os.Rename(tmp, r.path)
}
