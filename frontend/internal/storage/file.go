// Package storage persists the client's key/value store in a JSON file.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// File is an apiclient.TokenStore backed by a JSON object on disk. Every
// operation takes an exclusive lock on a sibling .lock file, so several
// processes may share one store; the last write wins.
type File struct {
	path string
	lock *flock.Flock
}

func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &File{path: path, lock: flock.New(path + ".lock")}, nil
}

// DefaultPath is the store location under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "reactform", "store.json"), nil
}

func (f *File) Get(key string) (string, error) {
	var value string
	err := f.withLock(func() error {
		values, err := f.read()
		if err != nil {
			return err
		}
		value = values[key]
		return nil
	})
	return value, err
}

func (f *File) Set(key, value string) error {
	return f.withLock(func() error {
		values, err := f.read()
		if err != nil {
			return err
		}
		values[key] = value
		return f.write(values)
	})
}

func (f *File) Delete(key string) error {
	return f.withLock(func() error {
		values, err := f.read()
		if err != nil {
			return err
		}
		if _, ok := values[key]; !ok {
			return nil
		}
		delete(values, key)
		return f.write(values)
	})
}

func (f *File) withLock(fn func() error) error {
	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock store: %w", err)
	}
	defer f.lock.Unlock()
	return fn()
}

func (f *File) read() (map[string]string, error) {
	values := map[string]string{}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("store %s is corrupted: %w", f.path, err)
	}
	return values, nil
}

// write replaces the file atomically; the token is a secret, so 0600.
func (f *File) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}
