package storage

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// Local stores files below a root directory on disk.
//
// Paths are joined to the root as given. Local does not confine them to
// the root, so never pass user input unchecked.
type Local struct {
	dir string
}

var _ Storage = (*Local)(nil)

// NewLocal returns a Local rooted at dir, or DefaultDir when dir is empty.
func NewLocal(dir string) *Local {
	if dir == "" {
		dir = DefaultDir
	}
	return &Local{dir: dir}
}

// Dir returns the root directory.
func (l *Local) Dir() string {
	return l.dir
}

func (l *Local) file(path string) string {
	return filepath.Join(l.dir, filepath.FromSlash(path))
}

// Put writes data atomically: readers see the old file or the new one, never a partial write.
func (l *Local) Put(_ context.Context, path string, data []byte) error {
	full := l.file(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	if err := atomic.WriteFile(full, bytes.NewReader(data)); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

func (l *Local) Get(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(l.file(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Join(ErrNotFound, err)
		}
		return nil, errors.Join(ErrReadFailed, err)
	}
	return data, nil
}

func (l *Local) Delete(_ context.Context, path string) error {
	if err := os.Remove(l.file(path)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Join(ErrNotFound, err)
		}
		return errors.Join(ErrDeleteFailed, err)
	}
	return nil
}

func (l *Local) Exists(_ context.Context, path string) (bool, error) {
	info, err := os.Stat(l.file(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.Join(ErrReadFailed, err)
	}
	return !info.IsDir(), nil
}
