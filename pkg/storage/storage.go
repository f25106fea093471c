package storage

import (
	"context"
	"fmt"
	"strings"
)

// Storage reads and writes whole files addressed by a slash-separated path.
type Storage interface {
	// Put writes data to path, replacing any existing file.
	Put(ctx context.Context, path string, data []byte) error

	// Get returns the content stored at path, or ErrNotFound.
	Get(ctx context.Context, path string) ([]byte, error)

	// Delete removes the file at path, or returns ErrNotFound.
	Delete(ctx context.Context, path string) error

	// Exists reports whether a file is stored at path.
	Exists(ctx context.Context, path string) (bool, error)
}

// Backend names accepted by Config.Driver.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// DefaultDir is the local storage root.
const DefaultDir = "storage/app"

// Config selects and configures a backend.
type Config struct {
	// Driver is "local" (default) or "s3".
	Driver string `yaml:"driver"`

	// Dir is the local storage root.
	Dir string `yaml:"dir"`

	S3 S3Config `yaml:"s3"`
}

// FromConfig builds the backend named by cfg.Driver.
func FromConfig(cfg Config) (Storage, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverLocal:
		return NewLocal(cfg.Dir), nil
	case DriverS3:
		return NewS3(cfg.S3)
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrInvalidConfig, cfg.Driver)
	}
}
