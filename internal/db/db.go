// Package db persists the build manifest used for incremental builds.
package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Record is what the last successful build of an article produced. Settings
// fingerprints the renderer and page options the page was built with.
type Record struct {
	Slug     string
	Hash     string
	Engine   string
	Settings string
	Year     int
	Output   string
	BuiltAt  time.Time
}

// Manifest stores one Record per slug.
type Manifest interface {
	Get(ctx context.Context, slug string) (Record, error)
	Put(ctx context.Context, r Record) error
	Delete(ctx context.Context, slug string) error
	List(ctx context.Context) ([]Record, error)
}

var ErrNotFound = errors.New("not found")

// Store bundles a manifest with the handle that must be closed after use.
type Store struct {
	Manifest Manifest
	closer   io.Closer
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Open returns a Store for url. Supported forms are "mem://" and
// "sqlite://<path>"; a bare path is treated as sqlite.
func Open(ctx context.Context, url string) (*Store, error) {
	switch {
	case url == "" || strings.HasPrefix(url, "mem://"):
		return &Store{Manifest: newMemStore()}, nil
	case strings.HasPrefix(url, "sqlite://"), !strings.Contains(url, "://"):
		m, closer, err := openSQLite(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("open manifest: %w", err)
		}
		return &Store{Manifest: m, closer: closer}, nil
	default:
		return nil, fmt.Errorf("unsupported manifest url %q", url)
	}
}
