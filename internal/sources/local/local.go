// Package local reads a dataset from the filesystem.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agentstation/hemicycle/pkg/constants"
	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/logging"
	"github.com/agentstation/hemicycle/pkg/sources"
)

// Source loads a dataset from a file path.
type Source struct {
	id       sources.ID
	path     string
	maxBytes int64
}

// New creates a new local source for the dataset id.
func New(id sources.ID, opts ...Option) *Source {
	s := &Source{id: id, maxBytes: constants.MaxDatasetBytes}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Option configures a local source.
type Option func(*Source)

// WithPath sets the dataset path. A leading "~/" expands to the home directory.
func WithPath(path string) Option {
	return func(s *Source) {
		s.path = expandHome(path)
	}
}

// WithMaxBytes caps how much of the file is read.
func WithMaxBytes(n int64) Option {
	return func(s *Source) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// ID returns the dataset this source serves.
func (s *Source) ID() sources.ID {
	return s.id
}

// Location returns the file path.
func (s *Source) Location() string {
	return s.path
}

// Fetch reads the file.
func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.id, errors.ErrCanceled)
	}
	if s.path == "" {
		return nil, errors.NewConfigError(string(s.id), "no dataset path configured", nil)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.WrapIO("open", s.path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, s.maxBytes+1))
	if err != nil {
		return nil, errors.WrapIO("read", s.path, err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, errors.WrapIO("read", s.path, fmt.Errorf("file exceeds %d bytes", s.maxBytes))
	}

	logging.FromContext(ctx).Debug().
		Str("source", string(s.id)).
		Str("path", s.path).
		Int("bytes", len(data)).
		Msg("Read local dataset")
	return data, nil
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
