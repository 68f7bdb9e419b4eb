// Package remote fetches a dataset over HTTP.
package remote

import (
	"context"

	"github.com/agentstation/hemicycle/internal/transport"
	"github.com/agentstation/hemicycle/pkg/sources"
)

// Source fetches a dataset from a URL.
type Source struct {
	id     sources.ID
	url    string
	client *transport.Client
}

// New creates a remote source for the dataset id. A nil client gets the
// transport defaults.
func New(id sources.ID, url string, client *transport.Client) *Source {
	if client == nil {
		client = transport.New()
	}
	return &Source{id: id, url: url, client: client}
}

// ID returns the dataset this source serves.
func (s *Source) ID() sources.ID {
	return s.id
}

// Location returns the URL.
func (s *Source) Location() string {
	return s.url
}

// Fetch downloads the dataset.
func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	return s.client.Fetch(ctx, string(s.id), s.url)
}
