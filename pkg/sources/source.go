// Package sources defines the interfaces and identifiers for the two input
// datasets: the voting record and the member contact directory.
//
// A Source only knows how to produce the raw bytes of its dataset. Decoding
// happens in the datasets package so that local files and remote hosts share
// one code path.
//
// Example usage:
//
//	set := sources.NewSources()
//	set.Set(sources.VotingID, votingSrc)
//	set.Set(sources.ContactsID, contactsSrc)
//
//	src, ok := set.Get(sources.VotingID)
//	if ok {
//	    raw, err := src.Fetch(ctx)
//	}
package sources

import (
	"context"
	"slices"
	"sync"
)

// Sources is a thread-safe container for managing the configured data sources.
type Sources struct {
	mu      sync.RWMutex
	sources map[ID]Source
}

// NewSources creates a new Sources instance.
func NewSources() *Sources {
	return &Sources{
		sources: make(map[ID]Source),
	}
}

// Get returns a source by ID.
func (s *Sources) Get(id ID) (Source, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, found := s.sources[id]
	return src, found
}

// Set sets a source by ID.
func (s *Sources) Set(id ID, src Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[id] = src
}

// Delete deletes a source by ID.
func (s *Sources) Delete(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sources, id)
}

// Len returns the number of sources.
func (s *Sources) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sources)
}

// List returns the configured sources in IDs() order.
func (s *Sources) List() []Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]Source, 0, len(s.sources))
	for _, id := range IDs() {
		if src, ok := s.sources[id]; ok {
			list = append(list, src)
		}
	}
	return list
}

// Missing returns the required IDs that have no source configured.
func (s *Sources) Missing() []ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var missing []ID
	for _, id := range IDs() {
		if _, ok := s.sources[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// ID represents the identifier of a data source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Dataset source IDs.
const (
	VotingID   ID = "voting"
	ContactsID ID = "contacts"
)

// IDs returns all required source IDs.
func IDs() []ID {
	return []ID{
		VotingID,
		ContactsID,
	}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// Source produces the raw bytes of one dataset.
type Source interface {
	// ID returns which dataset this source serves
	ID() ID

	// Location returns the file path or URL the source reads from
	Location() string

	// Fetch retrieves the raw dataset. Implementations honor ctx
	// cancellation and report failures as typed errors.
	Fetch(ctx context.Context) ([]byte, error)
}
