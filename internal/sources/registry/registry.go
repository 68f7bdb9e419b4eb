// Package registry picks a Source implementation for a dataset location.
// It sits apart from the source implementations to avoid import cycles.
package registry

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/agentstation/hemicycle/internal/sources/local"
	"github.com/agentstation/hemicycle/internal/sources/remote"
	"github.com/agentstation/hemicycle/internal/transport"
	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/sources"
)

// Kind names a source implementation.
type Kind string

// Source kinds.
const (
	KindLocal  Kind = "local"
	KindRemote Kind = "remote"
)

// KindOf reports which implementation serves location.
func KindOf(location string) Kind {
	u, err := url.Parse(location)
	if err != nil {
		return KindLocal
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return KindRemote
	default:
		return KindLocal
	}
}

// For returns the source that reads dataset id from location. HTTP(S) URLs
// are fetched with client; anything else, including file:// URLs, is a path.
func For(id sources.ID, location string, client *transport.Client) (sources.Source, error) {
	if !id.IsValid() {
		return nil, &errors.ValidationError{
			Field:   "source",
			Value:   id,
			Message: fmt.Sprintf("unknown dataset: %s", id),
		}
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.NewConfigError(string(id), "no dataset location configured", nil)
	}

	if KindOf(location) == KindRemote {
		return remote.New(id, location, client), nil
	}
	if rest, ok := strings.CutPrefix(location, "file://"); ok {
		location = rest
	}
	return local.New(id, local.WithPath(location)), nil
}

// Build resolves every dataset in locations into a Sources set. All
// required datasets must be present.
func Build(locations map[sources.ID]string, client *transport.Client) (*sources.Sources, error) {
	set := sources.NewSources()
	for _, id := range sources.IDs() {
		src, err := For(id, locations[id], client)
		if err != nil {
			return nil, err
		}
		set.Set(id, src)
	}
	return set, nil
}
