package hemicycle

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/hemicycle/internal/sources/registry"
	"github.com/agentstation/hemicycle/internal/transport"
	"github.com/agentstation/hemicycle/pkg/datasets"
	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/logging"
	"github.com/agentstation/hemicycle/pkg/sources"
)

// Load fetches both datasets concurrently, decodes them and builds the
// Chamber. The pipeline runs only when both fetches succeed: the first
// failure cancels the other fetch and Load returns a *errors.LoadError
// naming the failed source.
func Load(ctx context.Context, opts ...Option) (*Chamber, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}
	return load(ctx, o)
}

func load(ctx context.Context, o *options) (*Chamber, error) {
	ctx, cancel := context.WithTimeout(ctx, o.loadTimeout)
	defer cancel()

	ctx = logging.WithOperation(ctx, "load")
	logger := logging.FromContext(ctx)
	start := time.Now()

	set, err := o.resolve()
	if err != nil {
		return nil, err
	}

	raw, err := fetch(ctx, set)
	if err != nil {
		return nil, err
	}

	voting, err := datasets.DecodeVoting(raw[sources.VotingID])
	if err != nil {
		return nil, errors.NewLoadError(string(sources.VotingID), "decode", err)
	}
	contacts, err := datasets.DecodeContacts(raw[sources.ContactsID])
	if err != nil {
		return nil, errors.NewLoadError(string(sources.ContactsID), "decode", err)
	}

	chamber, err := Build(ctx, contacts, voting, o.reconcile...)
	if err != nil {
		return nil, errors.NewLoadError("datasets", "merge", err)
	}

	logger.Info().
		Int("members", chamber.Len()).
		Int("bills", len(voting.Bills)).
		Int("unmatched", len(chamber.Result.Unmatched)).
		Dur("elapsed", time.Since(start)).
		Msg("Chamber loaded")
	return chamber, nil
}

// resolve turns the configured locations into sources. Sources given with
// WithSource win over locations.
func (o *options) resolve() (*sources.Sources, error) {
	clientOpts := []transport.Option{transport.WithTimeout(o.httpTimeout)}
	if o.auth != nil {
		clientOpts = append(clientOpts, transport.WithAuth(o.auth, o.token))
	}
	client := transport.New(clientOpts...)

	locations := map[sources.ID]string{
		sources.VotingID:   o.votingSource,
		sources.ContactsID: o.contactsSource,
	}
	set := sources.NewSources()
	for _, id := range sources.IDs() {
		if src, ok := o.sources[id]; ok {
			set.Set(id, src)
			continue
		}
		src, err := registry.For(id, locations[id], client)
		if err != nil {
			return nil, errors.NewLoadError(string(id), "configure", err)
		}
		set.Set(id, src)
	}
	return set, nil
}

// fetch retrieves every source concurrently and returns the raw bytes by ID.
func fetch(ctx context.Context, set *sources.Sources) (map[sources.ID][]byte, error) {
	logger := logging.FromContext(ctx)

	var mu sync.Mutex
	raw := make(map[sources.ID][]byte, set.Len())

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range set.List() {
		g.Go(func() error {
			id := src.ID()
			logger.Debug().Str("source", string(id)).Str("location", src.Location()).Msg("Fetching")

			data, err := src.Fetch(logging.WithSource(gctx, string(id)))
			if err != nil {
				logger.Warn().Err(err).Str("source", string(id)).Msg("Source fetch failed")
				return errors.NewLoadError(string(id), "fetch", err)
			}

			mu.Lock()
			raw[id] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return raw, nil
}
