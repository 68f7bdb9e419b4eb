package hemicycle

import (
	"time"

	"github.com/agentstation/hemicycle/internal/transport"
	"github.com/agentstation/hemicycle/pkg/constants"
	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/reconciler"
	"github.com/agentstation/hemicycle/pkg/sources"
)

// options holds the configuration shared by Load and New.
type options struct {
	// dataset locations: a path, file:// URL or http(s) URL
	votingSource   string
	contactsSource string

	// explicit sources take precedence over locations
	sources map[sources.ID]sources.Source

	// remote fetching
	httpTimeout time.Duration
	auth        transport.Authenticator
	token       string

	loadTimeout time.Duration
	reconcile   []reconciler.Option

	// auto-update configuration
	autoUpdatesEnabled bool
	autoUpdateInterval time.Duration
}

// Option is a function that configures Load and New.
type Option func(*options) error

func defaults() *options {
	return &options{
		votingSource:       constants.DefaultVotingSource,
		contactsSource:     constants.DefaultContactsSource,
		sources:            make(map[sources.ID]sources.Source),
		httpTimeout:        constants.DefaultHTTPTimeout,
		loadTimeout:        constants.LoadTimeout,
		autoUpdateInterval: constants.DefaultRefreshInterval,
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithVotingSource sets where the voting dataset is read from.
func WithVotingSource(location string) Option {
	return func(o *options) error {
		if location == "" {
			return &errors.ValidationError{Field: "voting_source", Message: "cannot be empty"}
		}
		o.votingSource = location
		return nil
	}
}

// WithContactsSource sets where the contact directory is read from.
func WithContactsSource(location string) Option {
	return func(o *options) error {
		if location == "" {
			return &errors.ValidationError{Field: "contacts_source", Message: "cannot be empty"}
		}
		o.contactsSource = location
		return nil
	}
}

// WithSource replaces the source of one dataset, bypassing location parsing.
func WithSource(src sources.Source) Option {
	return func(o *options) error {
		if src == nil || !src.ID().IsValid() {
			return &errors.ValidationError{Field: "source", Value: src, Message: "must be a voting or contacts source"}
		}
		o.sources[src.ID()] = src
		return nil
	}
}

// WithHTTPTimeout bounds each remote dataset download.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return &errors.ValidationError{Field: "http_timeout", Value: d, Message: "must be positive"}
		}
		o.httpTimeout = d
		return nil
	}
}

// WithSourceAuth authenticates remote dataset requests. scheme uses the
// transport.ParseAuth form, e.g. "bearer" or "header:X-Api-Key".
func WithSourceAuth(scheme, token string) Option {
	return func(o *options) error {
		auth, err := transport.ParseAuth(scheme)
		if err != nil {
			return err
		}
		o.auth = auth
		o.token = token
		return nil
	}
}

// WithLoadTimeout bounds the whole fetch-and-reconcile pipeline.
func WithLoadTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return &errors.ValidationError{Field: "load_timeout", Value: d, Message: "must be positive"}
		}
		o.loadTimeout = d
		return nil
	}
}

// WithReconcilerOptions passes options through to the reconciler.
func WithReconcilerOptions(opts ...reconciler.Option) Option {
	return func(o *options) error {
		o.reconcile = append(o.reconcile, opts...)
		return nil
	}
}

// WithAutoUpdates configures whether New starts periodic reloads.
func WithAutoUpdates(enabled bool) Option {
	return func(o *options) error {
		o.autoUpdatesEnabled = enabled
		return nil
	}
}

// WithAutoUpdateInterval configures how often the datasets are reloaded.
func WithAutoUpdateInterval(interval time.Duration) Option {
	return func(o *options) error {
		o.autoUpdateInterval = interval
		return nil
	}
}
