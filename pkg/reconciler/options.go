package reconciler

import (
	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/matcher"
)

// CompareFunc decides whether a directory name and a voting name refer to
// the same person.
type CompareFunc func(contact, voting matcher.Name) matcher.Kind

// options configures a reconciler.
type options struct {
	compare  CompareFunc
	strategy Strategy
	sort     bool
}

func defaultOptions() *options {
	return &options{
		compare:  matcher.Compare,
		strategy: LastWins(),
		sort:     true,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithCompare replaces the name comparison.
func WithCompare(compare CompareFunc) Option {
	return func(o *options) error {
		if compare == nil {
			return &errors.ValidationError{
				Field:   "compare",
				Message: "cannot be nil",
			}
		}
		o.compare = compare
		return nil
	}
}

// WithStrategy sets how colliding votes for the same bill are resolved.
func WithStrategy(strategy Strategy) Option {
	return func(o *options) error {
		if strategy == nil {
			return &errors.ValidationError{
				Field:   "strategy",
				Message: "cannot be nil",
			}
		}
		o.strategy = strategy
		return nil
	}
}

// WithSeatingOrder toggles the final seating sort. Disabled, members keep
// directory order.
func WithSeatingOrder(enabled bool) Option {
	return func(o *options) error {
		o.sort = enabled
		return nil
	}
}
