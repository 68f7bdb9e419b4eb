// Package hemicycle provides the main entry point for the legislature seat
// map: it loads the voting record and the contact directory, reconciles them
// into one member list and derives party majorities, attendance and dissent
// statistics and the hemicycle seat layout.
//
// Example usage:
//
//	// One-shot load
//	chamber, err := hemicycle.Load(ctx,
//	    hemicycle.WithVotingSource("data.json"),
//	    hemicycle.WithContactsSource("https://example.org/contacts.json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	seats, err := chamber.Seats(1000)
//
//	// Long-running client with periodic reloads
//	c, err := hemicycle.New(ctx,
//	    hemicycle.WithAutoUpdates(true),
//	    hemicycle.WithAutoUpdateInterval(30*time.Minute),
//	)
//	defer c.AutoUpdatesOff()
//
//	c.OnMemberAdded(func(slug string, m members.Member) {
//	    log.Printf("new member: %s", slug)
//	})
package hemicycle

import (
	"context"
	"sync"
	"time"

	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ Chambers = (*client)(nil)

// Chambers provides access to the current chamber.
type Chambers interface {
	// Chamber returns the most recently loaded chamber.
	Chamber() *Chamber
}

// Chamber returns the most recently loaded chamber. The value is immutable;
// a reload swaps in a new one.
func (c *client) Chamber() *Chamber {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.chamber
}

// Client keeps a chamber loaded and optionally refreshes it in the background.
type Client interface {
	Chambers

	// Updater reloads the datasets on demand
	Updater

	// AutoUpdater provides access to automatic reload controls
	AutoUpdater

	// Hooks provides access to event callback registration
	Hooks
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options

	mu      sync.RWMutex
	chamber *Chamber

	// serializes reloads
	updateMu sync.Mutex

	// auto update state
	autoMu       sync.Mutex
	updateTicker *time.Ticker
	stopCh       chan struct{}
	updateCancel context.CancelFunc
	done         chan struct{}

	hooks *hooks
}

// New loads the chamber and returns a client holding it. When auto-updates
// are enabled the datasets are reloaded every interval until AutoUpdatesOff.
func New(ctx context.Context, opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	c := &client{
		options: o,
		stopCh:  make(chan struct{}),
		hooks:   newHooks(),
	}
	close(c.stopCh)

	chamber, err := load(ctx, o)
	if err != nil {
		return nil, err
	}
	c.chamber = chamber

	if o.autoUpdatesEnabled {
		if err := c.AutoUpdatesOn(); err != nil {
			return nil, errors.WrapResource("start", "auto-updates", "", err)
		}
	}

	logging.FromContext(ctx).Debug().
		Bool("auto_updates", o.autoUpdatesEnabled).
		Dur("interval", o.autoUpdateInterval).
		Msg("Client ready")
	return c, nil
}
