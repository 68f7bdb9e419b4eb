package hemicycle

import (
	"context"
	"time"

	"github.com/agentstation/hemicycle/pkg/constants"
	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoUpdater = (*client)(nil)

// AutoUpdater provides controls for automatic dataset reloads.
type AutoUpdater interface {
	// AutoUpdatesOn begins periodic reloads
	AutoUpdatesOn() error

	// AutoUpdatesOff stops periodic reloads and waits for the loop to exit
	AutoUpdatesOff() error
}

// AutoUpdatesOn begins periodic reloads.
func (c *client) AutoUpdatesOn() error {
	if c.options.autoUpdateInterval <= 0 {
		return &errors.ValidationError{
			Field:   "autoUpdateInterval",
			Value:   c.options.autoUpdateInterval,
			Message: "update interval must be positive",
		}
	}

	// Stop any existing loop first
	if err := c.AutoUpdatesOff(); err != nil {
		return err
	}

	c.autoMu.Lock()
	defer c.autoMu.Unlock()

	c.stopCh = make(chan struct{})
	c.done = make(chan struct{})
	c.updateTicker = time.NewTicker(c.options.autoUpdateInterval)

	ctx, cancel := context.WithCancel(context.Background())
	c.updateCancel = cancel

	go func(parentCtx context.Context, ticker *time.Ticker, stopCh, done chan struct{}) {
		defer close(done)
		for {
			select {
			case <-ticker.C:
				updateCtx, updateCancel := context.WithTimeout(parentCtx, constants.LoadTimeout)
				err := c.Update(updateCtx)
				updateCancel()

				if err != nil {
					if errors.Is(err, context.Canceled) || errors.IsCanceled(err) {
						return
					}
					// keep the previous chamber and try again next tick
					logging.Error().Err(err).Msg("Auto-update failed")
				}
			case <-parentCtx.Done():
				return
			case <-stopCh:
				return
			}
		}
	}(ctx, c.updateTicker, c.stopCh, c.done)

	return nil
}

// AutoUpdatesOff stops periodic reloads.
func (c *client) AutoUpdatesOff() error {
	c.autoMu.Lock()
	if c.updateTicker != nil {
		c.updateTicker.Stop()
		c.updateTicker = nil
	}
	if c.updateCancel != nil {
		c.updateCancel()
		c.updateCancel = nil
	}
	select {
	case <-c.stopCh:
		// Already closed
	default:
		close(c.stopCh)
	}
	done := c.done
	c.done = nil
	c.autoMu.Unlock()

	if done != nil {
		<-done
	}
	return nil
}
