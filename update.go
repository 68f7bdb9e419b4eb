package hemicycle

import (
	"context"
)

// Compile-time interface check to ensure proper implementation.
var _ Updater = (*client)(nil)

// Updater reloads the datasets on demand.
type Updater interface {
	// Update fetches both datasets again and swaps in the new chamber.
	// On failure the current chamber stays in place.
	Update(ctx context.Context) error
}

// Update fetches both datasets again and swaps in the new chamber.
func (c *client) Update(ctx context.Context) error {
	c.updateMu.Lock()
	defer c.updateMu.Unlock()

	next, err := load(ctx, c.options)
	if err != nil {
		return err
	}
	c.setChamber(next)
	return nil
}

// setChamber swaps the chamber and triggers the change hooks.
func (c *client) setChamber(next *Chamber) {
	c.mu.Lock()
	prev := c.chamber
	c.chamber = next
	c.mu.Unlock()

	c.hooks.triggerChamberUpdate(prev, next)
}
