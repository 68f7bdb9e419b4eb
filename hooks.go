package hemicycle

import (
	"reflect"
	"sync"

	"github.com/agentstation/hemicycle/pkg/members"
)

// Hook function types for member events. Members are keyed by slug, so a
// renamed member shows up as one removal and one addition.
type (
	// MemberAddedHook is called when a reload brings a new member
	MemberAddedHook func(slug string, member members.Member)

	// MemberUpdatedHook is called when a member's record or votes changed
	MemberUpdatedHook func(slug string, old, new members.Member)

	// MemberRemovedHook is called when a member is gone after a reload
	MemberRemovedHook func(slug string, member members.Member)

	// ReloadedHook is called after every successful reload
	ReloadedHook func(chamber *Chamber)
)

// Compile-time interface check to ensure proper implementation.
var _ Hooks = (*client)(nil)

// Hooks registers callbacks for chamber changes.
type Hooks interface {
	OnMemberAdded(MemberAddedHook)
	OnMemberUpdated(MemberUpdatedHook)
	OnMemberRemoved(MemberRemovedHook)
	OnReloaded(ReloadedHook)
}

// hooks manages event callbacks for chamber changes
type hooks struct {
	mu              sync.RWMutex
	onMemberAdded   []MemberAddedHook
	onMemberUpdated []MemberUpdatedHook
	onMemberRemoved []MemberRemovedHook
	onReloaded      []ReloadedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnMemberAdded registers a callback for when members are added.
func (c *client) OnMemberAdded(fn MemberAddedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onMemberAdded = append(c.hooks.onMemberAdded, fn)
}

// OnMemberUpdated registers a callback for when members change.
func (c *client) OnMemberUpdated(fn MemberUpdatedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onMemberUpdated = append(c.hooks.onMemberUpdated, fn)
}

// OnMemberRemoved registers a callback for when members are removed.
func (c *client) OnMemberRemoved(fn MemberRemovedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onMemberRemoved = append(c.hooks.onMemberRemoved, fn)
}

// OnReloaded registers a callback for every successful reload.
func (c *client) OnReloaded(fn ReloadedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onReloaded = append(c.hooks.onReloaded, fn)
}

// triggerChamberUpdate compares two chambers by slug and fires the hooks.
func (h *hooks) triggerChamberUpdate(prev, next *Chamber) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if prev != nil {
		for i, slug := range next.Slugs {
			j, existed := prev.Index(slug)
			if !existed {
				for _, hook := range h.onMemberAdded {
					hook(slug, next.Members[i])
				}
				continue
			}
			if !reflect.DeepEqual(prev.Members[j], next.Members[i]) {
				for _, hook := range h.onMemberUpdated {
					hook(slug, prev.Members[j], next.Members[i])
				}
			}
		}

		for j, slug := range prev.Slugs {
			if _, ok := next.Index(slug); !ok {
				for _, hook := range h.onMemberRemoved {
					hook(slug, prev.Members[j])
				}
			}
		}
	}

	for _, hook := range h.onReloaded {
		hook(next)
	}
}
