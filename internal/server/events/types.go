// Package events provides a unified event system for real-time chamber updates.
//
// This package implements a broker pattern that connects the client's hooks
// to multiple transport mechanisms (WebSocket, SSE) through a common event
// pipeline.
package events

import "time"

// EventType represents the type of chamber event.
type EventType string

// Event types for chamber changes.
const (
	// Member events (from client hooks).
	MemberAdded   EventType = "member.added"
	MemberUpdated EventType = "member.updated"
	MemberRemoved EventType = "member.removed"

	// Reload events (from the update loop and the reload endpoint).
	ChamberReloaded EventType = "chamber.reloaded"
	ReloadFailed    EventType = "chamber.reload_failed"

	// Client events (from transport layers).
	ClientConnected EventType = "client.connected"
)

// Event represents a chamber event with type, timestamp, and data.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
