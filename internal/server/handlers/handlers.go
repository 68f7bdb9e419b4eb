// Package handlers provides HTTP request handlers for the hemicycle API.
package handlers

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/hemicycle"
	"github.com/agentstation/hemicycle/internal/server/cache"
	"github.com/agentstation/hemicycle/internal/server/events"
	"github.com/agentstation/hemicycle/internal/server/sse"
	ws "github.com/agentstation/hemicycle/internal/server/websocket"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	client         hemicycle.Client
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	startTime      time.Time
}

// New creates a new Handlers instance.
func New(
	client hemicycle.Client,
	cache *cache.Cache,
	broker *events.Broker,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
	startTime time.Time,
) *Handlers {
	return &Handlers{
		client:         client,
		cache:          cache,
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader:       upgrader,
		logger:         logger,
		startTime:      startTime,
	}
}
