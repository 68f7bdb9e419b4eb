// Package server provides the HTTP server for the hemicycle API.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/hemicycle"
	"github.com/agentstation/hemicycle/internal/server/cache"
	"github.com/agentstation/hemicycle/internal/server/events"
	"github.com/agentstation/hemicycle/internal/server/events/adapters"
	"github.com/agentstation/hemicycle/internal/server/middleware"
	"github.com/agentstation/hemicycle/internal/server/sse"
	ws "github.com/agentstation/hemicycle/internal/server/websocket"
	"github.com/agentstation/hemicycle/pkg/constants"
	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/members"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	client         hemicycle.Client
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	limiter        *middleware.RateLimiter
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	startTime      time.Time
}

// New creates a new server instance serving the chamber held by client.
func New(client hemicycle.Client, logger *zerolog.Logger, cfg Config) (*Server, error) {
	if client == nil || client.Chamber() == nil {
		return nil, errors.NewConfigError("server", "a loaded client is required", nil)
	}

	logger.Debug().Msg("Creating new server instance")

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = constants.CacheTTL
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = DefaultConfig().PathPrefix
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)

	// Subscribe transports to broker
	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	broker.Subscribe(adapters.NewSSESubscriber(sseBroadcaster))
	logger.Debug().Msg("WebSocket and SSE transports subscribed to event broker")

	ctx, cancel := context.WithCancel(context.Background())

	server := &Server{
		client:         client,
		cache:          cache.New(cfg.CacheTTL, constants.CacheCleanupInterval),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
	if cfg.RateLimit > 0 {
		server.limiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	server.connectHooks()

	logger.Debug().Msg("Server instance created successfully")
	return server, nil
}

// connectHooks publishes client reload events to the broker.
func (s *Server) connectHooks() {
	s.client.OnMemberAdded(func(slug string, m members.Member) {
		s.broker.Publish(events.MemberAdded, map[string]any{
			"slug":   slug,
			"member": m,
		})
	})

	s.client.OnMemberUpdated(func(slug string, old, updated members.Member) {
		s.broker.Publish(events.MemberUpdated, map[string]any{
			"slug":       slug,
			"old_member": old,
			"new_member": updated,
		})
	})

	s.client.OnMemberRemoved(func(slug string, m members.Member) {
		s.broker.Publish(events.MemberRemoved, map[string]any{
			"slug":   slug,
			"member": m,
		})
	})

	s.client.OnReloaded(func(c *hemicycle.Chamber) {
		// Cached responses describe the previous chamber.
		s.cache.Clear()
		s.broker.Publish(events.ChamberReloaded, map[string]any{
			"members":   c.Len(),
			"bills":     len(c.Bills()),
			"loaded_at": c.LoadedAt,
		})
		s.logger.Info().Int("members", c.Len()).Msg("Chamber reloaded")
	})

	s.logger.Debug().Msg("Client hooks connected to event broker")
}

// Start starts background services (broker, WebSocket hub, SSE broadcaster,
// rate limiter cleanup).
func (s *Server) Start() {
	s.logger.Debug().Msg("Starting background services")

	s.goRun(s.broker.Run)
	s.goRun(s.wsHub.Run)
	s.goRun(s.sseBroadcaster.Run)
	if s.limiter != nil {
		s.goRun(s.limiter.Run)
	}

	s.logger.Debug().Msg("All background services started")
}

func (s *Server) goRun(run func(context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		run(s.ctx)
	}()
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops the background services and waits for them until ctx is
// done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info().Msg("Background services shut down successfully")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return errors.NewTimeoutError("shutdown", "", "background services did not stop")
	}
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Broker returns the event broker for publishing events.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// Config returns the server configuration.
func (s *Server) Config() Config {
	return s.config
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
