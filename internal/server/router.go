package server

import (
	"net/http"
	"strings"

	"github.com/agentstation/hemicycle/internal/server/handlers"
	"github.com/agentstation/hemicycle/internal/server/middleware"
	"github.com/agentstation/hemicycle/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.client,
		s.cache,
		s.broker,
		s.wsHub,
		s.sseBroadcaster,
		s.upgrader,
		s.logger,
		s.startTime,
	)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// get restricts a handler to GET requests.
func get(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		fn(w, r)
	}
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Public health endpoints (no auth required)
	mux.HandleFunc("/health", get(h.HandleHealth))
	mux.HandleFunc(prefix+"/health", get(h.HandleHealth))
	mux.HandleFunc(prefix+"/ready", get(h.HandleReady))

	// Members
	mux.HandleFunc(prefix+"/members", get(h.HandleListMembers))
	mux.HandleFunc(prefix+"/members/", get(func(w http.ResponseWriter, r *http.Request) {
		parts := splitPath(strings.TrimPrefix(r.URL.Path, prefix+"/members/"))
		if len(parts) != 1 {
			response.NotFound(w, "Not found", "Use "+prefix+"/members/{slug}")
			return
		}
		h.HandleGetMember(w, r, parts[0])
	}))
	mux.HandleFunc(prefix+"/provinces", get(h.HandleProvinces))

	// Layout
	mux.HandleFunc(prefix+"/seats", get(h.HandleSeats))

	// Bills and parties
	mux.HandleFunc(prefix+"/bills", get(h.HandleListBills))
	mux.HandleFunc(prefix+"/majorities", get(h.HandleMajorities))
	mux.HandleFunc(prefix+"/majorities/", get(func(w http.ResponseWriter, r *http.Request) {
		billID := extractPathParam(r.URL.Path, prefix+"/majorities/")
		if billID == "" {
			response.NotFound(w, "Not found", "Use "+prefix+"/majorities/{bill}")
			return
		}
		h.HandleGetMajority(w, r, billID)
	}))
	mux.HandleFunc(prefix+"/parties", get(h.HandleParties))

	// Admin endpoints
	mux.HandleFunc(prefix+"/reload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		h.HandleReload(w, r)
	})
	mux.HandleFunc(prefix+"/stats", get(h.HandleStats))

	// Real-time endpoints
	mux.HandleFunc(prefix+"/updates/ws", h.HandleWebSocket)
	mux.HandleFunc(prefix+"/updates/stream", get(h.HandleSSE))
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	if s.limiter != nil {
		handler = middleware.RateLimit(s.limiter)(handler)
	}

	if cfg.AuthEnabled {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.Enabled = true
		authConfig.APIKey = cfg.APIKey
		if cfg.AuthHeader != "" {
			authConfig.HeaderName = cfg.AuthHeader
		}
		authConfig.PublicPaths = []string{"/health", cfg.PathPrefix + "/health", cfg.PathPrefix + "/ready"}
		handler = middleware.Auth(authConfig, s.logger)(handler)
	}

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
			corsConfig.AllowAll = false
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	// Request ID, logging and recovery (always enabled)
	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logger(s.logger),
	)(handler)
}

// extractPathParam extracts path parameter from URL.
func extractPathParam(path, prefix string) string {
	trimmed := strings.TrimPrefix(path, prefix)
	parts := strings.Split(trimmed, "/")
	if len(parts) > 0 {
		return parts[0]
	}
	return ""
}

// splitPath splits a URL path into parts, removing empty strings.
func splitPath(path string) []string {
	parts := []string{}
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
