// Package serve provides the API server command.
package serve

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/hemicycle"
	"github.com/agentstation/hemicycle/internal/appcontext"
	"github.com/agentstation/hemicycle/internal/server"
	"github.com/agentstation/hemicycle/pkg/constants"
	"github.com/agentstation/hemicycle/pkg/errors"
)

// NewCommand creates the serve command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	def := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "management",
		Short:   "Start the REST API server with WebSocket and SSE support",
		Long: `Start a REST API server for the seat map.

Features:
  - Members, seats, bills, majorities, parties and provinces endpoints
  - POST {prefix}/reload to fetch the datasets again
  - WebSocket ({prefix}/updates/ws) and SSE ({prefix}/updates/stream)
    notifications when a reload adds, changes or removes members
  - Periodic reloads with --refresh
  - In-memory caching of member pages and seat layouts
  - Rate limiting (requests per minute per IP)
  - API key authentication (optional)
  - CORS support for web applications
  - Request logging and panic recovery
  - Graceful shutdown with connection draining

Flags override the server.* keys of the config file and HEMICYCLE_SERVER_*
environment variables.`,
		Example: `  # Start on default port 8080
  hemicycle serve

  # Public data over HTTP, reloaded every 30 minutes
  hemicycle serve --voting https://example.org/data.json --refresh 30m

  # Require an API key and allow browser clients
  hemicycle serve --api-key secret --cors`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd, app)
		},
	}

	// Server configuration flags
	cmd.Flags().Int("port", def.Port, "Server port")
	cmd.Flags().String("host", def.Host, "Bind address")
	cmd.Flags().String("prefix", def.PathPrefix, "API path prefix")

	// CORS flags
	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", nil, "Allowed CORS origins (comma-separated)")

	// Authentication flags
	cmd.Flags().String("api-key", "", "Require this API key (enables authentication)")
	cmd.Flags().String("auth-header", def.AuthHeader, "Authentication header name")

	// Performance flags
	cmd.Flags().Int("rate-limit", def.RateLimit, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", def.CacheTTL, "Cache TTL")
	cmd.Flags().Duration("refresh", 0, "Reload the datasets at this interval (0 to disable)")

	// Timeout flags
	cmd.Flags().Duration("read-timeout", def.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", def.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", def.IdleTimeout, "HTTP idle timeout")

	return cmd
}

// runServer starts the API server.
func runServer(cmd *cobra.Command, app appcontext.Interface) error {
	cfg, err := parseConfig(cmd, app.ServerConfig())
	if err != nil {
		return err
	}
	logger := app.Logger()
	ctx := cmd.Context()

	client, err := serverClient(cmd, app)
	if err != nil {
		return err
	}
	if refresh := mustGetDuration(cmd, "refresh"); refresh > 0 {
		defer func() {
			if err := client.AutoUpdatesOff(); err != nil {
				logger.Warn().Err(err).Msg("Stopping auto-updates failed")
			}
		}()
	}

	logger.Info().
		Int("port", cfg.Port).
		Str("host", cfg.Host).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Bool("auth", cfg.AuthEnabled).
		Int("rate_limit", cfg.RateLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Starting API server")

	srv, err := server.New(client, logger, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return &errors.IOError{Operation: "listen", Path: addr, Err: err}
	}

	httpServer := &http.Server{
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return serve(ctx, httpServer, ln, srv, logger, cmd.ErrOrStderr())
}

// serverClient returns the shared client, or a dedicated auto-updating one
// when --refresh is set.
func serverClient(cmd *cobra.Command, app appcontext.Interface) (hemicycle.Client, error) {
	refresh := mustGetDuration(cmd, "refresh")
	if refresh < 0 {
		return nil, errors.NewValidationError("refresh", refresh, "must not be negative")
	}
	if refresh == 0 {
		return app.Client(cmd.Context())
	}
	return app.ClientWithOptions(cmd.Context(),
		hemicycle.WithAutoUpdates(true),
		hemicycle.WithAutoUpdateInterval(refresh),
	)
}

// parseConfig applies the flags that were set on top of base.
func parseConfig(cmd *cobra.Command, base server.Config) (server.Config, error) {
	cfg := base
	flags := cmd.Flags()

	if flags.Changed("port") {
		cfg.Port = mustGetInt(cmd, "port")
	}
	if flags.Changed("host") {
		cfg.Host = mustGetString(cmd, "host")
	}
	if flags.Changed("prefix") {
		cfg.PathPrefix = mustGetString(cmd, "prefix")
	}
	if flags.Changed("cors") {
		cfg.CORSEnabled = mustGetBool(cmd, "cors")
	}
	if flags.Changed("cors-origins") {
		cfg.CORSOrigins = mustGetStringSlice(cmd, "cors-origins")
		cfg.CORSEnabled = cfg.CORSEnabled || len(cfg.CORSOrigins) > 0
	}
	if flags.Changed("api-key") {
		cfg.APIKey = mustGetString(cmd, "api-key")
	}
	cfg.AuthEnabled = cfg.APIKey != ""
	if flags.Changed("auth-header") {
		cfg.AuthHeader = mustGetString(cmd, "auth-header")
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit = mustGetInt(cmd, "rate-limit")
	}
	if flags.Changed("cache-ttl") {
		cfg.CacheTTL = mustGetDuration(cmd, "cache-ttl")
	}
	if flags.Changed("read-timeout") {
		cfg.ReadTimeout = mustGetDuration(cmd, "read-timeout")
	}
	if flags.Changed("write-timeout") {
		cfg.WriteTimeout = mustGetDuration(cmd, "write-timeout")
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = mustGetDuration(cmd, "idle-timeout")
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return server.Config{}, errors.NewValidationError("port", cfg.Port, "port out of range")
	}
	if cfg.RateLimit < 0 {
		return server.Config{}, errors.NewValidationError("rate-limit", cfg.RateLimit, "must not be negative")
	}
	return cfg, nil
}

// serve runs httpServer on ln until ctx is cancelled, then drains
// connections and stops the background services.
func serve(ctx context.Context, httpServer *http.Server, ln net.Listener, srv *server.Server, logger *zerolog.Logger, out io.Writer) error {
	srv.Start()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
		close(serverErr)
	}()
	fmt.Fprintf(out, "API server listening on http://%s\n", ln.Addr())

	select {
	case err, ok := <-serverErr:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		if stopErr := srv.Shutdown(shutdownCtx); stopErr != nil {
			logger.Warn().Err(stopErr).Msg("Background services shutdown had issues")
		}
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")
	}

	// The parent context is already cancelled
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("Background services shutdown had issues")
	}

	logger.Info().Msg("Server stopped gracefully")
	fmt.Fprintln(out, "API server stopped")
	return nil
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

// mustGetStringSlice retrieves a string slice flag value or panics if the flag doesn't exist.
func mustGetStringSlice(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

// mustGetDuration retrieves a duration flag value or panics if the flag doesn't exist.
func mustGetDuration(cmd *cobra.Command, name string) time.Duration {
	val, err := cmd.Flags().GetDuration(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}
