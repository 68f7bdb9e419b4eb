// Package app provides the application context and dependency management
// for the hemicycle CLI: configuration, logging and the lazily loaded
// client shared by every command.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/hemicycle"
	"github.com/agentstation/hemicycle/internal/server"
	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/logging"
)

// App represents the hemicycle application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client hemicycle.Client
}

// New creates a new App instance with the given version information.
// Configuration comes from the default locations; a --config flag reloads
// it before the command runs.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Quiet reports whether -q was given.
func (a *App) Quiet() bool {
	return a.config.Quiet
}

// NoColor reports whether colors are disabled.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// LayoutWidth returns the configured default container width.
func (a *App) LayoutWidth() float64 {
	return a.config.LayoutWidth
}

// ServerConfig returns the configured API server settings.
func (a *App) ServerConfig() server.Config {
	return a.config.Server
}

// Client returns the shared client, loading the datasets on first use.
func (a *App) Client(ctx context.Context) (hemicycle.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	c, err := hemicycle.New(logging.WithLogger(ctx, a.logger), a.clientOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}
	a.client = c
	return c, nil
}

// ClientWithOptions creates a new client from the configured options plus
// opts. It is not shared; the caller stops its auto-updates.
func (a *App) ClientWithOptions(ctx context.Context, opts ...hemicycle.Option) (hemicycle.Client, error) {
	all := append(a.clientOptions(), opts...)
	c, err := hemicycle.New(logging.WithLogger(ctx, a.logger), all...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "with custom options", err)
	}
	return c, nil
}

// Chamber returns the current chamber of the shared client.
func (a *App) Chamber(ctx context.Context) (*hemicycle.Chamber, error) {
	c, err := a.Client(ctx)
	if err != nil {
		return nil, err
	}
	return c.Chamber(), nil
}

// Shutdown stops background reloads of the shared client.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	c := a.client
	a.mu.RUnlock()

	if c != nil {
		if err := c.AutoUpdatesOff(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to stop auto-updates during shutdown")
			return err
		}
	}
	return nil
}

// clientOptions constructs client options from the app configuration.
func (a *App) clientOptions() []hemicycle.Option {
	cfg := a.config
	opts := []hemicycle.Option{
		hemicycle.WithVotingSource(cfg.VotingSource),
		hemicycle.WithContactsSource(cfg.ContactsSource),
	}
	if cfg.HTTPTimeout > 0 {
		opts = append(opts, hemicycle.WithHTTPTimeout(cfg.HTTPTimeout))
	}
	if cfg.LoadTimeout > 0 {
		opts = append(opts, hemicycle.WithLoadTimeout(cfg.LoadTimeout))
	}
	if cfg.SourceAuth != "" {
		opts = append(opts, hemicycle.WithSourceAuth(cfg.SourceAuth, cfg.SourceToken))
	}
	if cfg.AutoUpdatesEnabled {
		opts = append(opts,
			hemicycle.WithAutoUpdates(true),
			hemicycle.WithAutoUpdateInterval(cfg.AutoUpdateInterval),
		)
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if err := config.Validate(); err != nil {
			return err
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client (useful for testing).
func WithClient(c hemicycle.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
