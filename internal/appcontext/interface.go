// Package appcontext provides the shared application context interface
// used by all commands, so command packages depend on this interface rather
// than on the concrete App.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/hemicycle"
	"github.com/agentstation/hemicycle/internal/server"
)

// Interface defines what commands need from the application.
// The App struct from cmd/hemicycle/app implements it; tests use Mock.
type Interface interface {
	// Client returns the shared client, loading the datasets on first use.
	// Concurrent callers get the same instance.
	Client(ctx context.Context) (hemicycle.Client, error)

	// ClientWithOptions creates a separate client from the configured
	// options plus opts. The caller owns it and must stop its auto-updates.
	ClientWithOptions(ctx context.Context, opts ...hemicycle.Option) (hemicycle.Client, error)

	// Chamber returns the current chamber of the shared client.
	Chamber(ctx context.Context) (*hemicycle.Chamber, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Quiet reports whether informational stderr output is suppressed.
	Quiet() bool

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	// LayoutWidth is the container width used when a command gets none.
	LayoutWidth() float64

	// ServerConfig returns the API server configuration from config files
	// and environment; serve flags override it.
	ServerConfig() server.Config

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
