package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/hemicycle"
	"github.com/agentstation/hemicycle/internal/server"
	"github.com/agentstation/hemicycle/pkg/constants"
	"github.com/agentstation/hemicycle/pkg/errors"
)

// Compile-time check.
var _ Interface = (*Mock)(nil)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding field.
// If a field is zero, the method returns a default value.
type Mock struct {
	ClientFunc  func(ctx context.Context) (hemicycle.Client, error)
	ChamberFunc func(ctx context.Context) (*hemicycle.Chamber, error)
	LoggerFunc  func() *zerolog.Logger

	ClientWithOptionsFunc func(ctx context.Context, opts ...hemicycle.Option) (hemicycle.Client, error)

	Format      string
	QuietOutput bool
	Monochrome  bool
	Width       float64
	Server      *server.Config

	VersionFunc func() string
	CommitFunc  func() string
	DateFunc    func() string
	BuiltByFunc func() string
}

// Client returns a client using the mock function.
func (m *Mock) Client(ctx context.Context) (hemicycle.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(ctx)
	}
	return nil, &errors.ConfigError{Component: "client", Message: "no client configured"}
}

// ClientWithOptions uses the mock function, falling back to Client.
func (m *Mock) ClientWithOptions(ctx context.Context, opts ...hemicycle.Option) (hemicycle.Client, error) {
	if m.ClientWithOptionsFunc != nil {
		return m.ClientWithOptionsFunc(ctx, opts...)
	}
	return m.Client(ctx)
}

// Chamber returns a chamber using the mock function, falling back to the
// mock client's chamber.
func (m *Mock) Chamber(ctx context.Context) (*hemicycle.Chamber, error) {
	if m.ChamberFunc != nil {
		return m.ChamberFunc(ctx)
	}
	c, err := m.Client(ctx)
	if err != nil {
		return nil, err
	}
	return c.Chamber(), nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the configured format.
func (m *Mock) OutputFormat() string { return m.Format }

// Quiet reports QuietOutput.
func (m *Mock) Quiet() bool { return m.QuietOutput }

// NoColor reports Monochrome.
func (m *Mock) NoColor() bool { return m.Monochrome }

// LayoutWidth returns Width or the default layout width.
func (m *Mock) LayoutWidth() float64 {
	if m.Width > 0 {
		return m.Width
	}
	return constants.DefaultLayoutWidth
}

// ServerConfig returns Server or the server defaults.
func (m *Mock) ServerConfig() server.Config {
	if m.Server != nil {
		return *m.Server
	}
	return server.DefaultConfig()
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
