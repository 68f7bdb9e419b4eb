package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/hemicycle/internal/cmd/globals"
	"github.com/agentstation/hemicycle/internal/server"
	"github.com/agentstation/hemicycle/pkg/constants"
	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/layout"
)

// EnvPrefix prefixes every environment variable read through viper, so
// server.port is HEMICYCLE_SERVER_PORT.
const EnvPrefix = "HEMICYCLE"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Datasets
	VotingSource   string
	ContactsSource string
	HTTPTimeout    time.Duration
	LoadTimeout    time.Duration
	SourceAuth     string
	SourceToken    string

	// Background reloads
	AutoUpdatesEnabled bool
	AutoUpdateInterval time.Duration

	// Layout
	LayoutWidth float64

	// API server defaults; serve flags override them
	Server server.Config

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. Environment variables (HEMICYCLE_*)
//  3. .env files
//  4. Config file (configFile, or ~/.hemicycle.yaml, or ./.hemicycle.yaml)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if configFile == "" {
		configFile = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "reading "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".hemicycle")
		// a missing default config file is fine
		_ = v.ReadInConfig()
	}

	serverCfg := server.DefaultConfig()
	serverCfg.Host = v.GetString("server.host")
	serverCfg.Port = v.GetInt("server.port")
	serverCfg.PathPrefix = v.GetString("server.prefix")
	serverCfg.CORSEnabled = v.GetBool("server.cors")
	serverCfg.CORSOrigins = v.GetStringSlice("server.cors_origins")
	serverCfg.APIKey = v.GetString("server.api_key")
	serverCfg.AuthEnabled = serverCfg.APIKey != ""
	serverCfg.RateLimit = v.GetInt("server.rate_limit")
	serverCfg.CacheTTL = v.GetDuration("server.cache_ttl")

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		VotingSource:   v.GetString("voting_source"),
		ContactsSource: v.GetString("contacts_source"),
		HTTPTimeout:    v.GetDuration("http_timeout"),
		LoadTimeout:    v.GetDuration("load_timeout"),
		SourceAuth:     v.GetString("source_auth"),
		SourceToken:    v.GetString("source_token"),

		AutoUpdatesEnabled: v.GetBool("auto_update"),
		AutoUpdateInterval: v.GetDuration("auto_update_interval"),

		LayoutWidth: v.GetFloat64("layout.default_width"),

		Server: serverCfg,

		// LOG_* are shared with pkg/logging
		LogLevel:  firstNonEmpty(v.GetString("log.level"), os.Getenv("LOG_LEVEL")),
		LogFormat: firstNonEmpty(v.GetString("log.format"), getEnvOrDefault("LOG_FORMAT", "auto")),
		LogOutput: firstNonEmpty(v.GetString("log.output"), getEnvOrDefault("LOG_OUTPUT", "stderr")),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	def := server.DefaultConfig()

	v.SetDefault("voting_source", constants.DefaultVotingSource)
	v.SetDefault("contacts_source", constants.DefaultContactsSource)
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("load_timeout", constants.LoadTimeout)
	v.SetDefault("auto_update", false)
	v.SetDefault("auto_update_interval", constants.DefaultRefreshInterval)
	v.SetDefault("layout.default_width", constants.DefaultLayoutWidth)
	v.SetDefault("server.host", def.Host)
	v.SetDefault("server.port", def.Port)
	v.SetDefault("server.prefix", def.PathPrefix)
	v.SetDefault("server.cors", def.CORSEnabled)
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.api_key", "")
	v.SetDefault("server.rate_limit", def.RateLimit)
	v.SetDefault("server.cache_ttl", def.CacheTTL)
}

// Validate checks the values no later stage can recover from.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.VotingSource) == "" {
		return &errors.ValidationError{Field: "voting_source", Message: "cannot be empty"}
	}
	if strings.TrimSpace(c.ContactsSource) == "" {
		return &errors.ValidationError{Field: "contacts_source", Message: "cannot be empty"}
	}
	if _, err := layout.GeometryFor(c.LayoutWidth); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return &errors.ValidationError{Field: "server.port", Value: c.Server.Port, Message: "port out of range"}
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(flags *globals.Flags) {
	c.Verbose = flags.Verbose
	c.Quiet = flags.Quiet
	c.NoColor = c.NoColor || flags.NoColor
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides variables that are already set, so the first
// file wins: .env.local before .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
