package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/hemicycle/internal/cmd/globals"
	"github.com/agentstation/hemicycle/internal/cmd/output"
	"github.com/agentstation/hemicycle/pkg/logging"
)

// Execute runs the hemicycle CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "hemicycle",
		Short:   "Legislature seat map and voting analytics",
		Version: a.version,
		Long: `Hemicycle reconciles a parliamentary voting record with the member
contact directory and derives party majorities, attendance and dissent rates
and a semicircular seat layout.

Datasets are read from local files or HTTP(S) URLs. Results can be printed
as tables, JSON, YAML or CSV, drawn in the terminal, or served over a REST
API with live reload notifications.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	globals.AddFlags(rootCmd)
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.hemicycle.yaml)")
	rootCmd.PersistentFlags().String("voting", "", "voting dataset path or URL (overrides voting_source)")
	rootCmd.PersistentFlags().String("contacts", "", "contact directory path or URL (overrides contacts_source)")

	rootCmd.SetVersionTemplate("hemicycle {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// Flags are defined on the root command, so lookup errors are programming errors
	if configFile := mustGetString(cmd, "config"); configFile != "" {
		config, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	flags := globals.Parse(cmd)
	if _, err := output.ParseFormat(flags.Format); err != nil {
		return err
	}
	a.config.UpdateFromFlags(flags)

	if voting := mustGetString(cmd, "voting"); voting != "" {
		a.config.VotingSource = voting
	}
	if contacts := mustGetString(cmd, "contacts"); contacts != "" {
		a.config.ContactsSource = contacts
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	a.logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("config", a.config.ConfigFile).
		Str("voting", a.config.VotingSource).
		Str("contacts", a.config.ContactsSource).
		Msg("Command setup complete")
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(a.CreateMembersCommand())
	rootCmd.AddCommand(a.CreateSeatsCommand())
	rootCmd.AddCommand(a.CreatePartiesCommand())
	rootCmd.AddCommand(a.CreateMajoritiesCommand())
	rootCmd.AddCommand(a.CreateChartCommand())
	rootCmd.AddCommand(a.CreateExportCommand())

	// Management commands
	rootCmd.AddCommand(a.CreateServeCommand())

	// Utility commands
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
