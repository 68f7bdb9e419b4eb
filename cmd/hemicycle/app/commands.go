package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/hemicycle/cmd/hemicycle/cmd/chart"
	"github.com/agentstation/hemicycle/cmd/hemicycle/cmd/export"
	"github.com/agentstation/hemicycle/cmd/hemicycle/cmd/majorities"
	"github.com/agentstation/hemicycle/cmd/hemicycle/cmd/members"
	"github.com/agentstation/hemicycle/cmd/hemicycle/cmd/parties"
	"github.com/agentstation/hemicycle/cmd/hemicycle/cmd/seats"
	"github.com/agentstation/hemicycle/cmd/hemicycle/cmd/serve"
	"github.com/agentstation/hemicycle/internal/cmd/output"
)

// CreateMembersCommand creates the members command with app dependencies.
func (a *App) CreateMembersCommand() *cobra.Command {
	return members.NewCommand(a)
}

// CreateSeatsCommand creates the seats command with app dependencies.
func (a *App) CreateSeatsCommand() *cobra.Command {
	return seats.NewCommand(a)
}

// CreatePartiesCommand creates the parties command with app dependencies.
func (a *App) CreatePartiesCommand() *cobra.Command {
	return parties.NewCommand(a)
}

// CreateMajoritiesCommand creates the majorities command with app dependencies.
func (a *App) CreateMajoritiesCommand() *cobra.Command {
	return majorities.NewCommand(a)
}

// CreateChartCommand creates the chart command with app dependencies.
func (a *App) CreateChartCommand() *cobra.Command {
	return chart.NewCommand(a)
}

// CreateExportCommand creates the export command with app dependencies.
func (a *App) CreateExportCommand() *cobra.Command {
	return export.NewCommand(a)
}

// CreateServeCommand creates the serve command with app dependencies.
func (a *App) CreateServeCommand() *cobra.Command {
	return serve.NewCommand(a)
}

// versionInfo is the structured form of the version command.
type versionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	BuiltBy   string `json:"built_by" yaml:"built_by"`
}

// CreateVersionCommand creates the version command. With -o it prints
// the build details in that format.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if a.config.Format != "" {
				format, err := output.ParseFormat(a.config.Format)
				if err != nil {
					return err
				}
				return output.NewFormatter(format).Format(out, versionInfo{
					Version:   a.version,
					Commit:    a.commit,
					BuildDate: a.date,
					BuiltBy:   a.builtBy,
				})
			}
			fmt.Fprintf(out, "hemicycle %s\n", a.version)
			if a.config.Verbose {
				fmt.Fprintf(out, "  commit:   %s\n", a.commit)
				fmt.Fprintf(out, "  built:    %s\n", a.date)
				fmt.Fprintf(out, "  built by: %s\n", a.builtBy)
			}
			return nil
		},
	}
}
