// Package parties provides the parties command.
package parties

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/hemicycle/internal/appcontext"
	"github.com/agentstation/hemicycle/internal/cmd/output"
	"github.com/agentstation/hemicycle/internal/cmd/table"
)

// NewCommand creates the parties command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "parties",
		Aliases: []string{"party"},
		GroupID: "core",
		Short:   "Show party attendance and dissent",
		Long: `Parties aggregates the members of every party class and ranks the
parties by dissent rate, highest first. Independents have no dissent rate
and are listed last.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chamber, err := app.Chamber(cmd.Context())
			if err != nil {
				return err
			}
			if !app.Quiet() {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d parties, %d members, %d bills\n",
					len(chamber.PartyStats), chamber.Len(), len(chamber.Bills()))
			}

			w := cmd.OutOrStdout()
			format := output.DetectFormat(app.OutputFormat(), w)
			return output.Render(w, format, chamber.PartyStats, func(wide bool) table.Data {
				return table.PartiesToTableData(chamber.PartyStats, wide)
			})
		},
	}
}
