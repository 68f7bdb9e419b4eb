// Package chart provides the chart command.
package chart

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/hemicycle/internal/appcontext"
	"github.com/agentstation/hemicycle/internal/cmd/chart"
	"github.com/agentstation/hemicycle/internal/cmd/globals"
)

// NewCommand creates the chart command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		width *float64
		cols  int
		flags *globals.MemberFlags
	)

	cmd := &cobra.Command{
		Use:     "chart",
		Aliases: []string{"draw"},
		GroupID: "core",
		Short:   "Draw the hemicycle in the terminal",
		Long: `Chart draws every seat of the hemicycle as a party-colored glyph.
Member filters dim the seats they do not match. With --no-color each seat
shows the first letter of its party class instead.`,
		Example: `  hemicycle chart
  hemicycle chart --cols 120 --party chp
  hemicycle chart --search demir --no-color`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := globals.ResolveWidth(*width, app.LayoutWidth())
			if err != nil {
				return err
			}
			highlight, err := flags.Filter()
			if err != nil {
				return err
			}
			chamber, err := app.Chamber(cmd.Context())
			if err != nil {
				return err
			}
			return chart.Render(cmd.OutOrStdout(), chamber, chart.Options{
				Width:     w,
				Cols:      cols,
				NoColor:   app.NoColor(),
				Highlight: highlight,
			})
		},
	}

	width = globals.AddWidthFlag(cmd)
	cmd.Flags().IntVar(&cols, "cols", chart.DefaultCols, "Chart width in terminal columns")
	flags = globals.AddMemberFlags(cmd)
	return cmd
}
