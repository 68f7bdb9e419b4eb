// Package seats provides the seats command.
package seats

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/hemicycle/internal/appcontext"
	"github.com/agentstation/hemicycle/internal/cmd/globals"
	"github.com/agentstation/hemicycle/internal/cmd/output"
	"github.com/agentstation/hemicycle/internal/cmd/table"
	"github.com/agentstation/hemicycle/pkg/layout"
	"github.com/agentstation/hemicycle/pkg/parties"
)

// Layout is the structured output of the seats command.
type Layout struct {
	Geometry layout.Geometry `json:"geometry" yaml:"geometry"`
	Height   float64         `json:"height" yaml:"height"`
	Seats    []Seat          `json:"seats" yaml:"seats"`
}

// Seat is one seat and the member sitting in it.
type Seat struct {
	layout.Seat `yaml:",inline"`
	Slug        string        `json:"slug" yaml:"slug"`
	Class       parties.Class `json:"class" yaml:"class"`
}

// NewCommand creates the seats command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var width *float64

	cmd := &cobra.Command{
		Use:     "seats",
		GroupID: "core",
		Short:   "Compute hemicycle seat positions",
		Long: `Seats computes the position of every member's seat on the concentric
arcs of the hemicycle for a container width in pixels. Seat i belongs to
the i-th member in seating order.`,
		Example: `  hemicycle seats               # Default width
  hemicycle seats --width 640   # Medium layout
  hemicycle seats -o json       # Geometry and seats as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := globals.ResolveWidth(*width, app.LayoutWidth())
			if err != nil {
				return err
			}
			chamber, err := app.Chamber(cmd.Context())
			if err != nil {
				return err
			}
			positions, err := chamber.Seats(w)
			if err != nil {
				return err
			}
			geometry, err := layout.GeometryFor(w)
			if err != nil {
				return err
			}

			result := Layout{
				Geometry: geometry,
				Height:   geometry.Height(),
				Seats:    make([]Seat, len(positions)),
			}
			for i, p := range positions {
				result.Seats[i] = Seat{Seat: p, Slug: chamber.Slugs[i], Class: chamber.Members[i].Class}
			}

			out := cmd.OutOrStdout()
			format := output.DetectFormat(app.OutputFormat(), out)
			return output.Render(out, format, result, func(wide bool) table.Data {
				return table.SeatsToTableData(chamber, positions, wide)
			})
		},
	}

	width = globals.AddWidthFlag(cmd)
	return cmd
}
