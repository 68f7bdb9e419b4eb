// Package majorities provides the majorities command.
package majorities

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/hemicycle"
	"github.com/agentstation/hemicycle/internal/appcontext"
	"github.com/agentstation/hemicycle/internal/cmd/output"
	"github.com/agentstation/hemicycle/internal/cmd/table"
	"github.com/agentstation/hemicycle/pkg/ballots"
	"github.com/agentstation/hemicycle/pkg/datasets"
	"github.com/agentstation/hemicycle/pkg/parties"
)

// BillMajorities is the majority of every party on one bill.
type BillMajorities struct {
	Bill       datasets.Bill                     `json:"bill" yaml:"bill"`
	Majorities map[parties.Class]ballots.Outcome `json:"majorities" yaml:"majorities"`
}

// NewCommand creates the majorities command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "majorities [bill-id]",
		Aliases: []string{"majority", "bills"},
		GroupID: "core",
		Short:   "Show each party's majority vote per bill",
		Long: `Majorities shows, for every catalog bill, the outcome most members of
each party cast. Ties resolve to Kabul, then Ret, then Çekimser. Parties
with no cast vote on a bill have no majority for it.`,
		Example: `  hemicycle majorities             # Every bill
  hemicycle majorities 2024-101    # One bill`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chamber, err := app.Chamber(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			format := output.DetectFormat(app.OutputFormat(), w)

			if len(args) == 1 {
				one, err := forBill(chamber, args[0])
				if err != nil {
					return err
				}
				return output.Render(w, format, one, func(bool) table.Data {
					return table.MajorityToTableData(chamber, one.Majorities)
				})
			}

			all := make([]BillMajorities, 0, len(chamber.Bills()))
			for _, bill := range chamber.Bills() {
				one, err := forBill(chamber, bill.ID)
				if err != nil {
					return err
				}
				all = append(all, one)
			}
			return output.Render(w, format, all, func(wide bool) table.Data {
				return table.MajoritiesToTableData(chamber, wide)
			})
		},
	}
}

func forBill(chamber *hemicycle.Chamber, billID string) (BillMajorities, error) {
	row, err := chamber.Majority(billID)
	if err != nil {
		return BillMajorities{}, err
	}
	bill, _ := chamber.Voting.Bill(billID)
	return BillMajorities{Bill: bill, Majorities: row}, nil
}
