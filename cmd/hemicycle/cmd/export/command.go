// Package export provides the export command.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/hemicycle/internal/appcontext"
	"github.com/agentstation/hemicycle/internal/cmd/globals"
	"github.com/agentstation/hemicycle/internal/cmd/output"
	"github.com/agentstation/hemicycle/internal/cmd/table"
	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/members"
)

// NewCommand creates the export command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		file  string
		flags *globals.MemberFlags
	)

	cmd := &cobra.Command{
		Use:     "export",
		GroupID: "core",
		Short:   "Export member contact records",
		Long: `Export writes one record per member in seating order: name, party,
province, email, phones and address. Output is CSV unless --format json or
yaml is given.`,
		Example: `  hemicycle export > members.csv
  hemicycle export --file members.csv --party chp
  hemicycle export -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := flags.Filter()
			if err != nil {
				return err
			}
			chamber, err := app.Chamber(cmd.Context())
			if err != nil {
				return err
			}
			profiles := chamber.Profiles(flags.Truncate(chamber.Filter(filter)))

			records := make([]members.Record, len(profiles))
			for i, p := range profiles {
				records[i] = p.Record
			}

			format := output.FormatCSV
			if f := output.Format(app.OutputFormat()); f == output.FormatJSON || f == output.FormatYAML {
				format = f
			}

			var w io.Writer = cmd.OutOrStdout()
			if file != "" {
				f, err := os.Create(file)
				if err != nil {
					return &errors.IOError{Operation: "create", Path: file, Err: err}
				}
				defer f.Close()
				w = f
			}

			if err := output.Render(w, format, records, func(bool) table.Data {
				return table.RecordsToTableData(profiles)
			}); err != nil {
				return err
			}

			if file != "" && !app.Quiet() {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d members to %s\n", len(records), file)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Write to file instead of stdout")
	flags = globals.AddMemberFlags(cmd)
	return cmd
}
