// Package members provides the members command.
package members

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/hemicycle"
	"github.com/agentstation/hemicycle/internal/appcontext"
	"github.com/agentstation/hemicycle/internal/cmd/globals"
	"github.com/agentstation/hemicycle/internal/cmd/output"
	"github.com/agentstation/hemicycle/internal/cmd/table"
)

// NewCommand creates the members command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *globals.MemberFlags

	cmd := &cobra.Command{
		Use:     "members [slug]",
		Aliases: []string{"member", "mps"},
		GroupID: "core",
		Short:   "List members or show one member's record",
		Long: `Members lists the reconciled members in seating order with their
attendance and dissent rates. With a slug it shows the member's contact
details and voting history.`,
		Example: `  hemicycle members                      # List all members
  hemicycle members --party chp          # Members of one party
  hemicycle members --search "yılmaz"    # Accent-insensitive name search
  hemicycle members ayse-yilmaz -o yaml  # One member as YAML`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return showMember(cmd, app, args[0])
			}
			return listMembers(cmd, app, flags)
		},
	}

	flags = globals.AddMemberFlags(cmd)
	return cmd
}

func listMembers(cmd *cobra.Command, app appcontext.Interface, flags *globals.MemberFlags) error {
	filter, err := flags.Filter()
	if err != nil {
		return err
	}
	chamber, err := app.Chamber(cmd.Context())
	if err != nil {
		return err
	}

	indexes := chamber.Filter(filter)
	total := len(indexes)
	profiles := chamber.Profiles(flags.Truncate(indexes))

	if !app.Quiet() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Found %d of %d members\n", total, chamber.Len())
	}

	w := cmd.OutOrStdout()
	format := output.DetectFormat(app.OutputFormat(), w)
	return output.Render(w, format, profiles, func(wide bool) table.Data {
		return table.MembersToTableData(profiles, wide)
	})
}

func showMember(cmd *cobra.Command, app appcontext.Interface, slug string) error {
	chamber, err := app.Chamber(cmd.Context())
	if err != nil {
		return err
	}
	profile, err := chamber.Profile(slug)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	format := output.DetectFormat(app.OutputFormat(), w)
	if !format.IsTabular() {
		return output.NewFormatter(format).Format(w, profile)
	}
	return writeProfile(w, format, profile)
}

// writeProfile prints the property table followed by the vote history.
func writeProfile(w io.Writer, format output.Format, p *hemicycle.Profile) error {
	formatter := output.NewFormatter(format)
	if err := formatter.Format(w, table.ProfileToTableData(p)); err != nil {
		return err
	}
	if len(p.VoteLines) == 0 {
		return nil
	}
	if format != output.FormatCSV {
		fmt.Fprintln(w)
	}
	return formatter.Format(w, table.VoteLinesToTableData(p.VoteLines, format == output.FormatWide))
}
