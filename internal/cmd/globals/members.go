package globals

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/layout"
	"github.com/agentstation/hemicycle/pkg/members"
	"github.com/agentstation/hemicycle/pkg/parties"
)

// MemberFlags holds the member selection flags.
type MemberFlags struct {
	Search   string
	Province string
	Party    string
	Limit    int
}

// AddMemberFlags adds the member selection flags to a command.
func AddMemberFlags(cmd *cobra.Command) *MemberFlags {
	flags := &MemberFlags{}

	cmd.Flags().StringVarP(&flags.Search, "search", "s", "",
		"Match members whose name contains the term (case and accent insensitive)")
	cmd.Flags().StringVar(&flags.Province, "province", "",
		"Filter by province")
	cmd.Flags().StringVarP(&flags.Party, "party", "p", "",
		"Filter by party class (e.g. chp, akp, bagimsiz)")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")

	return flags
}

// Filter converts the flags into a member filter. An unknown party class is
// a validation error.
func (f *MemberFlags) Filter() (members.Filter, error) {
	filter := members.Filter{
		Search:   f.Search,
		Province: f.Province,
	}
	if f.Party != "" {
		class, ok := parties.Parse(f.Party)
		if !ok {
			return members.Filter{}, errors.NewValidationError("party", f.Party, "unknown party class")
		}
		filter.Party = class
	}
	if f.Limit < 0 {
		return members.Filter{}, errors.NewValidationError("limit", f.Limit, "must not be negative")
	}
	return filter, nil
}

// Truncate applies the limit to indexes.
func (f *MemberFlags) Truncate(indexes []int) []int {
	if f.Limit > 0 && len(indexes) > f.Limit {
		return indexes[:f.Limit]
	}
	return indexes
}

// AddWidthFlag adds the container width flag. Zero means the configured
// default.
func AddWidthFlag(cmd *cobra.Command) *float64 {
	width := new(float64)
	cmd.Flags().Float64VarP(width, "width", "w", 0,
		"Container width in pixels (default from config, 1000)")
	return width
}

// ResolveWidth returns width, or fallback when width is zero, after checking
// it is usable for a layout.
func ResolveWidth(width, fallback float64) (float64, error) {
	if width == 0 {
		width = fallback
	}
	if _, err := layout.GeometryFor(width); err != nil {
		return 0, err
	}
	return width, nil
}
