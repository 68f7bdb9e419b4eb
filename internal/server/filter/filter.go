// Package filter provides query parameter parsing for API endpoints.
package filter

import (
	"net/http"
	"strconv"

	"github.com/agentstation/hemicycle/pkg/constants"
	"github.com/agentstation/hemicycle/pkg/errors"
	"github.com/agentstation/hemicycle/pkg/layout"
	"github.com/agentstation/hemicycle/pkg/members"
	"github.com/agentstation/hemicycle/pkg/parties"
)

// MemberFilter contains the member selection and pagination of a request.
type MemberFilter struct {
	members.Filter

	// Pagination
	Limit  int
	Offset int
}

// ParseMemberFilter extracts member filter parameters from the request.
// An unknown party code is a validation error; bad pagination values fall
// back to the defaults.
func ParseMemberFilter(r *http.Request) (MemberFilter, error) {
	q := r.URL.Query()

	f := MemberFilter{
		Filter: members.Filter{
			Search:   q.Get("search"),
			Province: q.Get("province"),
		},
		Limit:  parseIntOrDefault(q.Get("limit"), constants.DefaultPageSize),
		Offset: parseIntOrDefault(q.Get("offset"), 0),
	}

	if code := q.Get("party"); code != "" {
		class, ok := parties.Parse(code)
		if !ok {
			return f, errors.NewValidationError("party", code, "unknown party class")
		}
		f.Party = class
	}

	if f.Limit <= 0 {
		f.Limit = constants.DefaultPageSize
	}
	if f.Limit > constants.MaxPageSize {
		f.Limit = constants.MaxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f, nil
}

// Page slices indexes to the requested window.
func (f MemberFilter) Page(indexes []int) []int {
	if f.Offset >= len(indexes) {
		return []int{}
	}
	end := f.Offset + f.Limit
	if end > len(indexes) {
		end = len(indexes)
	}
	return indexes[f.Offset:end]
}

// ParseWidth reads the width query parameter. A missing value gives the
// default layout width.
func ParseWidth(r *http.Request) (float64, error) {
	raw := r.URL.Query().Get("width")
	if raw == "" {
		return constants.DefaultLayoutWidth, nil
	}
	width, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.NewValidationError("width", raw, "must be a number")
	}
	if _, err := layout.GeometryFor(width); err != nil {
		return 0, err
	}
	return width, nil
}

func parseIntOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return def
}
