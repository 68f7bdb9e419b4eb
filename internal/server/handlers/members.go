package handlers

import (
	"net/http"

	"github.com/agentstation/hemicycle"
	"github.com/agentstation/hemicycle/internal/server/filter"
	"github.com/agentstation/hemicycle/internal/server/response"
	"github.com/agentstation/hemicycle/pkg/logging"
	"github.com/agentstation/hemicycle/pkg/parties"
)

// MemberSummary is the list view of a member.
type MemberSummary struct {
	Slug           string        `json:"slug"`
	Seat           int           `json:"seat"`
	Name           string        `json:"name"`
	Party          string        `json:"party"`
	Province       string        `json:"province"`
	Class          parties.Class `json:"class"`
	ImageURL       string        `json:"image_url"`
	AttendanceRate int           `json:"attendance_rate"`
	DissentRate    *int          `json:"dissent_rate"`
}

func summarize(c *hemicycle.Chamber, i int) MemberSummary {
	m := &c.Members[i]
	return MemberSummary{
		Slug:           c.Slugs[i],
		Seat:           i,
		Name:           m.DisplayName(),
		Party:          m.DisplayParty(),
		Province:       m.DisplayProvince(),
		Class:          m.Class,
		ImageURL:       m.Image(),
		AttendanceRate: c.MemberStats[i].AttendanceRate,
		DissentRate:    c.MemberStats[i].DissentRate,
	}
}

// HandleListMembers handles GET /api/v1/members.
// @Summary List members
// @Description List members in seating order with optional filtering
// @Tags members
// @Produce json
// @Param search query string false "Accent-insensitive name search"
// @Param province query string false "Exact province"
// @Param party query string false "Party class code (chp, akp, ...)"
// @Param limit query integer false "Maximum number of results (default: 100, max: 1000)"
// @Param offset query integer false "Result offset for pagination"
// @Success 200 {object} response.Response{data=object}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/members [get].
func (h *Handlers) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	cacheKey := "members:" + r.URL.RawQuery
	if cached, found := h.cache.Get(cacheKey); found {
		response.OK(w, cached)
		return
	}

	f, err := filter.ParseMemberFilter(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	chamber := h.client.Chamber()
	matched := chamber.Filter(f.Filter)
	page := f.Page(matched)

	out := make([]MemberSummary, 0, len(page))
	for _, i := range page {
		out = append(out, summarize(chamber, i))
	}

	result := map[string]any{
		"members": out,
		"pagination": map[string]any{
			"total":  len(matched),
			"limit":  f.Limit,
			"offset": f.Offset,
			"count":  len(out),
		},
	}

	h.cache.Set(cacheKey, result)
	response.OK(w, result)
}

// HandleGetMember handles GET /api/v1/members/{slug}.
// @Summary Get member by slug
// @Description Contact record, statistics and vote history of one member
// @Tags members
// @Produce json
// @Param slug path string true "Member slug"
// @Success 200 {object} response.Response{data=hemicycle.Profile}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/members/{slug} [get].
func (h *Handlers) HandleGetMember(w http.ResponseWriter, r *http.Request, slug string) {
	profile, err := h.client.Chamber().Profile(slug)
	if err != nil {
		logging.FromContext(logging.WithMember(r.Context(), slug)).Debug().Err(err).Msg("Member lookup failed")
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, profile)
}
