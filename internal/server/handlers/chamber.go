package handlers

import (
	"net/http"

	"github.com/agentstation/hemicycle/internal/server/filter"
	"github.com/agentstation/hemicycle/internal/server/response"
	"github.com/agentstation/hemicycle/pkg/layout"
	"github.com/agentstation/hemicycle/pkg/logging"
	"github.com/agentstation/hemicycle/pkg/parties"
)

// SeatView is one placed member.
type SeatView struct {
	layout.Seat
	Slug        string        `json:"slug"`
	Name        string        `json:"name"`
	Class       parties.Class `json:"class"`
	Tooltip     string        `json:"tooltip"`
	Highlighted bool          `json:"highlighted"`
}

// HandleSeats handles GET /api/v1/seats.
// @Summary Seat layout
// @Description Hemicycle seat positions for a container width. Filter
// @Description parameters mark matching seats as highlighted. relayout is
// @Description true when the width class differs from the previous request.
// @Tags layout
// @Produce json
// @Param width query number false "Container width in pixels (default: 1000)"
// @Param search query string false "Highlight members whose name matches"
// @Param province query string false "Highlight members of a province"
// @Param party query string false "Highlight members of a party class"
// @Success 200 {object} response.Response{data=object}
// @Failure 400 {object} response.Response{error=response.Error}
// @Router /api/v1/seats [get].
func (h *Handlers) HandleSeats(w http.ResponseWriter, r *http.Request) {
	width, err := filter.ParseWidth(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	f, err := filter.ParseMemberFilter(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	_, relayout, err := h.cache.ObserveWidth(width)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	chamber := h.client.Chamber()
	n := chamber.Len()

	seats, ok := h.cache.Seats(n, width)
	if !ok {
		seats, err = chamber.Seats(width)
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		h.cache.SetSeats(n, width, seats)
	}

	geometry, err := layout.GeometryFor(width)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	views := make([]SeatView, len(seats))
	for i, seat := range seats {
		m := &chamber.Members[i]
		views[i] = SeatView{
			Seat:        seat,
			Slug:        chamber.Slugs[i],
			Name:        m.DisplayName(),
			Class:       m.Class,
			Tooltip:     m.Tooltip(),
			Highlighted: f.Empty() || f.Matches(m),
		}
	}

	response.OK(w, map[string]any{
		"geometry": map[string]any{
			"class":      geometry.Class,
			"width":      geometry.Width,
			"height":     geometry.Height(),
			"center_x":   geometry.CenterX,
			"center_y":   geometry.CenterY,
			"seat_size":  geometry.SeatSize,
			"min_radius": geometry.MinRadius,
			"max_radius": geometry.MaxRadius,
		},
		"seats":    views,
		"relayout": relayout,
	})
}

// HandleListBills handles GET /api/v1/bills.
// @Summary List bills
// @Description Bill catalog in dataset order
// @Tags bills
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/v1/bills [get].
func (h *Handlers) HandleListBills(w http.ResponseWriter, _ *http.Request) {
	chamber := h.client.Chamber()
	bills := chamber.Bills()
	response.OK(w, map[string]any{
		"bills":        bills,
		"count":        len(bills),
		"last_updated": chamber.Voting.LastUpdated,
	})
}

// HandleMajorities handles GET /api/v1/majorities.
// @Summary Party majorities
// @Description Majority outcome per bill and party class
// @Tags bills
// @Produce json
// @Success 200 {object} response.Response{data=analytics.MajorityTable}
// @Router /api/v1/majorities [get].
func (h *Handlers) HandleMajorities(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.client.Chamber().Majorities)
}

// HandleGetMajority handles GET /api/v1/majorities/{bill}.
// @Summary Bill majorities
// @Description Majority outcome per party class for one bill
// @Tags bills
// @Produce json
// @Param bill path string true "Bill ID"
// @Success 200 {object} response.Response{data=object}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/majorities/{bill} [get].
func (h *Handlers) HandleGetMajority(w http.ResponseWriter, r *http.Request, billID string) {
	chamber := h.client.Chamber()
	majority, err := chamber.Majority(billID)
	if err != nil {
		logging.FromContext(logging.WithBill(r.Context(), billID)).Debug().Err(err).Msg("Majority lookup failed")
		response.ErrorFromType(w, err)
		return
	}
	bill, _ := chamber.Voting.Bill(billID)
	response.OK(w, map[string]any{
		"bill":       bill,
		"majorities": majority,
	})
}

// HandleParties handles GET /api/v1/parties.
// @Summary Party statistics
// @Description Attendance and dissent per party, most dissenting first
// @Tags parties
// @Produce json
// @Success 200 {object} response.Response{data=[]analytics.PartyStats}
// @Router /api/v1/parties [get].
func (h *Handlers) HandleParties(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.client.Chamber().PartyStats)
}

// HandleProvinces handles GET /api/v1/provinces.
// @Summary List provinces
// @Description Distinct provinces in Turkish alphabetical order
// @Tags members
// @Produce json
// @Success 200 {object} response.Response{data=[]string}
// @Router /api/v1/provinces [get].
func (h *Handlers) HandleProvinces(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.client.Chamber().Provinces())
}
