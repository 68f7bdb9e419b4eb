package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/agentstation/hemicycle/internal/server/events"
	"github.com/agentstation/hemicycle/internal/server/response"
	"github.com/agentstation/hemicycle/pkg/logging"
)

// HandleReload handles POST /api/v1/reload.
// @Summary Reload datasets
// @Description Fetch both datasets again and swap in the new chamber. On
// @Description failure the previous chamber keeps serving.
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 503 {object} response.Response{error=response.Error}
// @Security ApiKeyAuth
// @Router /api/v1/reload [post].
func (h *Handlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	if err := h.client.Update(r.Context()); err != nil {
		logger.Warn().Err(err).Msg("Reload failed")
		h.broker.Publish(events.ReloadFailed, map[string]any{
			"error": err.Error(),
		})
		response.ErrorFromType(w, err)
		return
	}

	chamber := h.client.Chamber()
	response.OK(w, map[string]any{
		"status":    "reloaded",
		"members":   chamber.Len(),
		"unmatched": len(chamber.Result.Unmatched),
		"loaded_at": chamber.LoadedAt,
	})
}

// HandleStats handles GET /api/v1/stats.
// @Summary Server statistics
// @Description Runtime, chamber, event and cache statistics
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Security ApiKeyAuth
// @Router /api/v1/stats [get].
func (h *Handlers) HandleStats(w http.ResponseWriter, _ *http.Request) {
	chamber := h.client.Chamber()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	response.OK(w, map[string]any{
		"runtime": map[string]any{
			"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"memory_mb":      memStats.Alloc / 1024 / 1024,
			"memory_sys_mb":  memStats.Sys / 1024 / 1024,
		},
		"chamber": map[string]any{
			"members":      chamber.Len(),
			"bills":        len(chamber.Bills()),
			"parties":      len(chamber.PartyStats),
			"unmatched":    len(chamber.Result.Unmatched),
			"warnings":     len(chamber.Result.Warnings),
			"loaded_at":    chamber.LoadedAt,
			"last_updated": chamber.Voting.LastUpdated,
		},
		"events": map[string]any{
			"published_total": h.broker.EventsPublished(),
			"dropped_total":   h.broker.EventsDropped(),
			"queue_depth":     h.broker.QueueDepth(),
		},
		"realtime": map[string]any{
			"websocket_clients": h.wsHub.ClientCount(),
			"sse_clients":       h.sseBroadcaster.ClientCount(),
		},
		"cache": h.cache.GetStats(),
	})
}
