package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/cet3001/CreatorShelf/store"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// LinkAnalytics handles GET /api/links/{shortCode}/analytics
// @Summary Scan analytics for a Spark link
// @Description Aggregates the most recent scan window (500 events) into day, device, OS, and country breakdowns for the owning app's charts. Counts are recent-window counts, not all-time totals.
// @Tags Links
// @Produce json
// @Param shortCode path string true "Spark short code"
// @Success 200 {object} model.ScanAnalytics "Aggregated scan analytics"
// @Failure 404 {object} handler.ErrorResponse "Unknown short code"
// @Failure 500 {object} handler.ErrorResponse "Aggregation failure"
// @Router /api/links/{shortCode}/analytics [get]
func (h *LinkHandler) LinkAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.operationTimeout())
	defer cancel()

	shortCode := mux.Vars(r)["shortCode"]

	// Paused links still show their history to the owner, so no active
	// filter here.
	link, err := h.store.FindLink(ctx, shortCode)
	if errors.Is(err, store.ErrLinkNotFound) {
		SendJSONError(w, http.StatusNotFound, err, "")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("short_code", shortCode).Msg("Link lookup failed")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to load link")
		return
	}

	result, err := h.analytics.ForLink(ctx, link.ID)
	if err != nil {
		log.Error().Err(err).Str("short_code", shortCode).Msg("Failed to aggregate scan events")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to load analytics")
		return
	}

	SendJSONSuccess(w, http.StatusOK, result)
}
