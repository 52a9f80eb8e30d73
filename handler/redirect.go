package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cet3001/CreatorShelf/model"
	"github.com/cet3001/CreatorShelf/store"
	"github.com/cet3001/CreatorShelf/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// Redirect handles GET /r/{shortCode}
// @Summary Resolve a Spark code
// @Description Resolves a short code to its destination, preferring the platform deep link for the detected OS, and records one scan event. Errors use plain-text bodies: the callers are browsers following shared links, not API clients.
// @Tags Redirect
// @Produce plain
// @Param shortCode path string true "Spark short code" example("Vk7mRp2a")
// @Success 302 "Redirect to destination or deep link"
// @Failure 404 "Unknown or inactive code, or no usable destination"
// @Failure 410 "Code has expired"
// @Failure 503 "Backing store unavailable"
// @Router /r/{shortCode} [get]
func (h *LinkHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	// Unconfigured store fails before any lookup is attempted
	if h.store == nil {
		http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.operationTimeout())
	defer cancel()

	shortCode := mux.Vars(r)["shortCode"]

	link, cacheHit := h.cachedLink(ctx, shortCode)
	if !cacheHit {
		var err error
		link, err = h.store.FindActiveLink(ctx, shortCode)
		if errors.Is(err, store.ErrLinkNotFound) {
			// Expected traffic (stale or guessed codes), not a failure
			log.Debug().Str("short_code", shortCode).Msg("Spark code not found")
			http.Error(w, "Spark code not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error().Err(err).Str("short_code", shortCode).Msg("Link lookup failed")
			http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
			return
		}
		h.cacheLink(ctx, link)
	}

	now := time.Now().UTC()
	if link.Expired(now) {
		log.Info().
			Str("short_code", shortCode).
			Time("expires_at", *link.ExpiresAt).
			Msg("Spark code expired")
		http.Error(w, "Spark code expired", http.StatusGone)
		return
	}

	device := utils.ClassifyUserAgent(r.Header.Get("User-Agent"))
	ipHash := utils.AnonymizeIP(utils.ClientIP(r), h.config.Privacy.IPSalt)

	target, ok := selectDestination(link, device.OS)
	if !ok {
		log.Warn().Str("short_code", shortCode).Msg("Spark code has no usable destination")
		http.Error(w, "Spark code has no destination", http.StatusNotFound)
		return
	}

	// Country and city stay nil until a geo-IP collaborator fills them in
	event := model.ScanEvent{
		ID:         uuid.New().String(),
		LinkID:     link.ID,
		ScannedAt:  now,
		DeviceType: &device.DeviceType,
		OS:         &device.OS,
		IPHash:     ipHash,
	}
	h.recordScan(event)

	log.Info().
		Str("short_code", shortCode).
		Str("os", device.OS).
		Str("device_type", device.DeviceType).
		Msg("Redirecting")

	http.Redirect(w, r, target, http.StatusFound)
}

// selectDestination picks the best URL for the requesting platform: the
// matching deep link when one is configured, else the generic destination.
func selectDestination(link *model.Link, os string) (string, bool) {
	if os == "iOS" && link.DeepLinkIOS != nil && *link.DeepLinkIOS != "" {
		return *link.DeepLinkIOS, true
	}
	if os == "Android" && link.DeepLinkAndroid != nil && *link.DeepLinkAndroid != "" {
		return *link.DeepLinkAndroid, true
	}
	if link.DestinationURL != nil && *link.DestinationURL != "" {
		return *link.DestinationURL, true
	}
	return "", false
}

// recordScan persists the scan event off the request path. The redirect
// response never waits on, and is never altered by, this write.
func (h *LinkHandler) recordScan(event model.ScanEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.operationTimeout())
		defer cancel()

		if err := h.store.CreateScanEvent(ctx, &event); err != nil {
			log.Error().
				Err(err).
				Str("link_id", event.LinkID).
				Msg("Failed to record scan event")
		}
	}()
}
