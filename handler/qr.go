package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

// GenerateQR handles GET /qr/{shortCode} - renders the printable Spark code
// @Summary QR code for a Spark link
// @Description Generates a PNG QR code pointing at the public redirect URL. Size is clamped to 128-1024 pixels; level selects error correction (low/medium/high/highest).
// @Tags Links
// @Produce png
// @Param shortCode path string true "Spark short code"
// @Param size query int false "Image size in pixels" default(256)
// @Param level query string false "Error correction level" default(medium)
// @Success 200 "PNG image"
// @Failure 400 {object} handler.ErrorResponse "Invalid parameters"
// @Failure 404 {object} handler.ErrorResponse "Unknown short code"
// @Failure 500 {object} handler.ErrorResponse "Encoding failure"
// @Router /qr/{shortCode} [get]
func (h *LinkHandler) GenerateQR(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.operationTimeout())
	defer cancel()

	shortCode := mux.Vars(r)["shortCode"]

	exists, err := h.store.ShortCodeExists(ctx, shortCode)
	if err != nil {
		log.Error().Err(err).Str("short_code", shortCode).Msg("Failed to check code existence for QR")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to verify Spark code")
		return
	}
	if !exists {
		SendJSONError(w, http.StatusNotFound, errors.New("Spark code not found"), "")
		return
	}

	query := r.URL.Query()

	size := 256
	if sizeStr := query.Get("size"); sizeStr != "" {
		parsedSize, err := strconv.Atoi(sizeStr)
		if err != nil {
			SendJSONError(w, http.StatusBadRequest, errors.New("invalid size parameter"), "Size must be a number")
			return
		}
		if parsedSize < 128 || parsedSize > 1024 {
			SendJSONError(w, http.StatusBadRequest, errors.New("size out of range"), "Size must be between 128 and 1024")
			return
		}
		size = parsedSize
	}

	level := qrcode.Medium
	switch query.Get("level") {
	case "", "medium":
	case "low":
		level = qrcode.Low
	case "high":
		level = qrcode.High
	case "highest":
		level = qrcode.Highest
	default:
		SendJSONError(w, http.StatusBadRequest, errors.New("invalid level parameter"), "Level must be low, medium, high, or highest")
		return
	}

	redirectURL := fmt.Sprintf("%s/r/%s", h.baseURL, shortCode)
	png, err := qrcode.Encode(redirectURL, level, size)
	if err != nil {
		log.Error().Err(err).Str("short_code", shortCode).Msg("Failed to encode QR code")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(png); err != nil {
		log.Error().Err(err).Msg("Failed to write QR code response")
	}
}
