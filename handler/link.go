package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cet3001/CreatorShelf/model"
	"github.com/cet3001/CreatorShelf/shortcode"
	"github.com/cet3001/CreatorShelf/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CreateLink handles POST /api/links
// @Summary Create a Spark link
// @Description Creates a Spark code for a creator. The short code is generated with collision checking and is immutable afterwards; destination and deep links may all be empty (the code then resolves to 404 until one is set through the CRUD layer).
// @Tags Links
// @Accept json
// @Produce json
// @Param request body handler.createLinkRequest true "Link creation request"
// @Success 201 {object} handler.CreateLinkResponse "Created Spark link"
// @Failure 400 {object} handler.ErrorResponse "Invalid request"
// @Failure 500 {object} handler.ErrorResponse "Generation or store failure"
// @Router /api/links [post]
func (h *LinkHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.operationTimeout())
	defer cancel()

	var input createLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		SendJSONError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	link, err := h.buildLink(input)
	if err != nil {
		log.Warn().Err(err).Str("owner_id", input.OwnerID).Msg("Invalid link creation request")
		SendJSONError(w, http.StatusBadRequest, err, "")
		return
	}

	// Generate-and-check with bounded retry; the unique index on
	// short_code catches the residual check-then-insert race.
	code, err := shortcode.EnsureUnique(ctx, h.store)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate short code")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to generate short code")
		return
	}
	link.ShortCode = code

	if err := h.store.CreateLink(ctx, link); err != nil {
		log.Error().Err(err).Str("short_code", code).Msg("Failed to store link")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to create link")
		return
	}

	log.Info().
		Str("short_code", code).
		Str("owner_id", link.OwnerID).
		Msg("Spark link created")

	SendJSONSuccess(w, http.StatusCreated, CreateLinkResponse{
		ID:        link.ID,
		ShortCode: code,
		ShortURL:  fmt.Sprintf("%s/r/%s", h.baseURL, code),
		QRCodeURL: fmt.Sprintf("%s/qr/%s", h.baseURL, code),
	})
}

type createLinkRequest struct {
	OwnerID         string `json:"ownerID"`
	DestinationURL  string `json:"destinationURL"`
	DeepLinkIOS     string `json:"deepLinkIOS"`
	DeepLinkAndroid string `json:"deepLinkAndroid"`
	Expiry          string `json:"expiry"` // RFC3339, optional
	Note            string `json:"note"`
}

// buildLink validates the request and assembles the Link row, short code
// excepted.
func (h *LinkHandler) buildLink(input createLinkRequest) (*model.Link, error) {
	if input.OwnerID == "" {
		return nil, utils.ErrMissingOwner
	}
	if _, err := uuid.Parse(input.OwnerID); err != nil {
		return nil, fmt.Errorf("ownerID must be a UUID: %w", err)
	}

	link := &model.Link{
		ID:        uuid.New().String(),
		OwnerID:   input.OwnerID,
		IsActive:  true,
		Status:    model.LinkStatusActive,
		Note:      input.Note,
		CreatedAt: time.Now().UTC(),
	}

	if input.DestinationURL != "" {
		if err := utils.ValidateDestinationURL(input.DestinationURL); err != nil {
			return nil, err
		}
		link.DestinationURL = &input.DestinationURL
	}
	if input.DeepLinkIOS != "" {
		link.DeepLinkIOS = &input.DeepLinkIOS
	}
	if input.DeepLinkAndroid != "" {
		link.DeepLinkAndroid = &input.DeepLinkAndroid
	}

	if input.Expiry != "" {
		expiry, err := time.Parse(time.RFC3339, input.Expiry)
		if err != nil {
			return nil, fmt.Errorf("invalid expiry time format (use RFC3339): %w", err)
		}
		if expiry.Before(time.Now()) {
			return nil, utils.ErrExpiryInPast
		}
		expiry = expiry.UTC()
		link.ExpiresAt = &expiry
	}

	return link, nil
}
