package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"calshare/internal/metrics"
	"calshare/internal/models"
	"calshare/internal/share"
	"calshare/internal/validation"
)

// LinkHandler builds share links via the JSON API.
type LinkHandler struct {
	composer *share.Composer
}

// NewLinkHandler creates a new API link handler.
func NewLinkHandler(composer *share.Composer) *LinkHandler {
	return &LinkHandler{composer: composer}
}

// Create validates the posted event and returns its share URL. A non-empty
// password yields a protected link.
func (h *LinkHandler) Create(c fiber.Ctx) error {
	var ev models.Event
	if err := json.Unmarshal(c.Body(), &ev); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if errs := validation.ValidateEvent(&ev); len(errs) > 0 {
		return jsonFieldErrors(c, errs)
	}

	password := ev.Password
	ev.Password = ""

	url, err := h.composer.BuildLink(&ev, password)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to build link")
	}
	metrics.RecordLinkBuilt(password != "")

	return jsonSuccess(c, models.LinkResponse{
		URL:       url,
		Protected: password != "",
	})
}
