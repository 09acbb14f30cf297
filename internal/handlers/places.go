package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"calshare/internal/metrics"
	"calshare/internal/places"
)

// PlacesHandler serves location autocomplete suggestions.
type PlacesHandler struct {
	client *places.Client
}

// NewPlacesHandler creates a new places handler.
func NewPlacesHandler(client *places.Client) *PlacesHandler {
	return &PlacesHandler{client: client}
}

// Search returns suggestions for the q parameter. Upstream failures degrade
// to an empty list so the form keeps working without autocomplete.
func (h *PlacesHandler) Search(c fiber.Ctx) error {
	query := c.Query("q", "")

	results, cached, err := h.client.Search(c.Context(), query)
	if err != nil {
		slog.Error("place lookup failed", "error", err)
		metrics.RecordPlaceLookup(metrics.PlaceError)
		return c.JSON([]places.Place{})
	}

	if cached {
		metrics.RecordPlaceLookup(metrics.PlaceHit)
	} else {
		metrics.RecordPlaceLookup(metrics.PlaceMiss)
	}

	if results == nil {
		results = []places.Place{}
	}
	return c.JSON(results)
}
