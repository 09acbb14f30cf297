package handlers

import (
	"github.com/gofiber/fiber/v3"

	"calshare/internal/codec"
	"calshare/internal/ical"
	"calshare/internal/metrics"
)

// ICSHandler serves the generated iCalendar file for a shared event.
type ICSHandler struct {
	gen *ical.Generator
}

// NewICSHandler creates a new ICS handler.
func NewICSHandler(gen *ical.Generator) *ICSHandler {
	return &ICSHandler{gen: gen}
}

// Download generates an .ics file from the event carried in the query string.
func (h *ICSHandler) Download(c fiber.Ctx) error {
	ev := codec.Decode(codec.Deserialize(string(c.Request().URI().QueryString())))
	if ev.Title == "" || ev.StartDate == "" {
		return fiber.NewError(fiber.StatusBadRequest, "invalid event")
	}

	body, err := h.gen.Generate(ev)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid event")
	}
	metrics.RecordICSDownload()

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="event.ics"`)
	return c.SendString(body)
}
