package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"calshare/internal/codec"
	"calshare/internal/config"
	"calshare/internal/crypto"
	"calshare/internal/metrics"
	"calshare/internal/models"
	"calshare/internal/share"
	"calshare/internal/tzdate"
	"calshare/internal/validation"
)

// ShareHandler renders shared events and unlocks protected ones.
type ShareHandler struct {
	cfg            *config.Config
	meetingDomains []string
}

// NewShareHandler creates a new share handler. meetingDomains extends the
// built-in hostnames treated as meeting links.
func NewShareHandler(cfg *config.Config, meetingDomains []string) *ShareHandler {
	return &ShareHandler{cfg: cfg, meetingDomains: meetingDomains}
}

// Show renders a shared event from the query string. Protected links render
// the unlock form instead.
func (h *ShareHandler) Show(c fiber.Ctx) error {
	params := codec.Deserialize(string(c.Request().URI().QueryString()))

	if cipher, ok := params["h"]; ok {
		return c.Render("unlock", MergeBranding(fiber.Map{
			"Cipher": cipher,
		}, h.cfg))
	}

	ev := codec.Decode(params)
	if ev.Title == "" || ev.StartDate == "" {
		return fiber.NewError(fiber.StatusBadRequest, "This link looks corrupted. Ask the sender for a fresh one.")
	}
	return h.renderShare(c, ev)
}

// Unlock handles the password form for a protected link.
func (h *ShareHandler) Unlock(c fiber.Ctx) error {
	cipher := c.FormValue("cipher")
	password := c.FormValue("password")

	ev, err := share.ResolveProtected(cipher, password)
	if err != nil {
		switch {
		case errors.Is(err, crypto.ErrDecryptionFailed):
			metrics.RecordDecrypt(metrics.DecryptWrongPassword)
			return c.Status(fiber.StatusUnauthorized).Render("unlock", MergeBranding(fiber.Map{
				"Cipher": cipher,
				"Error":  "Wrong password, or the link is corrupted.",
			}, h.cfg))
		case errors.Is(err, crypto.ErrInvalidFormat), errors.Is(err, crypto.ErrInvalidIterationCount):
			metrics.RecordDecrypt(metrics.DecryptInvalidToken)
			return fiber.NewError(fiber.StatusBadRequest, "This link looks corrupted. Ask the sender for a fresh one.")
		default:
			return err
		}
	}

	metrics.RecordDecrypt(metrics.DecryptOK)
	return h.renderShare(c, ev)
}

// renderShare builds the share page view model: formatted dates in the
// event's zone, location classification and the per-provider links.
func (h *ShareHandler) renderShare(c fiber.Ctx, ev *models.Event) error {
	links, err := share.Links(ev)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "This link looks corrupted. Ask the sender for a fresh one.")
	}

	query := codec.Serialize(codec.Encode(ev))
	data := MergeBranding(fiber.Map{
		"Event":     ev,
		"Providers": links,
		"ICSPath":   "/event.ics?" + query,
		"QRURL":     "/qr.png?" + query,
	}, h.cfg)

	switch validation.ClassifyLocation(ev.Location, h.meetingDomains) {
	case validation.LocationLink:
		data["LocationIsLink"] = true
	case validation.LocationPlace:
		data["MapsURL"] = "https://www.google.com/maps/search/?api=1&query=" + codec.EscapeComponent(ev.Location)
	}

	if ev.AllDay {
		start, err := parseDate(ev.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "This link looks corrupted. Ask the sender for a fresh one.")
		}
		end, err := parseDate(ev.EndDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "This link looks corrupted. Ask the sender for a fresh one.")
		}
		data["StartDisplay"] = tzdate.FormatDateOnly(start, "UTC")
		if !end.Equal(start) {
			data["EndDisplay"] = tzdate.FormatDateOnly(end, "UTC")
		}
	} else {
		start, end, err := share.Instants(ev)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "This link looks corrupted. Ask the sender for a fresh one.")
		}
		tz := ev.Timezone
		if !validation.ValidTimezone(tz) {
			tz = "UTC"
		}
		sameDay := tzdate.FormatDateOnly(start, tz) == tzdate.FormatDateOnly(end, tz)
		data["StartDisplay"] = tzdate.FormatDateTime(start, tz)
		if sameDay {
			data["EndDisplay"] = tzdate.FormatTime(end, tz)
		} else {
			data["EndDisplay"] = tzdate.FormatDateTime(end, tz)
		}
		data["TimezoneDisplay"] = share.TimezoneDisplay(ev, start)
	}

	return c.Render("share", data)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
