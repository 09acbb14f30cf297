package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"calshare/internal/config"
	"calshare/internal/metrics"
	"calshare/internal/share"
	"calshare/internal/tzdate"
	"calshare/internal/validation"
)

// commonTimezones populates the timezone picker. The browser-detected zone is
// injected client-side; this list covers manual selection.
var commonTimezones = []string{
	"UTC",
	"America/New_York",
	"America/Chicago",
	"America/Denver",
	"America/Los_Angeles",
	"America/Anchorage",
	"America/Sao_Paulo",
	"America/Mexico_City",
	"America/Toronto",
	"Europe/London",
	"Europe/Paris",
	"Europe/Berlin",
	"Europe/Madrid",
	"Europe/Rome",
	"Europe/Amsterdam",
	"Europe/Stockholm",
	"Europe/Warsaw",
	"Europe/Moscow",
	"Africa/Cairo",
	"Africa/Johannesburg",
	"Africa/Lagos",
	"Asia/Dubai",
	"Asia/Kolkata",
	"Asia/Bangkok",
	"Asia/Singapore",
	"Asia/Hong_Kong",
	"Asia/Shanghai",
	"Asia/Tokyo",
	"Asia/Seoul",
	"Australia/Sydney",
	"Australia/Perth",
	"Pacific/Auckland",
}

// EventHandler serves the event form and turns submissions into share links.
type EventHandler struct {
	cfg      *config.Config
	composer *share.Composer
}

// NewEventHandler creates a new event handler.
func NewEventHandler(cfg *config.Config, composer *share.Composer) *EventHandler {
	return &EventHandler{cfg: cfg, composer: composer}
}

// Index renders the event form with sensible defaults: today's date and the
// next half-hour slot.
func (h *EventHandler) Index(c fiber.Ctx) error {
	locale := requestLocale(c)

	now := time.Now()
	start := now.Truncate(30 * time.Minute).Add(30 * time.Minute)
	end := start.Add(time.Hour)

	return c.Render("index", MergeBranding(fiber.Map{
		"TimeOptions":      tzdate.TimeOptions(locale),
		"Timezones":        commonTimezones,
		"Errors":           map[string]string{},
		"DefaultStartDate": start.Format("2006-01-02"),
		"DefaultStartTime": start.Format("15:04"),
		"DefaultEndDate":   end.Format("2006-01-02"),
		"DefaultEndTime":   end.Format("15:04"),
	}, h.cfg))
}

// Create handles the form submission. Validation failures re-render the form
// with field errors; on success the form is re-rendered with the share link
// and QR code.
func (h *EventHandler) Create(c fiber.Ctx) error {
	ev := eventFromForm(c)
	password := c.FormValue("password")
	locale := requestLocale(c)

	data := MergeBranding(fiber.Map{
		"TimeOptions": tzdate.TimeOptions(locale),
		"Timezones":   commonTimezones,
		"Event":       ev,
		"Errors":      map[string]string{},
	}, h.cfg)

	if errs := validation.ValidateEvent(ev); len(errs) > 0 {
		data["Errors"] = fieldErrorMap(errs)
		return c.Status(fiber.StatusUnprocessableEntity).Render("index", data)
	}

	url, err := h.composer.BuildLink(ev, password)
	if err != nil {
		return err
	}
	metrics.RecordLinkBuilt(password != "")

	data["ShareURL"] = url
	data["Protected"] = password != ""
	data["QRURL"] = "/qr.png?" + rawQueryOf(url)
	return c.Render("index", data)
}

// rawQueryOf extracts the query string from a share URL so the QR endpoint
// can re-encode the same payload.
func rawQueryOf(url string) string {
	for i := 0; i < len(url); i++ {
		if url[i] == '?' {
			return url[i+1:]
		}
	}
	return ""
}
