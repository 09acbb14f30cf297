package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"calshare/internal/models"
	"calshare/internal/tzdate"
)

// eventFromForm builds an event from the share form fields. Times are
// normalized to 24-hour HH:MM; a value that parses as neither 12h nor 24h is
// passed through untouched so validation can report it on the right field.
func eventFromForm(c fiber.Ctx) *models.Event {
	return &models.Event{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Location:    strings.TrimSpace(c.FormValue("location")),
		StartDate:   c.FormValue("start_date"),
		StartTime:   normalizeTime(c.FormValue("start_time")),
		EndDate:     c.FormValue("end_date"),
		EndTime:     normalizeTime(c.FormValue("end_time")),
		Timezone:    c.FormValue("timezone"),
		AllDay:      c.FormValue("all_day") != "",
	}
}

func normalizeTime(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if normalized, err := tzdate.To24Hour(s); err == nil {
		return normalized
	}
	return s
}

// requestLocale picks the display locale from the Accept-Language header.
func requestLocale(c fiber.Ctx) string {
	return tzdate.ResolveLocale(c.Get("Accept-Language"))
}

// fieldErrorMap reshapes validation errors for template field lookups.
func fieldErrorMap(errs []models.FieldError) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	m := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, ok := m[e.Field]; !ok {
			m[e.Field] = e.Message
		}
	}
	return m
}
