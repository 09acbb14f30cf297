// Package ical renders a normalized event as an RFC 5545 VCALENDAR. Text
// escaping, line folding and CRLF endings are delegated to the calendar
// library rather than hand-rolled.
package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"calshare/internal/models"
	"calshare/internal/tzdate"
	"calshare/internal/validation"
)

const prodID = "-//calshare//calshare//EN"

// Generator renders events into .ics text. AppDomain is the UID suffix so
// exports from different deployments never collide.
type Generator struct {
	appDomain string
	now       func() time.Time
}

// New creates a generator stamping UIDs with the given domain.
func New(appDomain string) *Generator {
	return &Generator{appDomain: appDomain, now: time.Now}
}

// Generate renders one VEVENT inside a VCALENDAR. Timed events carry UTC
// DATE-TIME boundaries; all-day events carry VALUE=DATE boundaries with the
// RFC's exclusive end date. DESCRIPTION and LOCATION appear only when set.
func (g *Generator) Generate(ev *models.Event) (string, error) {
	cal := ics.NewCalendar()
	cal.SetProductId(prodID)

	vevent := cal.AddEvent(fmt.Sprintf("%s@%s", uuid.NewString(), g.appDomain))
	vevent.SetDtStampTime(g.now().UTC())
	vevent.SetSummary(ev.Title)
	if ev.Description != "" {
		vevent.SetDescription(ev.Description)
	}
	if ev.Location != "" {
		vevent.SetLocation(ev.Location)
	}

	if ev.AllDay {
		start, err := time.Parse("2006-01-02", ev.StartDate)
		if err != nil {
			return "", fmt.Errorf("parse start date: %w", err)
		}
		end, err := time.Parse("2006-01-02", ev.EndDate)
		if err != nil {
			return "", fmt.Errorf("parse end date: %w", err)
		}
		vevent.SetAllDayStartAt(start)
		// DTEND is exclusive for DATE values.
		vevent.SetAllDayEndAt(end.AddDate(0, 0, 1))
		return cal.Serialize(ics.WithNewLineWindows), nil
	}

	// Same fallback as the share composer: an empty or unknown zone means
	// UTC, so the .ics always agrees with the provider links.
	tz := ev.Timezone
	if !validation.ValidTimezone(tz) {
		tz = "UTC"
	}
	start, err := tzdate.Instant(ev.StartDate, ev.StartTime, tz)
	if err != nil {
		return "", fmt.Errorf("resolve start: %w", err)
	}
	end, err := tzdate.Instant(ev.EndDate, ev.EndTime, tz)
	if err != nil {
		return "", fmt.Errorf("resolve end: %w", err)
	}

	vevent.SetStartAt(start.UTC())
	vevent.SetEndAt(end.UTC())
	return cal.Serialize(ics.WithNewLineWindows), nil
}
