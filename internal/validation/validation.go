// Package validation checks event records before a share link is produced
// and classifies location strings for display.
package validation

import (
	"regexp"
	"strings"
	"time"

	"calshare/internal/models"
	"calshare/internal/tzdate"
)

// DatePattern defines the calendar date format used throughout the link
// format: YYYY-MM-DD.
var DatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// TimePattern defines the 24-hour wall-clock format: HH:MM.
var TimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// linkScheme matches location values that are addresses rather than places.
// Permissive on purpose: "mailto://" and "tel://" appear in the wild even
// though the RFC form has no slashes.
var linkScheme = regexp.MustCompile(`(?i)^(https?|mailto|tel):(//)?\S`)

// defaultMeetingDomains are hostnames whose presence marks a bare location
// string as a meeting link even without a scheme. Extended via config.
var defaultMeetingDomains = []string{
	"zoom.us",
	"meet.google.com",
	"teams.microsoft.com",
	"webex.com",
	"meet.jit.si",
	"whereby.com",
}

// ValidateEvent checks the user-correctable invariants: required fields,
// well-formed dates and times, and end not before start. It returns one
// FieldError per problem; an empty slice means the event may be shared.
func ValidateEvent(ev *models.Event) []models.FieldError {
	var errs []models.FieldError

	if strings.TrimSpace(ev.Title) == "" {
		errs = append(errs, models.FieldError{Field: "title", Message: "Title is required"})
	}

	datesOK := true
	if !DatePattern.MatchString(ev.StartDate) {
		errs = append(errs, models.FieldError{Field: "start_date", Message: "Start date is required (YYYY-MM-DD)"})
		datesOK = false
	}
	if !DatePattern.MatchString(ev.EndDate) {
		errs = append(errs, models.FieldError{Field: "end_date", Message: "End date is required (YYYY-MM-DD)"})
		datesOK = false
	}

	timesOK := true
	if !ev.AllDay {
		if ev.StartTime != "" && !TimePattern.MatchString(ev.StartTime) {
			errs = append(errs, models.FieldError{Field: "start_time", Message: "Start time must be HH:MM"})
			timesOK = false
		}
		if ev.EndTime != "" && !TimePattern.MatchString(ev.EndTime) {
			errs = append(errs, models.FieldError{Field: "end_time", Message: "End time must be HH:MM"})
			timesOK = false
		}
	}

	// Unknown timezones do not block sharing; the viewer gets an
	// offset-only display instead. Ordering is checked in the zone when it
	// is known, in UTC otherwise.
	if datesOK && timesOK {
		if msg := checkOrdering(ev); msg != "" {
			errs = append(errs, models.FieldError{Field: "end_date", Message: msg})
		}
	}

	return errs
}

func checkOrdering(ev *models.Event) string {
	if ev.AllDay {
		// Calendar-date comparison only; the strings are ISO ordered.
		if ev.EndDate < ev.StartDate {
			return "End date must not be before start date"
		}
		return ""
	}

	tz := ev.Timezone
	if !ValidTimezone(tz) {
		tz = "UTC"
	}
	start, err := tzdate.Instant(ev.StartDate, ev.StartTime, tz)
	if err != nil {
		return "Start date/time is invalid"
	}
	end, err := tzdate.Instant(ev.EndDate, ev.EndTime, tz)
	if err != nil {
		return "End date/time is invalid"
	}
	if end.Before(start) {
		return "End must not be before start"
	}
	return ""
}

// ValidTimezone reports whether name is a loadable IANA zone identifier.
func ValidTimezone(name string) bool {
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// LocationKind classifies an event location for display.
type LocationKind int

const (
	// LocationNone means no location was given.
	LocationNone LocationKind = iota
	// LocationPlace is free text, rendered as a maps search.
	LocationPlace
	// LocationLink is a URI or a known meeting host, rendered as-is.
	LocationLink
)

// ClassifyLocation decides whether a location string is a link or a place.
// extraDomains supplements the built-in meeting host list.
func ClassifyLocation(location string, extraDomains []string) LocationKind {
	loc := strings.TrimSpace(location)
	if loc == "" {
		return LocationNone
	}
	if linkScheme.MatchString(loc) {
		return LocationLink
	}

	host := strings.ToLower(loc)
	if i := strings.IndexAny(host, "/?# "); i >= 0 {
		host = host[:i]
	}
	for _, domain := range append(append([]string{}, defaultMeetingDomains...), extraDomains...) {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return LocationLink
		}
	}
	return LocationPlace
}
