// Package tzdate converts between local wall-clock event fields and absolute
// instants, and renders instants for display. It owns locale resolution and
// the 12/24-hour time parsing used by the form.
package tzdate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // IANA zone lookups must work without a host zoneinfo dir

	"golang.org/x/text/language"
)

// DefaultLocale is used when no language preference is available.
const DefaultLocale = "en-US"

// ErrParseTime is returned by To24Hour for strings that match neither the
// 24-hour nor the 12-hour pattern.
var ErrParseTime = errors.New("unrecognized time format")

// ResolveLocale returns the first language tag of an Accept-Language header,
// or DefaultLocale when the header is empty or unparseable. It never fails.
func ResolveLocale(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	return tags[0].String()
}

// Instant interprets dateStr ("YYYY-MM-DD") and timeStr ("HH:MM", empty
// means 00:00) as wall-clock time observed in the named IANA zone and
// returns the corresponding UTC instant.
//
// The conversion is a two-pass correction: the wall-clock values are first
// anchored as if they were UTC, that instant is viewed back in the target
// zone, and the delta between intended and observed wall-clock is subtracted.
// This makes DST edge cases deterministic without ever failing:
//
//   - a nonexistent spring-forward time resolves using the pre-transition
//     offset, landing just after the gap (02:30 in a 02:00→03:00 gap becomes
//     03:30 post-transition wall-clock);
//   - an ambiguous fall-back time resolves to the earlier, pre-transition
//     offset.
//
// An empty zone name means the local system zone. Unknown zone names return
// an error; callers fall back to UTC plus an offset-only display.
func Instant(dateStr, timeStr, tzName string) (time.Time, error) {
	year, month, day, err := splitDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute := 0, 0
	if timeStr != "" {
		if hour, minute, err = splitTime(timeStr); err != nil {
			return time.Time{}, err
		}
	}

	loc := time.Local
	if tzName != "" {
		if loc, err = time.LoadLocation(tzName); err != nil {
			return time.Time{}, fmt.Errorf("unknown timezone %q: %w", tzName, err)
		}
	}

	// First pass: pretend the wall-clock values are already UTC.
	anchor := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)

	// Observe that instant in the target zone and re-anchor the observed
	// wall-clock as UTC; the difference is the zone offset in effect.
	view := anchor.In(loc)
	observed := time.Date(view.Year(), view.Month(), view.Day(),
		view.Hour(), view.Minute(), view.Second(), 0, time.UTC)

	return anchor.Add(-observed.Sub(anchor)), nil
}

// FormatDateOnly renders the calendar date of an instant for display.
func FormatDateOnly(t time.Time, tzName string) string {
	if loc, err := time.LoadLocation(tzName); tzName != "" && err == nil {
		t = t.In(loc)
	}
	return t.Format("Monday, Jan 2, 2006")
}

// FormatTime renders the time of day of an instant in the given zone.
// Without a zone it falls back to the full UTC representation.
func FormatTime(t time.Time, tzName string) string {
	loc, err := time.LoadLocation(tzName)
	if tzName == "" || err != nil {
		return t.UTC().Format(time.RFC1123)
	}
	return t.In(loc).Format("15:04")
}

// FormatDateTime renders date and time of an instant in the given zone.
// Without a zone it falls back to the full UTC representation.
func FormatDateTime(t time.Time, tzName string) string {
	loc, err := time.LoadLocation(tzName)
	if tzName == "" || err != nil {
		return t.UTC().Format(time.RFC1123)
	}
	return t.In(loc).Format("Jan 2, 2006, 15:04")
}

// OffsetDisplay returns the ±HH:MM UTC offset of the local system zone at
// the given instant. Display-only fallback for events without a zone name.
func OffsetDisplay(t time.Time) string {
	_, offset := t.In(time.Local).Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("%s%02d:%02d", sign, offset/3600, offset%3600/60)
}

var (
	time24Pattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)
	time12Pattern = regexp.MustCompile(`^(1[0-2]|0?[1-9]):([0-5][0-9])\s*([AaPp])\.?[Mm]\.?$`)
)

// To24Hour normalizes a time string to "HH:MM". It accepts 24-hour input
// ("15:45") and 12-hour input ("3:45 PM"); anything else fails with
// ErrParseTime rather than being silently coerced.
func To24Hour(s string) (string, error) {
	s = strings.TrimSpace(s)

	if m := time24Pattern.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%02d:%s", hour, m[2]), nil
	}
	if m := time12Pattern.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour == 12 {
			hour = 0
		}
		if m[3] == "P" || m[3] == "p" {
			hour += 12
		}
		return fmt.Sprintf("%02d:%s", hour, m[2]), nil
	}
	return "", fmt.Errorf("%w: %q", ErrParseTime, s)
}

// TimeOptions lists the form's half-hour time slots: keys are 24-hour
// "HH:MM" values, labels are rendered for the locale (12-hour clock for
// en-US style locales, 24-hour otherwise).
func TimeOptions(locale string) map[string]string {
	layout := "15:04"
	if uses12Hour(locale) {
		layout = "3:04 PM"
	}

	options := make(map[string]string, 48)
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m += 30 {
			key := fmt.Sprintf("%02d:%02d", h, m)
			options[key] = time.Date(0, 1, 1, h, m, 0, 0, time.UTC).Format(layout)
		}
	}
	return options
}

func uses12Hour(locale string) bool {
	tag, err := language.Parse(locale)
	if err != nil {
		return false
	}
	region, _ := tag.Region()
	switch region.String() {
	case "US", "PH", "CA", "AU", "NZ", "IN":
		return true
	}
	return false
}

func splitDate(s string) (year, month, day int, err error) {
	if _, err = fmt.Sscanf(s, "%4d-%2d-%2d", &year, &month, &day); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid date %q: %w", s, err)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, 0, fmt.Errorf("invalid date %q", s)
	}
	return year, month, day, nil
}

func splitTime(s string) (hour, minute int, err error) {
	m := time24Pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrParseTime, s)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	return hour, minute, nil
}
