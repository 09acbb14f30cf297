// Package share composes share links from event records and resolves them
// back. A link is either a plain query string over the fixed key alphabet or
// a single opaque "h" parameter carrying the encrypted payload.
package share

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"calshare/internal/codec"
	"calshare/internal/crypto"
	"calshare/internal/models"
	"calshare/internal/tzdate"
	"calshare/internal/validation"
)

// sharePath is the public path that renders a shared event.
const sharePath = "/share"

// icsPath serves the generated iCalendar file; the Apple link points here so
// the file stays same-origin.
const icsPath = "/event.ics"

// UnlockState describes a protected link waiting for its password.
type UnlockState struct {
	Cipher string
}

// Composer builds and resolves share links for one deployment.
type Composer struct {
	baseURL    string
	iterations int
}

// NewComposer creates a composer. baseURL is the deployment origin without a
// trailing slash; iterations is the PBKDF2 count for new protected links
// (clamped upward by the crypto package).
func NewComposer(baseURL string, iterations int) *Composer {
	return &Composer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		iterations: iterations,
	}
}

// BuildLink produces the share URL for an event. Without a password the
// event is carried as plain query parameters; with one, the serialized
// parameters are encrypted and the URL carries only the opaque h token.
func (c *Composer) BuildLink(ev *models.Event, password string) (string, error) {
	qs := codec.Serialize(codec.Encode(ev))
	if password == "" {
		return c.baseURL + sharePath + "?" + qs, nil
	}

	token, err := crypto.Encrypt(qs, password, c.iterations)
	if err != nil {
		return "", fmt.Errorf("encrypt payload: %w", err)
	}
	return c.baseURL + sharePath + "?h=" + codec.EscapeComponent(token), nil
}

// ResolveFromLink reconstructs an event from a share URL or bare query
// string. For protected links it returns an UnlockState instead; the caller
// collects a password and finishes with ResolveProtected.
func ResolveFromLink(rawURL string) (*models.Event, *UnlockState, error) {
	query := rawURL
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		query = rawURL[i+1:]
	} else if u, err := url.Parse(rawURL); err == nil && u.RawQuery != "" {
		query = u.RawQuery
	}

	params := codec.Deserialize(query)
	if cipher, ok := params["h"]; ok {
		return nil, &UnlockState{Cipher: cipher}, nil
	}
	return codec.Decode(params), nil, nil
}

// ResolveProtected decrypts the h token of a protected link and decodes the
// recovered query string. Crypto errors pass through unchanged so callers
// can map them onto user-facing messages.
func ResolveProtected(cipher, password string) (*models.Event, error) {
	qs, err := crypto.Decrypt(cipher, password)
	if err != nil {
		return nil, err
	}
	return codec.Decode(codec.Deserialize(qs)), nil
}

// ProviderLinks are the per-provider deep links plus the same-origin ICS
// path used for Apple Calendar and the raw download.
type ProviderLinks struct {
	Google    string
	Outlook   string
	Office365 string
	Yahoo     string
	AppleICS  string
}

// Links builds the provider deep links for an event. Timed events use
// UTC-anchored timestamps; all-day events use bare calendar dates with each
// provider's all-day flag.
func Links(ev *models.Event) (ProviderLinks, error) {
	var startStr, endStr string
	if ev.AllDay {
		startStr, endStr = ev.StartDate, ev.EndDate
	} else {
		start, end, err := Instants(ev)
		if err != nil {
			return ProviderLinks{}, err
		}
		startStr = start.UTC().Format(time.RFC3339)
		endStr = end.UTC().Format(time.RFC3339)
	}

	title := codec.EscapeComponent(ev.Title)
	details := codec.EscapeComponent(ev.Description)
	location := codec.EscapeComponent(ev.Location)

	google := fmt.Sprintf(
		"https://calendar.google.com/calendar/render?action=TEMPLATE&text=%s&details=%s&location=%s&dates=%s/%s",
		title, details, location, sanitizeDate(startStr), sanitizeDate(endStr))

	allDaySuffix := ""
	if ev.AllDay {
		allDaySuffix = "&allday=true"
	}
	outlook := fmt.Sprintf(
		"https://outlook.live.com/calendar/0/deeplink/compose?subject=%s&body=%s&location=%s&startdt=%s&enddt=%s%s",
		title, details, location, startStr, endStr, allDaySuffix)
	office365 := fmt.Sprintf(
		"https://outlook.office.com/calendar/0/deeplink/compose?subject=%s&body=%s&location=%s&startdt=%s&enddt=%s%s",
		title, details, location, startStr, endStr, allDaySuffix)

	yahooDur := ""
	yahooStart, yahooEnd := sanitizeDate(startStr), sanitizeDate(endStr)
	if ev.AllDay {
		yahooDur = "allday"
		yahooStart, yahooEnd = startStr, endStr
	}
	yahoo := fmt.Sprintf(
		"https://calendar.yahoo.com/?v=60&title=%s&st=%s&et=%s&desc=%s&in_loc=%s&dur=%s",
		title, yahooStart, yahooEnd, details, location, yahooDur)

	return ProviderLinks{
		Google:    google,
		Outlook:   outlook,
		Office365: office365,
		Yahoo:     yahoo,
		AppleICS:  icsPath + "?" + codec.Serialize(codec.Encode(ev)),
	}, nil
}

// Instants resolves the event boundaries to UTC instants. An unknown or
// empty timezone falls back to UTC; it never blocks resolution.
func Instants(ev *models.Event) (start, end time.Time, err error) {
	tz := ev.Timezone
	if !validation.ValidTimezone(tz) {
		tz = "UTC"
	}
	if start, err = tzdate.Instant(ev.StartDate, ev.StartTime, tz); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("resolve start: %w", err)
	}
	if end, err = tzdate.Instant(ev.EndDate, ev.EndTime, tz); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("resolve end: %w", err)
	}
	return start, end, nil
}

// sanitizeDate strips dashes and colons from an ISO timestamp:
// "2025-12-25T14:00:00Z" becomes "20251225T140000Z".
func sanitizeDate(s string) string {
	return strings.NewReplacer("-", "", ":", "").Replace(s)
}

// TimezoneDisplay returns the event's zone name, or the viewer-local
// ±HH:MM offset at the start instant when no zone name is carried.
func TimezoneDisplay(ev *models.Event, start time.Time) string {
	if ev.Timezone != "" {
		return ev.Timezone
	}
	return tzdate.OffsetDisplay(start)
}
