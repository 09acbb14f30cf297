// Package codec maps an event record to and from its canonical URL
// query-string representation.
//
// The key alphabet is fixed and versioned: t (title), d (description),
// l (location), sd/st (start date/time), ed/et (end date/time), tz (IANA
// timezone), a (all-day presence flag). Keys whose value is the field's
// default are omitted entirely; absence means "default" on decode, never an
// error. Serialized output orders keys lexicographically so the same event
// always produces the same string.
package codec

import (
	"net/url"
	"sort"
	"strings"

	"calshare/internal/models"
)

// Query parameter keys.
const (
	KeyTitle       = "t"
	KeyDescription = "d"
	KeyLocation    = "l"
	KeyStartDate   = "sd"
	KeyStartTime   = "st"
	KeyEndDate     = "ed"
	KeyEndTime     = "et"
	KeyTimezone    = "tz"
	KeyAllDay      = "a"
)

// Encode produces the query parameter map for an event. Empty optional
// fields are left out; time fields are left out for all-day events. The
// all-day flag is presence-only: its value is irrelevant.
func Encode(ev *models.Event) map[string]string {
	params := map[string]string{
		KeyTitle:     ev.Title,
		KeyStartDate: ev.StartDate,
		KeyEndDate:   ev.EndDate,
	}
	if ev.Description != "" {
		params[KeyDescription] = ev.Description
	}
	if ev.Location != "" {
		params[KeyLocation] = ev.Location
	}
	if ev.Timezone != "" {
		params[KeyTimezone] = ev.Timezone
	}
	if ev.AllDay {
		params[KeyAllDay] = ""
	} else {
		if ev.StartTime != "" {
			params[KeyStartTime] = ev.StartTime
		}
		if ev.EndTime != "" {
			params[KeyEndTime] = ev.EndTime
		}
	}
	return params
}

// Decode rebuilds an event from a query parameter map. Unknown keys are
// ignored. The all-day flag is true whenever the "a" key is present,
// regardless of its value.
func Decode(params map[string]string) *models.Event {
	_, allDay := params[KeyAllDay]
	ev := &models.Event{
		Title:       params[KeyTitle],
		Description: params[KeyDescription],
		Location:    params[KeyLocation],
		StartDate:   params[KeyStartDate],
		EndDate:     params[KeyEndDate],
		Timezone:    params[KeyTimezone],
		AllDay:      allDay,
	}
	if !allDay {
		ev.StartTime = params[KeyStartTime]
		ev.EndTime = params[KeyEndTime]
	}
	return ev
}

// Serialize renders a parameter map as a query string with keys in
// lexicographic order. The ordering is a determinism contract for caching
// and testing; Deserialize does not depend on it.
func Serialize(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(EscapeComponent(k))
		b.WriteByte('=')
		b.WriteString(EscapeComponent(params[k]))
	}
	return b.String()
}

// Deserialize splits a query string into a parameter map: split on '&', then
// on the first '=', percent-decoding each side independently. When the same
// key appears more than once, the last occurrence wins. Pairs that fail to
// decode are skipped.
func Deserialize(query string) map[string]string {
	out := make(map[string]string)
	if query == "" {
		return out
	}
	for _, part := range strings.Split(query, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		dk, err := unescapeComponent(k)
		if err != nil {
			continue
		}
		dv, err := unescapeComponent(v)
		if err != nil {
			continue
		}
		out[dk] = dv
	}
	return out
}

// EscapeComponent percent-encodes a string for use inside a query component.
// Unlike url.QueryEscape it encodes space as %20 (never '+') and leaves the
// characters - _ . ! ~ * ' ( ) bare, so output is byte-identical to what
// other implementations of the link format produce.
func EscapeComponent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// unescapeComponent decodes %XX sequences only. A literal '+' stays a '+';
// it is not a space in this format.
func unescapeComponent(s string) (string, error) {
	return url.PathUnescape(s)
}
