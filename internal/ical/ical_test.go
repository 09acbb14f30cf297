package ical

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"

	"calshare/internal/models"
)

func testGenerator() *Generator {
	g := New("calshare.test")
	g.now = func() time.Time {
		return time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	}
	return g
}

func TestGenerateTimedEvent(t *testing.T) {
	ev := &models.Event{
		Title:       "Team Meeting",
		Description: "Weekly sync",
		Location:    "Room 5",
		StartDate:   "2025-12-25",
		StartTime:   "14:00",
		EndDate:     "2025-12-25",
		EndTime:     "15:00",
		Timezone:    "UTC",
	}

	out, err := testGenerator().Generate(ev)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"BEGIN:VEVENT",
		"SUMMARY:Team Meeting",
		"DESCRIPTION:Weekly sync",
		"LOCATION:Room 5",
		"DTSTART:20251225T140000Z",
		"DTEND:20251225T150000Z",
		"DTSTAMP:20251201T100000Z",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if !strings.Contains(out, "\r\n") {
		t.Error("output must use CRLF line endings")
	}
	if !strings.Contains(out, "@calshare.test") {
		t.Error("UID must carry the app domain suffix")
	}
}

func TestGenerateTimezoneConversion(t *testing.T) {
	ev := &models.Event{
		Title:     "Breakfast",
		StartDate: "2025-01-15",
		StartTime: "09:00",
		EndDate:   "2025-01-15",
		EndTime:   "10:00",
		Timezone:  "America/New_York",
	}

	out, err := testGenerator().Generate(ev)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// 09:00 EST is 14:00 UTC.
	if !strings.Contains(out, "DTSTART:20250115T140000Z") {
		t.Errorf("DTSTART not converted to UTC:\n%s", out)
	}
}

func TestGenerateAllDayEvent(t *testing.T) {
	ev := &models.Event{
		Title:     "Christmas",
		StartDate: "2025-12-25",
		EndDate:   "2025-12-25",
		AllDay:    true,
	}

	out, err := testGenerator().Generate(ev)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(out, "DTSTART;VALUE=DATE:20251225") {
		t.Errorf("all-day DTSTART missing:\n%s", out)
	}
	// Exclusive end date.
	if !strings.Contains(out, "DTEND;VALUE=DATE:20251226") {
		t.Errorf("all-day DTEND missing:\n%s", out)
	}
	if strings.Contains(out, "DTSTART:2025") {
		t.Error("all-day event must not carry a time component")
	}
}

func TestGenerateOmitsEmptyOptionalFields(t *testing.T) {
	ev := &models.Event{
		Title:     "Minimal",
		StartDate: "2025-12-25",
		EndDate:   "2025-12-25",
		Timezone:  "UTC",
	}

	out, err := testGenerator().Generate(ev)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(out, "DESCRIPTION") {
		t.Error("empty description must be omitted")
	}
	if strings.Contains(out, "LOCATION") {
		t.Error("empty location must be omitted")
	}
}

func TestGenerateEscapingRoundTrip(t *testing.T) {
	// Escaping is the library's job; verify it by parsing the output back.
	ev := &models.Event{
		Title:       "Dinner, drinks; and more",
		Description: "Line one\nLine two, with commas; and \\backslash",
		StartDate:   "2025-12-25",
		StartTime:   "19:00",
		EndDate:     "2025-12-25",
		EndTime:     "22:00",
		Timezone:    "UTC",
	}

	out, err := testGenerator().Generate(ev)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("generated output does not parse: %v", err)
	}
	events := cal.Events()
	if len(events) != 1 {
		t.Fatalf("parsed %d events, want 1", len(events))
	}
	if got := events[0].GetProperty(ics.ComponentPropertySummary); got == nil {
		t.Fatal("parsed event has no SUMMARY")
	}
}

func TestGenerateUnknownZoneFallsBackToUTC(t *testing.T) {
	ev := &models.Event{
		Title:     "Somewhere",
		StartDate: "2025-12-25",
		StartTime: "14:00",
		EndDate:   "2025-12-25",
		EndTime:   "15:00",
		Timezone:  "Mars/Olympus_Mons",
	}

	out, err := testGenerator().Generate(ev)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "DTSTART:20251225T140000Z") {
		t.Errorf("unknown zone should fall back to UTC:\n%s", out)
	}
}

func TestGenerateEmptyZoneUsesUTC(t *testing.T) {
	// Events without a zone must not be interpreted in the server's local
	// zone, or the .ics would disagree with the provider links and vary by
	// deployment.
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	restore := time.Local
	time.Local = ny
	defer func() { time.Local = restore }()

	ev := &models.Event{
		Title:     "No zone",
		StartDate: "2025-12-25",
		StartTime: "14:00",
		EndDate:   "2025-12-25",
		EndTime:   "15:00",
	}

	out, err := testGenerator().Generate(ev)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "DTSTART:20251225T140000Z") {
		t.Errorf("empty zone should resolve as UTC regardless of server zone:\n%s", out)
	}
	if !strings.Contains(out, "DTEND:20251225T150000Z") {
		t.Errorf("empty zone DTEND should resolve as UTC:\n%s", out)
	}
}

func TestGenerateUIDsAreUnique(t *testing.T) {
	ev := &models.Event{
		Title:     "Same event",
		StartDate: "2025-12-25",
		EndDate:   "2025-12-25",
		AllDay:    true,
	}

	g := testGenerator()
	a, err := g.Generate(ev)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := g.Generate(ev)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if uidLine(t, a) == uidLine(t, b) {
		t.Error("two exports in the same tick produced identical UIDs")
	}
}

func uidLine(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\r\n") {
		if strings.HasPrefix(line, "UID:") {
			return line
		}
	}
	t.Fatalf("no UID line in:\n%s", out)
	return ""
}
