package share

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"calshare/internal/crypto"
	"calshare/internal/models"
)

const testBaseURL = "https://cal.example.com"

func teamMeeting() *models.Event {
	return &models.Event{
		Title:     "Team Meeting",
		StartDate: "2025-12-25",
		StartTime: "14:00",
		EndDate:   "2025-12-25",
		EndTime:   "15:00",
		Timezone:  "UTC",
	}
}

func TestBuildLinkPlain(t *testing.T) {
	c := NewComposer(testBaseURL, crypto.DefaultIterations)

	link, err := c.BuildLink(teamMeeting(), "")
	if err != nil {
		t.Fatalf("BuildLink: %v", err)
	}

	want := testBaseURL + "/share?ed=2025-12-25&et=15%3A00&sd=2025-12-25&st=14%3A00&t=Team%20Meeting&tz=UTC"
	if link != want {
		t.Errorf("BuildLink() = %q, want %q", link, want)
	}
}

func TestBuildLinkProtected(t *testing.T) {
	c := NewComposer(testBaseURL, crypto.DefaultIterations)

	link, err := c.BuildLink(teamMeeting(), "hunter2")
	if err != nil {
		t.Fatalf("BuildLink: %v", err)
	}

	prefix := testBaseURL + "/share?h=v1."
	if !strings.HasPrefix(link, prefix) {
		t.Fatalf("BuildLink() = %q, want prefix %q", link, prefix)
	}
	// Exactly one parameter: nothing else may ride along with h.
	if strings.Contains(link, "&") {
		t.Errorf("protected link must carry only the h parameter: %q", link)
	}
	// No event field may appear in the clear.
	if strings.Contains(link, "Team") || strings.Contains(link, "2025-12-25") {
		t.Errorf("protected link leaks event data: %q", link)
	}
}

func TestResolveFromLinkPlain(t *testing.T) {
	c := NewComposer(testBaseURL, crypto.DefaultIterations)
	ev := teamMeeting()

	link, err := c.BuildLink(ev, "")
	if err != nil {
		t.Fatalf("BuildLink: %v", err)
	}

	got, state, err := ResolveFromLink(link)
	if err != nil {
		t.Fatalf("ResolveFromLink: %v", err)
	}
	if state != nil {
		t.Fatal("plain link must not require a password")
	}
	if !reflect.DeepEqual(got, ev) {
		t.Errorf("ResolveFromLink() = %+v, want %+v", got, ev)
	}
}

func TestResolveFromLinkBareQuery(t *testing.T) {
	got, state, err := ResolveFromLink("sd=2025-01-02&ed=2025-01-02&t=Standup")
	if err != nil {
		t.Fatalf("ResolveFromLink: %v", err)
	}
	if state != nil {
		t.Fatal("unexpected unlock state")
	}
	if got.Title != "Standup" || got.StartDate != "2025-01-02" {
		t.Errorf("ResolveFromLink() = %+v", got)
	}
}

func TestResolveProtectedRoundTrip(t *testing.T) {
	c := NewComposer(testBaseURL, crypto.DefaultIterations)
	ev := teamMeeting()
	ev.Description = "Bring snacks & drinks"

	link, err := c.BuildLink(ev, "hunter2")
	if err != nil {
		t.Fatalf("BuildLink: %v", err)
	}

	_, state, err := ResolveFromLink(link)
	if err != nil {
		t.Fatalf("ResolveFromLink: %v", err)
	}
	if state == nil {
		t.Fatal("protected link must return an unlock state")
	}

	got, err := ResolveProtected(state.Cipher, "hunter2")
	if err != nil {
		t.Fatalf("ResolveProtected: %v", err)
	}
	if !reflect.DeepEqual(got, ev) {
		t.Errorf("ResolveProtected() = %+v, want %+v", got, ev)
	}
}

func TestResolveProtectedWrongPassword(t *testing.T) {
	c := NewComposer(testBaseURL, crypto.DefaultIterations)

	link, err := c.BuildLink(teamMeeting(), "hunter2")
	if err != nil {
		t.Fatalf("BuildLink: %v", err)
	}
	_, state, err := ResolveFromLink(link)
	if err != nil || state == nil {
		t.Fatalf("ResolveFromLink: state=%v err=%v", state, err)
	}

	if _, err := ResolveProtected(state.Cipher, "wrong"); !errors.Is(err, crypto.ErrDecryptionFailed) {
		t.Errorf("err = %v, want ErrDecryptionFailed", err)
	}
}

func TestResolveProtectedCorruptToken(t *testing.T) {
	if _, err := ResolveProtected("v2.only.three", "pw"); !errors.Is(err, crypto.ErrInvalidFormat) {
		t.Errorf("err = %v, want ErrInvalidFormat", err)
	}
}

func TestProviderLinksTimed(t *testing.T) {
	links, err := Links(teamMeeting())
	if err != nil {
		t.Fatalf("Links: %v", err)
	}

	if !strings.Contains(links.Google, "dates=20251225T140000Z/20251225T150000Z") {
		t.Errorf("google link dates wrong: %q", links.Google)
	}
	if !strings.Contains(links.Google, "text=Team%20Meeting") {
		t.Errorf("google link title wrong: %q", links.Google)
	}
	if !strings.Contains(links.Outlook, "startdt=2025-12-25T14%3A00%3A00Z") &&
		!strings.Contains(links.Outlook, "startdt=2025-12-25T14:00:00Z") {
		t.Errorf("outlook link start wrong: %q", links.Outlook)
	}
	if strings.Contains(links.Outlook, "allday") {
		t.Errorf("timed outlook link must not set allday: %q", links.Outlook)
	}
	if !strings.Contains(links.Office365, "outlook.office.com") {
		t.Errorf("office365 host wrong: %q", links.Office365)
	}
	if !strings.Contains(links.Yahoo, "st=20251225T140000Z&et=20251225T150000Z") {
		t.Errorf("yahoo link times wrong: %q", links.Yahoo)
	}
	if !strings.HasPrefix(links.AppleICS, "/event.ics?") {
		t.Errorf("apple link must be a same-origin ics path: %q", links.AppleICS)
	}
}

func TestProviderLinksAllDay(t *testing.T) {
	ev := &models.Event{
		Title:     "Conference",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-03",
		AllDay:    true,
	}

	links, err := Links(ev)
	if err != nil {
		t.Fatalf("Links: %v", err)
	}

	if !strings.Contains(links.Google, "dates=20250601/20250603") {
		t.Errorf("google all-day dates wrong: %q", links.Google)
	}
	if !strings.Contains(links.Outlook, "startdt=2025-06-01") || !strings.Contains(links.Outlook, "allday=true") {
		t.Errorf("outlook all-day link wrong: %q", links.Outlook)
	}
	if !strings.Contains(links.Yahoo, "dur=allday") {
		t.Errorf("yahoo all-day link wrong: %q", links.Yahoo)
	}
}

func TestProviderLinksZoneConversion(t *testing.T) {
	ev := &models.Event{
		Title:     "Breakfast",
		StartDate: "2025-01-15",
		StartTime: "09:00",
		EndDate:   "2025-01-15",
		EndTime:   "10:00",
		Timezone:  "America/New_York",
	}

	links, err := Links(ev)
	if err != nil {
		t.Fatalf("Links: %v", err)
	}
	if !strings.Contains(links.Google, "dates=20250115T140000Z/20250115T150000Z") {
		t.Errorf("google link not UTC-anchored: %q", links.Google)
	}
}

func TestTimezoneDisplay(t *testing.T) {
	ev := teamMeeting()
	start, _, err := Instants(ev)
	if err != nil {
		t.Fatalf("Instants: %v", err)
	}

	if got := TimezoneDisplay(ev, start); got != "UTC" {
		t.Errorf("TimezoneDisplay = %q, want UTC", got)
	}

	ev.Timezone = ""
	got := TimezoneDisplay(ev, start)
	if !strings.HasPrefix(got, "+") && !strings.HasPrefix(got, "-") {
		t.Errorf("TimezoneDisplay without zone = %q, want ±HH:MM offset", got)
	}
}
