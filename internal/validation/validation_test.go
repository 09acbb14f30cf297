package validation

import (
	"testing"

	"calshare/internal/models"
)

func validEvent() *models.Event {
	return &models.Event{
		Title:     "Team Meeting",
		StartDate: "2025-12-25",
		StartTime: "14:00",
		EndDate:   "2025-12-25",
		EndTime:   "15:00",
		Timezone:  "UTC",
	}
}

func TestValidateEvent(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.Event)
		wantField string // empty = expect no errors
	}{
		{"valid timed event", func(ev *models.Event) {}, ""},
		{"whitespace title", func(ev *models.Event) { ev.Title = "   " }, "title"},
		{"missing start date", func(ev *models.Event) { ev.StartDate = "" }, "start_date"},
		{"malformed start date", func(ev *models.Event) { ev.StartDate = "25/12/2025" }, "start_date"},
		{"missing end date", func(ev *models.Event) { ev.EndDate = "" }, "end_date"},
		{"malformed start time", func(ev *models.Event) { ev.StartTime = "2pm" }, "start_time"},
		{"malformed end time", func(ev *models.Event) { ev.EndTime = "25:00" }, "end_time"},
		{
			"end before start same day",
			func(ev *models.Event) { ev.StartTime = "10:00"; ev.EndTime = "09:00" },
			"end_date",
		},
		{
			"end date before start date",
			func(ev *models.Event) { ev.EndDate = "2025-12-24" },
			"end_date",
		},
		{
			"equal start and end is allowed",
			func(ev *models.Event) { ev.EndTime = "14:00" },
			"",
		},
		{
			"empty times default to midnight",
			func(ev *models.Event) { ev.StartTime = ""; ev.EndTime = "" },
			"",
		},
		{
			"unknown timezone does not block",
			func(ev *models.Event) { ev.Timezone = "Mars/Olympus_Mons" },
			"",
		},
		{
			"all day ignores time fields",
			func(ev *models.Event) { ev.AllDay = true; ev.StartTime = "bogus"; ev.EndTime = "24:99" },
			"",
		},
		{
			"all day end before start",
			func(ev *models.Event) { ev.AllDay = true; ev.EndDate = "2025-12-20" },
			"end_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := validEvent()
			tt.mutate(ev)
			errs := ValidateEvent(ev)

			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Errorf("ValidateEvent() = %v, want no errors", errs)
				}
				return
			}
			for _, e := range errs {
				if e.Field == tt.wantField {
					return
				}
			}
			t.Errorf("ValidateEvent() = %v, want error on field %q", errs, tt.wantField)
		})
	}
}

func TestValidateEventOrderingAcrossZones(t *testing.T) {
	// 09:00–10:00 New York is a valid hour regardless of the UTC date math.
	ev := validEvent()
	ev.Timezone = "America/New_York"
	ev.StartTime = "09:00"
	ev.EndTime = "10:00"
	if errs := ValidateEvent(ev); len(errs) != 0 {
		t.Errorf("ValidateEvent() = %v, want no errors", errs)
	}
}

func TestValidTimezone(t *testing.T) {
	tests := []struct {
		name string
		zone string
		want bool
	}{
		{"utc", "UTC", true},
		{"iana name", "America/New_York", true},
		{"empty", "", false},
		{"garbage", "Not/A_Zone", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidTimezone(tt.zone); got != tt.want {
				t.Errorf("ValidTimezone(%q) = %v, want %v", tt.zone, got, tt.want)
			}
		})
	}
}

func TestClassifyLocation(t *testing.T) {
	tests := []struct {
		name     string
		location string
		extra    []string
		want     LocationKind
	}{
		{"empty", "", nil, LocationNone},
		{"whitespace only", "   ", nil, LocationNone},
		{"https url", "https://example.com/room", nil, LocationLink},
		{"http url", "http://example.com", nil, LocationLink},
		{"uppercase scheme", "HTTPS://EXAMPLE.COM", nil, LocationLink},
		{"mailto with slashes", "mailto://host@example.com", nil, LocationLink},
		{"mailto plain", "mailto:host@example.com", nil, LocationLink},
		{"tel", "tel:+15551234567", nil, LocationLink},
		{"bare zoom host", "zoom.us/j/9999", nil, LocationLink},
		{"zoom subdomain", "us02web.zoom.us/j/9999", nil, LocationLink},
		{"google meet", "meet.google.com/abc-defg-hij", nil, LocationLink},
		{"teams", "teams.microsoft.com/l/meetup-join/x", nil, LocationLink},
		{"street address", "221B Baker Street, London", nil, LocationPlace},
		{"venue name", "Blue Note Jazz Club", nil, LocationPlace},
		{"lookalike host", "notzoom.usa.example.com", nil, LocationPlace},
		{"extra domain", "meet.corp.example/room1", []string{"meet.corp.example"}, LocationLink},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyLocation(tt.location, tt.extra); got != tt.want {
				t.Errorf("ClassifyLocation(%q) = %v, want %v", tt.location, got, tt.want)
			}
		})
	}
}
