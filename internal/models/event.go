package models

// Event is the canonical in-memory event record. It is built once from the
// form (or reconstructed from a share URL) and never mutated afterwards.
//
// Dates are calendar dates ("YYYY-MM-DD"), times are 24-hour wall-clock
// strings ("HH:MM") in the event's timezone. An empty StartTime/EndTime means
// midnight for timed events; for all-day events the time fields are ignored.
type Event struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date"`
	StartTime   string `json:"start_time,omitempty"`
	EndDate     string `json:"end_date"`
	EndTime     string `json:"end_time,omitempty"`
	Timezone    string `json:"timezone,omitempty"` // IANA name; empty = viewer's zone
	AllDay      bool   `json:"all_day,omitempty"`

	// Password is transient: it only feeds key derivation when building a
	// protected link. It is never serialized into the link itself.
	Password string `json:"password,omitempty"`
}
