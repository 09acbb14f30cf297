package models

// LinkResponse contains a freshly built share link.
type LinkResponse struct {
	URL       string `json:"url"`
	Protected bool   `json:"protected"`
}

// ResolveResponse contains the result of resolving a share link. Exactly one
// of Event or NeedsPassword is meaningful: when the link is password
// protected and no (or no correct) password was supplied yet, NeedsPassword
// is true and Event is nil.
type ResolveResponse struct {
	Event         *Event `json:"event,omitempty"`
	NeedsPassword bool   `json:"needs_password,omitempty"`
}

// FieldError describes a user-correctable validation failure on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
