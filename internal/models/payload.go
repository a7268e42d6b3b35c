package models

// BatchPayload is the body carried by queued and HTTP batch triggers.
type BatchPayload struct {
	Date string `json:"date,omitempty"` // YYYY-MM-DD, empty means today (UTC)
}
