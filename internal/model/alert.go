package model

import "time"

// ContactType enumerates the supported alert delivery channels.
type ContactType string

const (
	ContactTypeEmail ContactType = "EMAIL"
	ContactTypeSMS   ContactType = "SMS"
	ContactTypeYo    ContactType = "YO"
)

// Description returns the phrase used in confirmation copy ("you'll get
// an email when a spot opens up").
func (t ContactType) Description() string {
	switch t {
	case ContactTypeEmail:
		return "an email"
	case ContactTypeSMS:
		return "an SMS"
	case ContactTypeYo:
		return "a Yo"
	default:
		return string(t)
	}
}

// Contact is a validated, normalized contact method.
type Contact struct {
	Type  ContactType `json:"contact_type"`
	Value string      `json:"contact"`
}

// Alert is one registration row: notify the contact about the class with
// this klass_id. Rows are append-only; a separate notifier process consumes
// them, so nothing here updates or deletes them.
type Alert struct {
	ID          int64       `json:"id"`
	KlassID     int64       `json:"klass_id"`
	ContactType ContactType `json:"contact_type"`
	Contact     string      `json:"contact"`
	CreatedAt   time.Time   `json:"created_at"`
}

// SaveAlertsRequest is the payload for registering class alerts. One contact
// field is expected; pointers distinguish an absent field from an empty one,
// since an empty submitted value is a validation failure, not a fallthrough.
type SaveAlertsRequest struct {
	Email       *string `json:"email" binding:"omitempty"`
	PhoneNumber *string `json:"phonenumber" binding:"omitempty"`
	YoName      *string `json:"yoname" binding:"omitempty"`
	ClassIDs    []int64 `json:"classids" binding:"omitempty"`
}
