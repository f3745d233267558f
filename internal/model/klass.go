package model

// KlassStatus enumerates the enrolment states the catalog feed reports.
type KlassStatus string

const (
	KlassStatusOpen      KlassStatus = "OPEN"
	KlassStatusFull      KlassStatus = "FULL"
	KlassStatusClosed    KlassStatus = "CLOSED"
	KlassStatusTentative KlassStatus = "TENT"
)

// Klass represents a single enrollable section (lecture, tutorial, lab) of a
// course. The klass spelling follows the upstream catalog's klass_id naming,
// which the public API keeps.
type Klass struct {
	KlassID    int64       `json:"klass_id"`
	CompoundID string      `json:"-"`
	Type       string      `json:"type"`
	Status     KlassStatus `json:"status"`
	Enrolled   int         `json:"enrolled"`
	Capacity   int         `json:"capacity"`
}
