package catalog

import "time"

// Course is a bookable course offered by a merchant.
type Course struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description,omitempty"`
	Merchant       string       `json:"merchant,omitempty"`
	Region         RegionCode   `json:"region"`
	Category       CategoryCode `json:"category"`
	PointsRequired int          `json:"pointsRequired"`
	JoinCount      int          `json:"joinCount"`
	OpenSlots      int          `json:"openSlots"`
	Rating         float64      `json:"rating"`

	// CreatedAt is nil for records imported without a creation date.
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// HasOpenSlots reports whether the course can still be booked.
func (c Course) HasOpenSlots() bool {
	return c.OpenSlots > 0
}

// CreatedWithin reports whether the course was created in the window
// ending at now. Courses without a creation date are never recent.
func (c Course) CreatedWithin(window time.Duration, now time.Time) bool {
	if c.CreatedAt == nil {
		return false
	}
	return !c.CreatedAt.Before(now.Add(-window))
}
