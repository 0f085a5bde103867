package quotation

import (
	"slices"
	"time"
)

// Criteria combines every set field with AND. Empty criteria match everything.
type Criteria struct {
	Statuses []Status
	Types    []Type
	From     *time.Time
	To       *time.Time
	MinTotal *float64
	MaxTotal *float64
}

func (c Criteria) Matches(q *Quotation) bool {
	if len(c.Statuses) > 0 && !slices.Contains(c.Statuses, q.Status) {
		return false
	}
	if len(c.Types) > 0 && !slices.Contains(c.Types, q.Type) {
		return false
	}
	if c.From != nil && q.CreatedAt.Before(*c.From) {
		return false
	}
	if c.To != nil && q.CreatedAt.After(*c.To) {
		return false
	}
	if c.MinTotal != nil && q.Total < *c.MinTotal {
		return false
	}
	if c.MaxTotal != nil && q.Total > *c.MaxTotal {
		return false
	}
	return true
}
