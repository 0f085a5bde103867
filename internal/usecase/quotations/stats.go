package quotations

import (
	"context"
	"time"

	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/clock"
)

type Bucket struct {
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

func (b *Bucket) add(v float64) {
	b.Count++
	b.Value += v
}

type Period struct {
	Total int     `json:"total"`
	Value float64 `json:"value"`
}

type Stats struct {
	Total      int     `json:"total"`
	TotalValue float64 `json:"totalValue"`
	Approved   int     `json:"approved"`
	Pending    int     `json:"pending"`
	Rejected   int     `json:"rejected"`
	Draft      int     `json:"draft"`
	Expired    int     `json:"expired"`

	ThisMonth Period `json:"thisMonth"`
	LastMonth Period `json:"lastMonth"`

	ByType   map[quotation.Type]*Bucket   `json:"byType"`
	ByMonth  map[string]*Bucket           `json:"byMonth"`
	ByStatus map[quotation.Status]*Bucket `json:"byStatus"`
}

// GetStats folds over the current records on every call.
func (s *storeImpl) GetStats(ctx context.Context) Stats {
	return computeStats(s.load(ctx), s.clock.Now())
}

func computeStats(all []quotation.Quotation, now time.Time) Stats {
	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)
	nextMonthStart := thisMonthStart.AddDate(0, 1, 0)

	st := Stats{
		ByType:   map[quotation.Type]*Bucket{},
		ByMonth:  map[string]*Bucket{},
		ByStatus: map[quotation.Status]*Bucket{},
	}
	for _, q := range all {
		st.Total++
		st.TotalValue += q.Total

		switch q.Status {
		case quotation.StatusApproved:
			st.Approved++
		case quotation.StatusSent:
			st.Pending++
		case quotation.StatusRejected:
			st.Rejected++
		case quotation.StatusDraft:
			st.Draft++
		case quotation.StatusExpired:
			st.Expired++
		}

		created := q.CreatedAt.In(now.Location())
		switch {
		case !created.Before(thisMonthStart) && created.Before(nextMonthStart):
			st.ThisMonth.Total++
			st.ThisMonth.Value += q.Total
		case !created.Before(lastMonthStart) && created.Before(thisMonthStart):
			st.LastMonth.Total++
			st.LastMonth.Value += q.Total
		}

		bucket(st.ByType, q.Type).add(q.Total)
		bucket(st.ByStatus, q.Status).add(q.Total)
		bucket(st.ByMonth, clock.MonthKey(created)).add(q.Total)
	}
	return st
}

func bucket[K comparable](m map[K]*Bucket, k K) *Bucket {
	b, ok := m[k]
	if !ok {
		b = &Bucket{}
		m[k] = b
	}
	return b
}
