package analytics

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"rsv-catalog/internal/pkg/clock"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/shared"

	"github.com/google/uuid"
)

const defaultTrendDays = 30

type RegionStats struct {
	Templates int     `json:"templates"`
	TotalUses int     `json:"totalUses"`
	AvgRating float64 `json:"avgRating"`
	ratings   int
}

type QuickStats struct {
	TotalViews        int     `json:"totalViews"`
	TotalUses         int     `json:"totalUses"`
	TotalTemplates    int     `json:"totalTemplates"`
	AvgConversionRate float64 `json:"avgConversionRate"`
	TopTemplate       string  `json:"topTemplate"`
	GrowthRate        float64 `json:"growthRate"`
}

type Manager interface {
	Track(ctx context.Context, e Event) (*Event, error)
	Events(ctx context.Context) []Event
	TemplateAnalytics(ctx context.Context, templateID string) (*TemplateAnalytics, bool)
	All(ctx context.Context) []TemplateAnalytics
	Recompute(ctx context.Context) error

	TopPerforming(ctx context.Context, limit int) []TemplateAnalytics
	ByCategory(ctx context.Context) map[string][]TemplateAnalytics
	RegionalPerformance(ctx context.Context) map[string]*RegionStats
	Trend(ctx context.Context, templateID string, days int) Trend
	QuickStats(ctx context.Context) QuickStats

	GenerateReport(ctx context.Context, req ReportRequest) (*Report, error)
	Reports(ctx context.Context) []Report
}

type managerImpl struct {
	mu     sync.Mutex
	db     shared.Persistence
	clock  clock.Clock
	logger *slog.Logger
}

func NewManager(db shared.Persistence, clk clock.Clock, logger *slog.Logger) Manager {
	return &managerImpl{db: db, clock: clk, logger: logger}
}

func (m *managerImpl) Events(ctx context.Context) []Event {
	return shared.LoadList[Event](ctx, m.db, shared.KeyAnalyticsEvents)
}

func (m *managerImpl) All(ctx context.Context) []TemplateAnalytics {
	return shared.LoadList[TemplateAnalytics](ctx, m.db, shared.KeyTemplateAnalytics)
}

// Track appends the event, trimming the log to the newest entries, and folds
// it into the template's aggregate.
func (m *managerImpl) Track(ctx context.Context, e Event) (*Event, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.UserID == "" {
		e.UserID = shared.DefaultActorID
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = m.clock.Now()
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	events := append(m.Events(ctx), e)
	if len(events) > maxEvents {
		events = events[len(events)-maxEvents:]
	}
	if err := m.db.Save(ctx, shared.KeyAnalyticsEvents, events); err != nil {
		return nil, errs.Wrap(err, "failed to save analytics events")
	}

	all := m.All(ctx)
	idx := -1
	for i := range all {
		if all[i].TemplateID == e.TemplateID {
			idx = i
			break
		}
	}
	if idx < 0 {
		all = append(all, newTemplateAnalytics(e.TemplateID))
		idx = len(all) - 1
	}
	all[idx].apply(e)
	if err := m.db.Save(ctx, shared.KeyTemplateAnalytics, all); err != nil {
		return nil, errs.Wrap(err, "failed to save template analytics")
	}
	return &e, nil
}

func (m *managerImpl) TemplateAnalytics(ctx context.Context, templateID string) (*TemplateAnalytics, bool) {
	for _, a := range m.All(ctx) {
		if a.TemplateID == templateID {
			return &a, true
		}
	}
	return nil, false
}

// Recompute rebuilds every aggregate from the retained event log.
func (m *managerImpl) Recompute(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := Fold(m.Events(ctx))
	if err := m.db.Save(ctx, shared.KeyTemplateAnalytics, all); err != nil {
		return errs.Wrap(err, "failed to save template analytics")
	}
	m.logger.Info("analytics aggregates recomputed", "templates", len(all))
	return nil
}

// Fold derives aggregates from events, in order of each template's first event.
func Fold(events []Event) []TemplateAnalytics {
	out := []TemplateAnalytics{}
	index := map[string]int{}
	for _, e := range events {
		i, ok := index[e.TemplateID]
		if !ok {
			out = append(out, newTemplateAnalytics(e.TemplateID))
			i = len(out) - 1
			index[e.TemplateID] = i
		}
		out[i].apply(e)
	}
	return out
}

func (m *managerImpl) TopPerforming(ctx context.Context, limit int) []TemplateAnalytics {
	return topPerforming(m.All(ctx), limit)
}

func topPerforming(all []TemplateAnalytics, limit int) []TemplateAnalytics {
	sort.SliceStable(all, func(i, j int) bool { return all[i].score() > all[j].score() })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

func (m *managerImpl) ByCategory(ctx context.Context) map[string][]TemplateAnalytics {
	return byCategory(m.All(ctx))
}

func byCategory(all []TemplateAnalytics) map[string][]TemplateAnalytics {
	out := map[string][]TemplateAnalytics{}
	for _, a := range all {
		out[a.Category] = append(out[a.Category], a)
	}
	return out
}

func (m *managerImpl) RegionalPerformance(ctx context.Context) map[string]*RegionStats {
	return regionalPerformance(m.All(ctx))
}

// regionalPerformance weights each region's average rating by rating count.
func regionalPerformance(all []TemplateAnalytics) map[string]*RegionStats {
	out := map[string]*RegionStats{}
	for _, a := range all {
		r, ok := out[a.region()]
		if !ok {
			r = &RegionStats{}
			out[a.region()] = r
		}
		r.Templates++
		r.TotalUses += a.Metrics.Uses
		r.ratings += a.Metrics.Ratings
		r.AvgRating += a.Metrics.AverageRating * float64(a.Metrics.Ratings)
	}
	for _, r := range out {
		if r.ratings > 0 {
			r.AvgRating /= float64(r.ratings)
		}
	}
	return out
}

func (m *managerImpl) Trend(ctx context.Context, templateID string, days int) Trend {
	if days <= 0 {
		days = defaultTrendDays
	}
	a, ok := m.TemplateAnalytics(ctx, templateID)
	if !ok {
		return stableTrend()
	}
	series := a.DailyUses
	if len(series) > days {
		series = series[len(series)-days:]
	}
	ys := make([]float64, len(series))
	for i, d := range series {
		ys[i] = float64(d.Value)
	}
	return EstimateTrend(ys)
}

func (m *managerImpl) QuickStats(ctx context.Context) QuickStats {
	all := m.All(ctx)
	qs := QuickStats{TotalTemplates: len(all), TopTemplate: "N/A"}

	var conversion float64
	topUses := -1
	for _, a := range all {
		qs.TotalViews += a.Metrics.Views
		qs.TotalUses += a.Metrics.Uses
		conversion += a.Metrics.ConversionRate
		if a.Metrics.Uses > topUses {
			topUses = a.Metrics.Uses
			qs.TopTemplate = a.TemplateName
		}
	}
	if len(all) > 0 {
		qs.AvgConversionRate = conversion / float64(len(all))
	}

	now := m.clock.Now()
	recentStart := now.AddDate(0, 0, -30)
	previousStart := now.AddDate(0, 0, -60)
	var recent, previous int
	for _, e := range m.Events(ctx) {
		switch {
		case e.Timestamp.After(now):
		case !e.Timestamp.Before(recentStart):
			recent++
		case !e.Timestamp.Before(previousStart):
			previous++
		}
	}
	if previous > 0 {
		qs.GrowthRate = float64(recent-previous) / float64(previous) * 100
	}
	return qs
}
