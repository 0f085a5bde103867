package analytics

import (
	"sort"
	"time"

	"rsv-catalog/internal/pkg/clock"
)

const (
	maxEvents           = 10000
	dailyWindowDays     = 90
	defaultCategory     = "Geral"
	defaultRegion       = "Geral"
	defaultTemplateName = "Template"
)

type DailyMetric struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

type Metrics struct {
	Views          int     `json:"totalViews"`
	Uses           int     `json:"totalUses"`
	Shares         int     `json:"totalShares"`
	Favorites      int     `json:"totalFavorites"`
	Comments       int     `json:"totalComments"`
	Ratings        int     `json:"totalRatings"`
	AverageRating  float64 `json:"averageRating"`
	ConversionRate float64 `json:"conversionRate"`
	Errors         int     `json:"totalErrors"`
}

// TemplateAnalytics is the materialized fold of every event for one template.
type TemplateAnalytics struct {
	TemplateID   string        `json:"templateId"`
	TemplateName string        `json:"templateName"`
	Category     string        `json:"category"`
	Region       string        `json:"region,omitempty"`
	Metrics      Metrics       `json:"metrics"`
	DailyViews   []DailyMetric `json:"dailyViews"`
	DailyUses    []DailyMetric `json:"dailyUses"`
	LastUpdated  time.Time     `json:"lastUpdated"`
}

func newTemplateAnalytics(templateID string) TemplateAnalytics {
	return TemplateAnalytics{
		TemplateID:   templateID,
		TemplateName: defaultTemplateName,
		Category:     defaultCategory,
		DailyViews:   []DailyMetric{},
		DailyUses:    []DailyMetric{},
	}
}

// apply folds a single event into the aggregate. Track and Recompute both go through here.
func (a *TemplateAnalytics) apply(e Event) {
	switch e.Kind {
	case KindView:
		a.Metrics.Views++
		a.DailyViews = bumpDaily(a.DailyViews, e.Timestamp)
	case KindUse:
		a.Metrics.Uses++
		a.DailyUses = bumpDaily(a.DailyUses, e.Timestamp)
		if p, ok := e.Payload.(UsePayload); ok {
			if p.TemplateName != "" {
				a.TemplateName = p.TemplateName
			}
			if p.Category != "" {
				a.Category = p.Category
			}
			if p.Region != "" {
				a.Region = p.Region
			}
		}
	case KindShare:
		a.Metrics.Shares++
	case KindFavorite:
		a.Metrics.Favorites++
	case KindComment:
		a.Metrics.Comments++
	case KindRating:
		if p, ok := e.Payload.(RatingPayload); ok {
			total := a.Metrics.AverageRating * float64(a.Metrics.Ratings)
			a.Metrics.Ratings++
			a.Metrics.AverageRating = (total + float64(p.Score)) / float64(a.Metrics.Ratings)
		}
	case KindError:
		a.Metrics.Errors++
	}

	if a.Metrics.Views > 0 {
		a.Metrics.ConversionRate = float64(a.Metrics.Uses) / float64(a.Metrics.Views) * 100
	}
	if e.Timestamp.After(a.LastUpdated) {
		a.LastUpdated = e.Timestamp
	}
}

func (a *TemplateAnalytics) score() int {
	return a.Metrics.Uses*2 + a.Metrics.Views + a.Metrics.Shares*3
}

func (a *TemplateAnalytics) region() string {
	if a.Region == "" {
		return defaultRegion
	}
	return a.Region
}

// bumpDaily increments the counter for ts's day, keeping the newest 90 days in date order.
func bumpDaily(series []DailyMetric, ts time.Time) []DailyMetric {
	day := clock.DayKey(ts.UTC())
	for i := range series {
		if series[i].Date == day {
			series[i].Value++
			return series
		}
	}
	series = append(series, DailyMetric{Date: day, Value: 1})
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	if len(series) > dailyWindowDays {
		series = series[len(series)-dailyWindowDays:]
	}
	return series
}
