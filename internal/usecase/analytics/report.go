package analytics

import (
	"context"
	"fmt"
	"slices"
	"time"

	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReportType string

const (
	ReportTemplate    ReportType = "template"
	ReportUser        ReportType = "user"
	ReportPerformance ReportType = "performance"
	ReportBusiness    ReportType = "business"
)

const maxReports = 50

var reportTitles = map[ReportType]string{
	ReportTemplate:    "Relatório de Performance de Templates",
	ReportUser:        "Relatório de Engajamento de Usuários",
	ReportPerformance: "Relatório de Performance Técnica",
	ReportBusiness:    "Relatório de Métricas de Negócio",
}

func (t ReportType) IsValid() bool {
	_, ok := reportTitles[t]
	return ok
}

type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (p Period) contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

type ReportRequest struct {
	Type        ReportType
	Period      Period
	TemplateIDs []string
	Actor       string
}

type ReportData struct {
	TotalTemplates      int                            `json:"totalTemplates"`
	TotalEvents         int                            `json:"totalEvents"`
	TopTemplates        []TemplateAnalytics            `json:"topTemplates"`
	CategoryBreakdown   map[string][]TemplateAnalytics `json:"categoryBreakdown"`
	RegionalPerformance map[string]*RegionStats        `json:"regionalPerformance"`
	Period              Period                         `json:"period"`
}

type Insight struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Impact      string  `json:"impact"`
	Confidence  float64 `json:"confidence"`
}

type Recommendation struct {
	Priority       string   `json:"priority"`
	Category       string   `json:"category"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	ExpectedImpact string   `json:"expectedImpact"`
	Effort         string   `json:"effort"`
	ActionItems    []string `json:"actionItems"`
}

type Report struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Type            ReportType       `json:"type"`
	Period          Period           `json:"period"`
	Data            ReportData       `json:"data"`
	Insights        []Insight        `json:"insights"`
	Recommendations []Recommendation `json:"recommendations"`
	CreatedAt       time.Time        `json:"createdAt"`
	CreatedBy       string           `json:"createdBy"`
}

func (m *managerImpl) Reports(ctx context.Context) []Report {
	return shared.LoadList[Report](ctx, m.db, shared.KeyAnalyticsReports)
}

// GenerateReport snapshots the aggregates (optionally restricted to TemplateIDs),
// derives insights and recommendations, and stores the report.
func (m *managerImpl) GenerateReport(ctx context.Context, req ReportRequest) (*Report, error) {
	if !req.Type.IsValid() {
		return nil, errs.Wrap(errs.ErrInvalidEvent, "unknown report type "+string(req.Type))
	}
	now := m.clock.Now()
	if req.Period.End.IsZero() {
		req.Period.End = now
	}
	if req.Period.Start.IsZero() {
		req.Period.Start = req.Period.End.AddDate(0, 0, -30)
	}
	if req.Actor == "" {
		req.Actor = shared.DefaultActorID
	}

	all := m.All(ctx)
	if len(req.TemplateIDs) > 0 {
		all = slices.DeleteFunc(all, func(a TemplateAnalytics) bool {
			return !slices.Contains(req.TemplateIDs, a.TemplateID)
		})
	}

	totalEvents := 0
	for _, e := range m.Events(ctx) {
		if req.Period.contains(e.Timestamp) {
			totalEvents++
		}
	}

	regional := regionalPerformance(all)
	report := Report{
		ID:     uuid.NewString(),
		Title:  reportTitles[req.Type],
		Type:   req.Type,
		Period: req.Period,
		Data: ReportData{
			TotalTemplates:      len(all),
			TotalEvents:         totalEvents,
			TopTemplates:        topPerforming(slices.Clone(all), 10),
			CategoryBreakdown:   byCategory(all),
			RegionalPerformance: regional,
			Period:              req.Period,
		},
		Insights:        insights(all, regional),
		Recommendations: recommendations(all, regional),
		CreatedAt:       now,
		CreatedBy:       req.Actor,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	reports := append(m.Reports(ctx), report)
	if len(reports) > maxReports {
		reports = reports[len(reports)-maxReports:]
	}
	if err := m.db.Save(ctx, shared.KeyAnalyticsReports, reports); err != nil {
		return nil, errs.Wrap(err, "failed to save analytics report")
	}
	return &report, nil
}

func insights(all []TemplateAnalytics, regional map[string]*RegionStats) []Insight {
	out := []Insight{}

	top := topPerforming(slices.Clone(all), 3)
	if len(top) > 0 {
		out = append(out, Insight{
			Type:        "positive",
			Title:       "Templates de Alto Desempenho",
			Description: fmt.Sprintf("O template %q lidera em performance com %d usos.", top[0].TemplateName, top[0].Metrics.Uses),
			Impact:      "high",
			Confidence:  0.9,
		})
	}

	if len(all) > 0 {
		var sum float64
		for _, a := range all {
			sum += a.Metrics.ConversionRate
		}
		avg := sum / float64(len(all))
		low := 0
		for _, a := range all {
			if a.Metrics.ConversionRate < avg*0.5 {
				low++
			}
		}
		if low > 0 {
			out = append(out, Insight{
				Type:        "negative",
				Title:       "Baixa Taxa de Conversão",
				Description: fmt.Sprintf("%d templates têm taxa de conversão abaixo da média (%.1f%%).", low, avg),
				Impact:      "medium",
				Confidence:  0.8,
			})
		}
	}

	bestRegion, bestUses := "", 0
	for _, name := range sortedKeys(regional) {
		if r := regional[name]; r.TotalUses > bestUses {
			bestRegion, bestUses = name, r.TotalUses
		}
	}
	if bestRegion != "" {
		out = append(out, Insight{
			Type:        "positive",
			Title:       "Região de Destaque",
			Description: fmt.Sprintf("Templates da região %q têm excelente performance com %d usos totais.", bestRegion, bestUses),
			Impact:      "medium",
			Confidence:  0.7,
		})
	}
	return out
}

func recommendations(all []TemplateAnalytics, regional map[string]*RegionStats) []Recommendation {
	out := []Recommendation{}

	if slices.ContainsFunc(all, func(a TemplateAnalytics) bool { return a.Metrics.ConversionRate < 10 }) {
		out = append(out, Recommendation{
			Priority:       "high",
			Category:       "optimization",
			Title:          "Otimizar Templates com Baixa Conversão",
			Description:    "Alguns templates têm muitas visualizações mas poucos usos. Isso indica problemas na apresentação ou conteúdo.",
			ExpectedImpact: "Aumento de 20-30% na taxa de conversão",
			Effort:         "medium",
			ActionItems: []string{
				"Revisar títulos e descrições dos templates",
				"Melhorar preview e imagens",
				"Simplificar processo de uso",
				"Adicionar mais informações sobre benefícios",
			},
		})
	}

	for _, r := range regional {
		if r.Templates < 3 {
			out = append(out, Recommendation{
				Priority:       "medium",
				Category:       "content",
				Title:          "Expandir Templates Regionais",
				Description:    "Algumas regiões têm poucos templates disponíveis, representando oportunidade de crescimento.",
				ExpectedImpact: "Aumento de 15-25% no uso total",
				Effort:         "high",
				ActionItems: []string{
					"Pesquisar demanda por região",
					"Criar templates específicos para regiões com poucos modelos",
					"Adaptar templates existentes para outras regiões",
					"Fazer parcerias locais para conteúdo",
				},
			})
			break
		}
	}

	if slices.ContainsFunc(all, func(a TemplateAnalytics) bool { return a.Metrics.AverageRating < 4 && a.Metrics.Ratings > 5 }) {
		out = append(out, Recommendation{
			Priority:       "medium",
			Category:       "optimization",
			Title:          "Melhorar Qualidade dos Templates",
			Description:    "Alguns templates têm avaliações baixas e precisam de melhorias.",
			ExpectedImpact: "Melhoria na satisfação do usuário",
			Effort:         "medium",
			ActionItems: []string{
				"Analisar feedback dos usuários",
				"Atualizar conteúdo desatualizado",
				"Melhorar formatação e apresentação",
				"Adicionar mais opções de personalização",
			},
		})
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
