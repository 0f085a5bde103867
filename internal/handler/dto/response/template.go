package response

import (
	"rsv-catalog/internal/domain/catalog"
	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/money"
	"rsv-catalog/internal/usecase/templates"
)

type TemplateListResponse struct {
	Templates []catalog.Entry `json:"templates"`
	Total     int             `json:"total"`
}

func FromTemplates(all []catalog.Entry) TemplateListResponse {
	return TemplateListResponse{Templates: all, Total: len(all)}
}

// TemplateResponse adds the priced totals the catalog entry does not store.
type TemplateResponse struct {
	catalog.Entry
	Subtotal   float64 `json:"subtotal"`
	Total      float64 `json:"total"`
	IsFavorite bool    `json:"isFavorite"`
}

func FromTemplate(e *catalog.Entry, calc quotation.PriceCalculator, favorite bool) TemplateResponse {
	b := calc.Calculate(e.Items, e.Discount, e.Tax)
	return TemplateResponse{
		Entry:      *e,
		Subtotal:   money.Round2(b.Subtotal),
		Total:      money.Round2(b.Total),
		IsFavorite: favorite,
	}
}

type StateResponse struct {
	State   templates.State `json:"state"`
	Version string          `json:"version"`
	Count   int             `json:"count"`
}

type FavoriteResponse struct {
	TemplateID string `json:"templateId"`
	IsFavorite bool   `json:"isFavorite"`
}

type CountResponse struct {
	Count int `json:"count"`
}
