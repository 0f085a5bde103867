//go:build unit || e2e

package builder

import (
	"time"

	"rsv-catalog/internal/domain/catalog"
	"rsv-catalog/internal/domain/quotation"
	reqdto "rsv-catalog/internal/handler/dto/request"
)

type TemplateBuilder struct {
	ID       string
	Name     string
	Type     quotation.Type
	Tags     []string
	Location catalog.Location
	Items    []quotation.Item
	Discount quotation.Adjustment
	Custom   bool
}

func NewTemplateBuilder() *TemplateBuilder {
	return &TemplateBuilder{
		ID:       "custom-pousada",
		Name:     "Pousada do Lago",
		Type:     quotation.TypeHotel,
		Tags:     []string{"hotel", "família"},
		Location: catalog.Location{City: "Caldas Novas", State: "GO", Region: "Centro-Oeste"},
		Items: []quotation.Item{
			{ID: "i1", Name: "Diária", Quantity: 3, UnitPrice: 200},
		},
		Discount: quotation.Fixed(0),
		Custom:   true,
	}
}

func (b *TemplateBuilder) With(mutate func(*TemplateBuilder)) *TemplateBuilder {
	mutate(b)
	return b
}

func (b *TemplateBuilder) BuildDTO() reqdto.CreateTemplateRequest {
	return reqdto.CreateTemplateRequest{
		Name:     b.Name,
		Type:     b.Type,
		Tags:     append([]string(nil), b.Tags...),
		Location: b.Location,
		Items:    append([]quotation.Item(nil), b.Items...),
		Discount: b.Discount,
	}
}

func (b *TemplateBuilder) BuildDomain(now time.Time) catalog.Entry {
	return catalog.Entry{
		ID:           b.ID,
		Name:         b.Name,
		Title:        b.Name,
		Type:         b.Type,
		MainCategory: catalog.MainCategoryFor(b.Type),
		Tags:         append([]string(nil), b.Tags...),
		Location:     b.Location,
		Items:        append([]quotation.Item(nil), b.Items...),
		Discount:     b.Discount,
		Tax:          quotation.Fixed(0),
		Custom:       b.Custom,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
