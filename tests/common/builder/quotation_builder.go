//go:build unit || e2e

package builder

import (
	"time"

	"rsv-catalog/internal/domain/quotation"
	reqdto "rsv-catalog/internal/handler/dto/request"
)

type QuotationBuilder struct {
	ID          string
	Title       string
	ClientName  string
	ClientEmail string
	Type        quotation.Type
	Status      quotation.Status
	Items       []quotation.Item
	Discount    quotation.Adjustment
	Tax         quotation.Adjustment
	Highlights  []quotation.Highlight
	CreatedAt   time.Time
}

// NewQuotationBuilder defaults to a two-item hotel quotation worth R$ 350,00 before adjustments.
func NewQuotationBuilder() *QuotationBuilder {
	return &QuotationBuilder{
		ID:          "q-123",
		Title:       "Férias em Caldas Novas",
		ClientName:  "Maria Silva",
		ClientEmail: "maria@example.com",
		Type:        quotation.TypeHotel,
		Status:      quotation.StatusDraft,
		Items: []quotation.Item{
			{ID: "i1", Name: "Diária casal", Category: "hospedagem", Quantity: 2, UnitPrice: 150},
			{ID: "i2", Name: "Transfer", Category: "transporte", Quantity: 1, UnitPrice: 50},
		},
		Discount: quotation.Percentage(10),
		Tax:      quotation.Percentage(5),
		Highlights: []quotation.Highlight{
			{ID: "h1", Title: "Café da manhã incluso", Checked: true},
		},
		CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (b *QuotationBuilder) With(mutate func(*QuotationBuilder)) *QuotationBuilder {
	mutate(b)
	return b
}

func (b *QuotationBuilder) BuildDTO() reqdto.CreateQuotationRequest {
	return reqdto.CreateQuotationRequest{
		Title:       b.Title,
		ClientName:  b.ClientName,
		ClientEmail: b.ClientEmail,
		Type:        b.Type,
		Status:      b.Status,
		Items:       append([]quotation.Item(nil), b.Items...),
		Discount:    b.Discount,
		Tax:         b.Tax,
		Highlights:  append([]quotation.Highlight(nil), b.Highlights...),
	}
}

// BuildDomain returns a stored-looking quotation with totals already computed.
func (b *QuotationBuilder) BuildDomain() quotation.Quotation {
	q := quotation.Quotation{
		ID:          b.ID,
		Title:       b.Title,
		ClientName:  b.ClientName,
		ClientEmail: b.ClientEmail,
		Type:        b.Type,
		Status:      b.Status,
		Items:       append([]quotation.Item(nil), b.Items...),
		Discount:    b.Discount,
		Tax:         b.Tax,
		Highlights:  append([]quotation.Highlight(nil), b.Highlights...),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
	q.ApplyDefaults(b.CreatedAt)
	q.Recalculate(quotation.NewDefaultPriceCalculator())
	return q
}
