package request

import (
	"strings"
	"time"

	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/patch"
)

type QuotationListQuery struct {
	Q      string    `form:"q"`
	Status string    `form:"status"`
	Type   string    `form:"type"`
	From   time.Time `form:"from" time_format:"2006-01-02"`
	To     time.Time `form:"to" time_format:"2006-01-02"`
	Min    *float64  `form:"min" binding:"omitempty,gte=0"`
	Max    *float64  `form:"max" binding:"omitempty,gte=0"`
}

func (q *QuotationListQuery) HasCriteria() bool {
	return q.Status != "" || q.Type != "" || !q.From.IsZero() || !q.To.IsZero() || q.Min != nil || q.Max != nil
}

// ToCriteria accepts comma-separated status and type lists. To covers the whole day.
func (q *QuotationListQuery) ToCriteria() quotation.Criteria {
	c := quotation.Criteria{MinTotal: q.Min, MaxTotal: q.Max}
	for _, s := range splitList(q.Status) {
		c.Statuses = append(c.Statuses, quotation.Status(s))
	}
	for _, t := range splitList(q.Type) {
		c.Types = append(c.Types, quotation.Type(t))
	}
	if !q.From.IsZero() {
		from := q.From
		c.From = &from
	}
	if !q.To.IsZero() {
		to := q.To.AddDate(0, 0, 1).Add(-time.Nanosecond)
		c.To = &to
	}
	return c
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type CreateQuotationRequest struct {
	Title          string                    `json:"title" binding:"required,max=200"`
	Description    string                    `json:"description"`
	ClientName     string                    `json:"clientName" binding:"required"`
	ClientEmail    string                    `json:"clientEmail" binding:"omitempty,email"`
	ClientPhone    string                    `json:"clientPhone"`
	ClientDocument string                    `json:"clientDocument"`
	Type           quotation.Type            `json:"type" binding:"required"`
	Status         quotation.Status          `json:"status"`
	Items          []quotation.Item          `json:"items"`
	Discount       quotation.Adjustment      `json:"discount"`
	Tax            quotation.Adjustment      `json:"tax"`
	Currency       string                    `json:"currency"`
	Highlights     []quotation.Highlight     `json:"highlights"`
	Benefits       []quotation.Benefit       `json:"benefits"`
	ImportantNotes []quotation.ImportantNote `json:"importantNotes"`
	UrgencyMessage string                    `json:"urgencyMessage"`
	Notes          string                    `json:"notes"`
	TemplateID     string                    `json:"templateId"`
	ValidUntil     *time.Time                `json:"validUntil"`
}

func (r *CreateQuotationRequest) ToDomain() quotation.Quotation {
	return quotation.Quotation{
		Title:          r.Title,
		Description:    r.Description,
		ClientName:     r.ClientName,
		ClientEmail:    r.ClientEmail,
		ClientPhone:    r.ClientPhone,
		ClientDocument: r.ClientDocument,
		Type:           r.Type,
		Status:         r.Status,
		Items:          r.Items,
		Discount:       r.Discount,
		Tax:            r.Tax,
		Currency:       r.Currency,
		Highlights:     r.Highlights,
		Benefits:       r.Benefits,
		ImportantNotes: r.ImportantNotes,
		UrgencyMessage: r.UrgencyMessage,
		Notes:          r.Notes,
		TemplateID:     r.TemplateID,
		ValidUntil:     r.ValidUntil,
	}
}

// UpdateQuotationRequest leaves status alone; transitions go through the status endpoint.
type UpdateQuotationRequest struct {
	Title          *string                    `json:"title" binding:"omitempty,min=1,max=200"`
	Description    *string                    `json:"description"`
	ClientName     *string                    `json:"clientName" binding:"omitempty,min=1"`
	ClientEmail    *string                    `json:"clientEmail" binding:"omitempty,email"`
	ClientPhone    *string                    `json:"clientPhone"`
	ClientDocument *string                    `json:"clientDocument"`
	Type           *quotation.Type            `json:"type"`
	Items          *[]quotation.Item          `json:"items"`
	Discount       *quotation.Adjustment      `json:"discount"`
	Tax            *quotation.Adjustment      `json:"tax"`
	Currency       *string                    `json:"currency"`
	Highlights     *[]quotation.Highlight     `json:"highlights"`
	Benefits       *[]quotation.Benefit       `json:"benefits"`
	ImportantNotes *[]quotation.ImportantNote `json:"importantNotes"`
	UrgencyMessage *string                    `json:"urgencyMessage"`
	Notes          *string                    `json:"notes"`
	ValidUntil     *time.Time                 `json:"validUntil"`
}

func (r *UpdateQuotationRequest) ToDomain(existing *quotation.Quotation) quotation.Quotation {
	q := *existing
	q.Title = patch.Coalesce(r.Title, q.Title)
	q.Description = patch.Coalesce(r.Description, q.Description)
	q.ClientName = patch.Coalesce(r.ClientName, q.ClientName)
	q.ClientEmail = patch.Coalesce(r.ClientEmail, q.ClientEmail)
	q.ClientPhone = patch.Coalesce(r.ClientPhone, q.ClientPhone)
	q.ClientDocument = patch.Coalesce(r.ClientDocument, q.ClientDocument)
	q.Type = patch.Coalesce(r.Type, q.Type)
	q.Items = patch.CoalesceSlice(r.Items, q.Items)
	q.Discount = patch.Coalesce(r.Discount, q.Discount)
	q.Tax = patch.Coalesce(r.Tax, q.Tax)
	q.Currency = patch.Coalesce(r.Currency, q.Currency)
	q.Highlights = patch.CoalesceSlice(r.Highlights, q.Highlights)
	q.Benefits = patch.CoalesceSlice(r.Benefits, q.Benefits)
	q.ImportantNotes = patch.CoalesceSlice(r.ImportantNotes, q.ImportantNotes)
	q.UrgencyMessage = patch.Coalesce(r.UrgencyMessage, q.UrgencyMessage)
	q.Notes = patch.Coalesce(r.Notes, q.Notes)
	if r.ValidUntil != nil {
		q.ValidUntil = r.ValidUntil
	}
	return q
}

type StatusRequest struct {
	Status quotation.Status `json:"status" binding:"required"`
}

type ExportQuery struct {
	Format string `form:"format"`
}
