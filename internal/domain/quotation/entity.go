package quotation

import (
	"strings"
	"time"

	"rsv-catalog/internal/pkg/errs"
)

const (
	DefaultCurrency     = "BRL"
	DefaultValidityDays = 30
)

type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
	Notes       string  `json:"notes,omitempty"`
}

type Highlight struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Checked     bool   `json:"checked"`
}

type Benefit struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Checked     bool   `json:"checked"`
}

type ImportantNote struct {
	ID      string `json:"id"`
	Note    string `json:"note"`
	Checked bool   `json:"checked"`
}

type Quotation struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	ClientName     string `json:"clientName"`
	ClientEmail    string `json:"clientEmail"`
	ClientPhone    string `json:"clientPhone,omitempty"`
	ClientDocument string `json:"clientDocument,omitempty"`

	Type   Type   `json:"type"`
	Status Status `json:"status"`

	Items    []Item     `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Discount Adjustment `json:"discount"`
	Tax      Adjustment `json:"tax"`
	Total    float64    `json:"total"`
	Currency string     `json:"currency"`

	Highlights     []Highlight     `json:"highlights,omitempty"`
	Benefits       []Benefit       `json:"benefits,omitempty"`
	ImportantNotes []ImportantNote `json:"importantNotes,omitempty"`

	UrgencyMessage string `json:"urgencyMessage,omitempty"`
	Notes          string `json:"notes,omitempty"`
	TemplateID     string `json:"templateId,omitempty"`

	ValidUntil *time.Time `json:"validUntil,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Recalculate refreshes every derived amount from the items and adjustments.
func (q *Quotation) Recalculate(calc PriceCalculator) Breakdown {
	for i := range q.Items {
		q.Items[i].TotalPrice = q.Items[i].Quantity * q.Items[i].UnitPrice
	}
	b := calc.Calculate(q.Items, q.Discount, q.Tax)
	q.Subtotal = b.Subtotal
	q.Total = b.Total
	return b
}

// EffectiveValidUntil is the explicit validity date, else creation plus 30 days.
func (q *Quotation) EffectiveValidUntil() time.Time {
	if q.ValidUntil != nil {
		return *q.ValidUntil
	}
	return q.CreatedAt.AddDate(0, 0, DefaultValidityDays)
}

func (q *Quotation) Validate() error {
	if !q.Type.IsValid() {
		return errs.Wrap(errs.ErrInvalidQuotation, "unknown type "+string(q.Type))
	}
	if !q.Status.IsValid() {
		return errs.Wrap(errs.ErrInvalidQuotation, "unknown status "+string(q.Status))
	}
	if !q.Discount.Kind.IsValid() || !q.Tax.Kind.IsValid() {
		return errs.Wrap(errs.ErrInvalidQuotation, "unknown adjustment kind")
	}
	if q.Discount.Value < 0 || q.Tax.Value < 0 {
		return errs.Wrap(errs.ErrInvalidQuotation, "negative adjustment")
	}
	for _, it := range q.Items {
		if it.Quantity < 0 || it.UnitPrice < 0 {
			return errs.Wrap(errs.ErrInvalidQuotation, "negative quantity or price on item "+it.ID)
		}
	}
	return nil
}

// ApplyDefaults fills the fields a new record may omit.
func (q *Quotation) ApplyDefaults(now time.Time) {
	if q.Status == "" {
		q.Status = StatusDraft
	}
	if q.Currency == "" {
		q.Currency = DefaultCurrency
	}
	if q.Discount.Kind == "" {
		q.Discount.Kind = AdjustmentFixed
	}
	if q.Tax.Kind == "" {
		q.Tax.Kind = AdjustmentFixed
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	if q.Items == nil {
		q.Items = []Item{}
	}
}

// MatchesText is a case-insensitive substring match over title, client and description.
func (q *Quotation) MatchesText(text string) bool {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return true
	}
	for _, field := range []string{q.Title, q.ClientName, q.ClientEmail, q.Description} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
