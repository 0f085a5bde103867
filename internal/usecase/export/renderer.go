// Package export renders quotations as printable HTML documents and builds
// the links used to share them.
package export

import (
	"bytes"
	"embed"
	"html/template"
	"strconv"
	"time"

	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/pkg/money"
	"rsv-catalog/internal/usecase/quotations"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"brl":   money.FormatBRL,
	"date":  func(t time.Time) string { return t.Format("02/01/2006") },
	"clock": func(t time.Time) string { return t.Format("15:04") },
	"qty":   func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	"adjustment": func(a quotation.Adjustment) string {
		if a.Kind == quotation.AdjustmentPercentage {
			return strconv.FormatFloat(a.Value, 'f', -1, 64) + "%"
		}
		return "Fixo"
	},
}

type itemRow struct {
	quotation.Item
	Total float64
}

type document struct {
	Q           *quotation.Quotation
	Company     quotations.CompanyInfo
	GeneratedAt time.Time
	ValidUntil  time.Time
	Items       []itemRow
	Price       quotation.Breakdown
	Highlights  []quotation.Highlight
	Benefits    []quotation.Benefit
	Notes       []quotation.ImportantNote
}

// Renderer turns a quotation into a standalone HTML page. It never modifies
// the quotation it is given.
type Renderer struct {
	tmpl *template.Template
	calc quotation.PriceCalculator
}

func NewRenderer(calc quotation.PriceCalculator) (*Renderer, error) {
	tmpl, err := template.New("quotation.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/quotation.html.tmpl")
	if err != nil {
		return nil, errs.Wrap(err, "failed to parse quotation template")
	}
	return &Renderer{tmpl: tmpl, calc: calc}, nil
}

func (r *Renderer) Render(q *quotation.Quotation, company quotations.CompanyInfo, generatedAt time.Time) ([]byte, error) {
	doc := document{
		Q:           q,
		Company:     company,
		GeneratedAt: generatedAt,
		ValidUntil:  q.EffectiveValidUntil(),
		Price:       r.calc.Calculate(q.Items, q.Discount, q.Tax).Rounded(),
	}
	for _, it := range q.Items {
		doc.Items = append(doc.Items, itemRow{Item: it, Total: it.Quantity * it.UnitPrice})
	}
	for _, h := range q.Highlights {
		if h.Checked {
			doc.Highlights = append(doc.Highlights, h)
		}
	}
	for _, b := range q.Benefits {
		if b.Checked {
			doc.Benefits = append(doc.Benefits, b)
		}
	}
	for _, n := range q.ImportantNotes {
		if n.Checked {
			doc.Notes = append(doc.Notes, n)
		}
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return nil, errs.Wrap(err, "failed to render quotation")
	}
	return buf.Bytes(), nil
}
