package catalog

import (
	"time"

	"rsv-catalog/internal/domain/quotation"
)

var agencyContacts = Contacts{
	Phone:    "(64) 3451-0000",
	WhatsApp: "(64) 99999-9999",
	Email:    "contato@reserveiviagens.com",
	Website:  "https://www.reserveiviagens.com",
}

type toggle struct {
	title       string
	description string
}

func highlights(entryID string, ts ...toggle) []quotation.Highlight {
	out := make([]quotation.Highlight, 0, len(ts))
	for i, t := range ts {
		out = append(out, quotation.Highlight{
			ID:          childID(entryID, "hl", i+1),
			Title:       t.title,
			Description: t.description,
			Checked:     true,
		})
	}
	return out
}

func benefits(entryID string, titles ...string) []quotation.Benefit {
	out := make([]quotation.Benefit, 0, len(titles))
	for i, t := range titles {
		out = append(out, quotation.Benefit{ID: childID(entryID, "bn", i+1), Title: t, Checked: true})
	}
	return out
}

func notes(entryID string, lines ...string) []quotation.ImportantNote {
	out := make([]quotation.ImportantNote, 0, len(lines))
	for i, l := range lines {
		out = append(out, quotation.ImportantNote{ID: childID(entryID, "nt", i+1), Note: l, Checked: true})
	}
	return out
}

func item(entryID string, n int, name, description, category string, qty, unit float64) quotation.Item {
	return quotation.Item{
		ID:          childID(entryID, "item", n),
		Name:        name,
		Description: description,
		Category:    category,
		Quantity:    qty,
		UnitPrice:   unit,
		TotalPrice:  qty * unit,
	}
}

func stamp(e *Entry, now time.Time) {
	e.CreatedAt = now
	e.UpdatedAt = now
	e.Discount = quotation.Fixed(0)
	e.Tax = quotation.Fixed(0)
	e.Contacts = agencyContacts
}
