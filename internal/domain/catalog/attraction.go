package catalog

import (
	"fmt"
	"time"

	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/money"
)

func BuildAttractionEntry(a Attraction, t TicketType, now time.Time) Entry {
	id := fmt.Sprintf("atracao-%s-%s", a.ID, t.ID)
	duration := t.Duration
	if duration == "" {
		duration = a.Duration
	}

	accessibility := "Consulte condições de acessibilidade antes da visita"
	if a.Accessibility {
		accessibility = "Local com acessibilidade para pessoas com mobilidade reduzida"
	}

	e := Entry{
		ID:           id,
		Name:         fmt.Sprintf("%s - %s", a.Name, t.Name),
		Description:  a.Description,
		Type:         quotation.TypeAttraction,
		MainCategory: MainCategoryAttractions,
		SubCategory:  a.City,
		Title:        fmt.Sprintf("Ingresso %s - %s", a.Name, t.Name),
		Tags:         []string{"atracao", a.Region, a.Type, t.AgeGroup},
		Location:     Location{City: a.City, State: a.State, Region: a.Region},
		Items: []quotation.Item{
			item(id, 1, fmt.Sprintf("Ingresso %s - %s", a.Name, t.Name), t.Description, "Ingressos", 1, t.BasePrice),
		},
		Highlights: highlights(id,
			toggle{a.Name, a.Description},
			toggle{"Duração", duration},
		),
		Benefits: benefits(id, t.Includes...),
		ImportantNotes: notes(id,
			accessibility,
			"Valores sujeitos à disponibilidade",
		),
		InvestmentDetails: fmt.Sprintf("Investimento de %s por pessoa", money.FormatBRL(t.BasePrice)),
		Variant: &Variant{
			OfferingID: a.ID,
			Category:   t.ID,
			AgeGroup:   t.AgeGroup,
			Duration:   duration,
		},
	}
	stamp(&e, now)
	return e
}

func GenerateAttractionEntries(cfg AttractionConfig, now time.Time) []Entry {
	var out []Entry
	for _, a := range cfg.Attractions {
		for _, t := range a.TicketTypes {
			out = append(out, BuildAttractionEntry(a, t, now))
		}
	}
	return out
}
