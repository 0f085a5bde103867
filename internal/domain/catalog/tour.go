package catalog

import (
	"fmt"
	"time"

	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/money"
)

func BuildTourEntry(tour Tour, t TicketType, now time.Time) Entry {
	id := fmt.Sprintf("passeio-%s-%s", tour.ID, t.ID)

	lines := make([]string, 0, len(tour.Excludes)+3)
	for _, ex := range tour.Excludes {
		lines = append(lines, "Não incluso: "+ex)
	}
	if tour.MeetingPoint != "" {
		lines = append(lines, "Ponto de encontro: "+tour.MeetingPoint)
	}
	if tour.DepartureTime != "" {
		lines = append(lines, fmt.Sprintf("Saída às %s, retorno previsto às %s", tour.DepartureTime, tour.ReturnTime))
	}
	if tour.MinParticipants > 0 {
		lines = append(lines, fmt.Sprintf("Mínimo de %d participantes", tour.MinParticipants))
	}

	e := Entry{
		ID:           id,
		Name:         fmt.Sprintf("%s - %s", tour.Name, t.Name),
		Description:  tour.Description,
		Type:         quotation.TypeTour,
		MainCategory: MainCategoryTours,
		SubCategory:  tour.City,
		Title:        fmt.Sprintf("Passeio %s - %s", tour.Name, t.Name),
		Tags:         []string{"passeio", tour.Region, tour.Type, t.AgeGroup},
		Location:     Location{City: tour.City, State: tour.State, Region: tour.Region},
		Items: []quotation.Item{
			item(id, 1, fmt.Sprintf("%s - %s", tour.Name, t.Name), t.Description, "Passeios", 1, t.BasePrice),
		},
		Highlights: highlights(id,
			toggle{tour.Name, tour.Description},
			toggle{"Duração", tour.Duration},
		),
		Benefits:          benefits(id, tour.Includes...),
		ImportantNotes:    notes(id, lines...),
		InvestmentDetails: fmt.Sprintf("Investimento de %s por pessoa", money.FormatBRL(t.BasePrice)),
		Variant: &Variant{
			OfferingID:    tour.ID,
			Category:      t.ID,
			AgeGroup:      t.AgeGroup,
			Duration:      tour.Duration,
			MeetingPoint:  tour.MeetingPoint,
			DepartureTime: tour.DepartureTime,
			ReturnTime:    tour.ReturnTime,
		},
	}
	stamp(&e, now)
	return e
}

func GenerateTourEntries(cfg TourConfig, now time.Time) []Entry {
	var out []Entry
	for _, tour := range cfg.Tours {
		for _, t := range tour.TicketTypes {
			out = append(out, BuildTourEntry(tour, t, now))
		}
	}
	return out
}
