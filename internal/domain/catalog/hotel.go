package catalog

import (
	"fmt"
	"time"

	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/money"
)

const defaultExtraGuestIncrement = 80.0

// HotelPrice is the nightly price for a room category at a given occupancy.
func HotelPrice(cfg HotelConfig, h Hotel, cat RoomCategory, guests int) float64 {
	factor := h.PriceFactor
	if factor == 0 {
		factor = 1
	}
	increment := cfg.ExtraGuestIncrement
	if increment == 0 {
		increment = defaultExtraGuestIncrement
	}
	return cat.BasePrice*factor + float64(max(0, guests-2))*increment
}

func guestsLabel(n int) string {
	if n == 1 {
		return "1 hóspede"
	}
	return fmt.Sprintf("%d hóspedes", n)
}

func BuildHotelEntry(cfg HotelConfig, h Hotel, cat RoomCategory, guests int, now time.Time) Entry {
	id := fmt.Sprintf("hotel-%s-%s-%d", h.ID, cat.ID, guests)
	nights := max(cfg.Nights, 1)
	price := HotelPrice(cfg, h, cat, guests)

	e := Entry{
		ID:           id,
		Name:         fmt.Sprintf("%s - %s (%s)", h.Name, cat.Name, guestsLabel(guests)),
		Description:  fmt.Sprintf("Hospedagem no %s em acomodação %s para %s", h.Name, cat.Name, guestsLabel(guests)),
		Type:         quotation.TypeHotel,
		MainCategory: MainCategoryHotels,
		SubCategory:  h.City,
		Title:        fmt.Sprintf("Hospedagem %s - %s", h.Name, cat.Name),
		Location:     Location{City: h.City, State: h.State, Region: h.Region},
		Items: []quotation.Item{
			item(id, 1, "Hospedagem "+cat.Name, fmt.Sprintf("%s, %d diária(s)", guestsLabel(guests), nights), "Hospedagem", float64(nights), price),
		},
		Highlights: highlights(id,
			toggle{"Acomodação " + cat.Name, "Quarto categoria " + cat.Name + " para " + guestsLabel(guests)},
			toggle{"Café da manhã incluso", "Servido diariamente no restaurante do hotel"},
		),
		Benefits: benefits(id, "Wi-Fi gratuito", "Estacionamento disponível"),
		ImportantNotes: notes(id,
			"Check-in a partir das 14h e check-out até 12h",
			"Valores sujeitos à disponibilidade",
		),
		InvestmentDetails: fmt.Sprintf("Investimento de %s por diária", money.FormatBRL(price)),
		Variant: &Variant{
			OfferingID: h.ID,
			Category:   cat.ID,
			Guests:     guests,
			Nights:     nights,
		},
	}
	e.Tags = append([]string{"hotel", h.Region, cat.ID}, h.Tags...)
	stamp(&e, now)
	return e
}

// GenerateHotelEntries enumerates hotel x category x occupancy in config order.
func GenerateHotelEntries(cfg HotelConfig, now time.Time) []Entry {
	maxGuests := cfg.MaxGuests
	if maxGuests <= 0 {
		maxGuests = 6
	}
	out := make([]Entry, 0, len(cfg.Hotels)*len(cfg.Categories)*maxGuests)
	for _, h := range cfg.Hotels {
		for _, cat := range cfg.Categories {
			for guests := 1; guests <= maxGuests; guests++ {
				out = append(out, BuildHotelEntry(cfg, h, cat, guests, now))
			}
		}
	}
	return out
}
