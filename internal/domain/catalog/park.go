package catalog

import (
	"fmt"
	"strings"
	"time"

	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/money"
)

const (
	AgeGroupAdult   = "adulto"
	AgeGroupChild   = "crianca"
	AgeGroupSenior  = "idoso"
	AgeGroupStudent = "estudante"
	AgeGroupFamily  = "familia"

	reducedFareFactor = 0.5
)

var parkAgeGroups = []string{AgeGroupAdult, AgeGroupChild, AgeGroupSenior, AgeGroupStudent}

// IsFamilyBundle reports whether the category name itself encodes a family package.
func IsFamilyBundle(category string) bool {
	return strings.Contains(strings.ToLower(category), "família")
}

// ParkTicketPrice applies the age-group reduction and then any group discount.
func ParkTicketPrice(cat TicketCategory, ageGroup string) float64 {
	price := cat.Price
	switch ageGroup {
	case AgeGroupChild, AgeGroupSenior, AgeGroupStudent:
		price *= reducedFareFactor
	}
	if cat.GroupDiscount > 0 {
		price *= 1 - cat.GroupDiscount/100
	}
	return price
}

func ticketDescription(ageGroup string) string {
	switch ageGroup {
	case AgeGroupAdult:
		return "Ingresso adulto"
	case AgeGroupChild:
		return "Ingresso criança"
	default:
		return "Ingresso " + ageGroup
	}
}

func BuildParkEntry(defaults ParkDefaults, park Park, cat TicketCategory, ageGroup string, now time.Time) Entry {
	id := fmt.Sprintf("parque-%s-%s-%s", park.ID, Slug(cat.Name), ageGroup)
	price := ParkTicketPrice(cat, ageGroup)
	ageLabel := ageGroupLabel(ageGroup)

	investment := fmt.Sprintf("Investimento de %s por pessoa", money.FormatBRL(price))
	if cat.GroupDiscount > 0 {
		investment += fmt.Sprintf(" (com desconto de %g%%)", cat.GroupDiscount)
	}
	fastPassNote := "Fast Pass não incluso"
	if cat.FastPass {
		fastPassNote = "Inclui Fast Pass"
	}

	e := Entry{
		ID:           id,
		Name:         fmt.Sprintf("%s - %s (%s)", park.Name, cat.Name, ageLabel),
		Description:  fmt.Sprintf("Ingresso %s para o %s, categoria %s", strings.ToLower(ageLabel), park.Name, cat.Name),
		Type:         quotation.TypePark,
		MainCategory: MainCategoryParks,
		SubCategory:  defaults.City,
		Title:        fmt.Sprintf("Ingresso %s - %s", park.Name, cat.Name),
		Location:     Location{City: defaults.City, State: defaults.State, Region: defaults.Region},
		Items: []quotation.Item{
			item(id, 1, fmt.Sprintf("Ingresso %s - %s", cat.Name, ageLabel), ticketDescription(ageGroup), "Ingressos", 1, price),
		},
		Highlights: highlights(id,
			toggle{"Águas termais naturais", "Acesso às piscinas com águas termais medicinais"},
			toggle{"Diversão garantida", "Atrações para toda a família"},
		),
		Benefits: benefits(id, "Acesso a todas as piscinas", "Estacionamento disponível"),
		ImportantNotes: notes(id,
			"Ingresso válido apenas para a data selecionada",
			"Valores sujeitos à disponibilidade",
		),
		Notes:             fastPassNote,
		InvestmentDetails: investment,
		Variant: &Variant{
			OfferingID:    park.ID,
			Category:      cat.Name,
			AgeGroup:      ageGroup,
			FastPass:      cat.FastPass,
			GroupDiscount: cat.GroupDiscount,
			ValidityDays:  max(defaults.ValidityDays, 1),
		},
	}
	e.Tags = []string{"parque", defaults.Region, park.ID, ageGroup}
	if cat.FastPass {
		e.Tags = append(e.Tags, "fast-pass")
	}
	stamp(&e, now)
	return e
}

// GenerateParkEntries enumerates park x ticket category x age group. A family
// bundle produces a single entry at its flat price.
func GenerateParkEntries(cfg ParkConfig, now time.Time) []Entry {
	var out []Entry
	for _, park := range cfg.Parks {
		for _, cat := range park.Categories {
			if IsFamilyBundle(cat.Name) {
				out = append(out, BuildParkEntry(cfg.Defaults, park, cat, AgeGroupFamily, now))
				continue
			}
			for _, group := range parkAgeGroups {
				out = append(out, BuildParkEntry(cfg.Defaults, park, cat, group, now))
			}
		}
	}
	return out
}
