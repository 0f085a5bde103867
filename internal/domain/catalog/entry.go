// Package catalog holds catalog entries (templates) and the generators that
// expand offering configurations into them.
package catalog

import (
	"slices"
	"strings"
	"time"

	"rsv-catalog/internal/domain/quotation"
)

const (
	MainCategoryHotels      = "Hotéis"
	MainCategoryParks       = "Parques"
	MainCategoryAttractions = "Atrações"
	MainCategoryTours       = "Passeios"
	MainCategoryCustom      = "Personalizados"

	// CategoryAll selects every entry in GetByCategory.
	CategoryAll = "all"
)

type Location struct {
	City   string `json:"city"`
	State  string `json:"state"`
	Region string `json:"region,omitempty"`
}

type Contacts struct {
	Phone    string `json:"phone,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
	Email    string `json:"email,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Variant records the generator axes an entry was built from.
type Variant struct {
	OfferingID    string  `json:"offeringId"`
	Category      string  `json:"category,omitempty"`
	AgeGroup      string  `json:"ageGroup,omitempty"`
	Guests        int     `json:"guests,omitempty"`
	Nights        int     `json:"nights,omitempty"`
	FastPass      bool    `json:"fastPass,omitempty"`
	GroupDiscount float64 `json:"groupDiscount,omitempty"`
	ValidityDays  int     `json:"validityDays,omitempty"`
	Duration      string  `json:"duration,omitempty"`
	MeetingPoint  string  `json:"meetingPoint,omitempty"`
	DepartureTime string  `json:"departureTime,omitempty"`
	ReturnTime    string  `json:"returnTime,omitempty"`
}

type Entry struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Type         quotation.Type `json:"type"`
	MainCategory string         `json:"mainCategory"`
	SubCategory  string         `json:"subCategory,omitempty"`
	Title        string         `json:"title"`
	Tags         []string       `json:"tags"`
	Location     Location       `json:"location"`

	Items          []quotation.Item          `json:"items"`
	Highlights     []quotation.Highlight     `json:"highlights"`
	Benefits       []quotation.Benefit       `json:"benefits"`
	ImportantNotes []quotation.ImportantNote `json:"importantNotes"`
	Discount       quotation.Adjustment      `json:"discount"`
	Tax            quotation.Adjustment      `json:"tax"`

	Notes             string   `json:"notes,omitempty"`
	InvestmentDetails string   `json:"investmentDetails,omitempty"`
	Contacts          Contacts `json:"contacts"`
	Variant           *Variant `json:"variant,omitempty"`

	// Custom entries were created or edited by a user and survive regeneration only by id.
	Custom     bool      `json:"custom"`
	UsageCount int       `json:"usageCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BasePrice sums quantity times unit price over the items, before adjustments.
func (e *Entry) BasePrice() float64 {
	var total float64
	for _, it := range e.Items {
		total += it.Quantity * it.UnitPrice
	}
	return total
}

func (e *Entry) HasTag(tag string) bool {
	return slices.ContainsFunc(e.Tags, func(t string) bool {
		return strings.EqualFold(t, tag)
	})
}

// MatchesText does a case-insensitive substring match over name, description, title and tags.
func (e *Entry) MatchesText(text string) bool {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return true
	}
	for _, field := range []string{e.Name, e.Description, e.Title} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return slices.ContainsFunc(e.Tags, func(t string) bool {
		return strings.Contains(strings.ToLower(t), needle)
	})
}

// Clone returns a deep copy. Nil slices stay nil so the clone encodes
// byte-for-byte like the original.
func (e *Entry) Clone() Entry {
	out := *e
	out.Tags = slices.Clone(e.Tags)
	out.Items = slices.Clone(e.Items)
	out.Highlights = slices.Clone(e.Highlights)
	out.Benefits = slices.Clone(e.Benefits)
	out.ImportantNotes = slices.Clone(e.ImportantNotes)
	if e.Variant != nil {
		v := *e.Variant
		out.Variant = &v
	}
	return out
}

func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errInvalid("name is required")
	}
	if !e.Type.IsValid() {
		return errInvalid("unknown type " + string(e.Type))
	}
	if e.Discount.Kind != "" && !e.Discount.Kind.IsValid() {
		return errInvalid("unknown discount kind")
	}
	if e.Tax.Kind != "" && !e.Tax.Kind.IsValid() {
		return errInvalid("unknown tax kind")
	}
	for _, it := range e.Items {
		if it.Quantity < 0 || it.UnitPrice < 0 {
			return errInvalid("negative quantity or price on item " + it.ID)
		}
	}
	return nil
}

// MainCategoryFor maps a quotation type to its catalog main category.
func MainCategoryFor(t quotation.Type) string {
	switch t {
	case quotation.TypeHotel:
		return MainCategoryHotels
	case quotation.TypePark:
		return MainCategoryParks
	case quotation.TypeAttraction:
		return MainCategoryAttractions
	case quotation.TypeTour:
		return MainCategoryTours
	default:
		return MainCategoryCustom
	}
}
