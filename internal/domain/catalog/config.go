package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

type HotelConfig struct {
	ExtraGuestIncrement float64        `yaml:"extraGuestIncrement"`
	MaxGuests           int            `yaml:"maxGuests"`
	Nights              int            `yaml:"nights"`
	Categories          []RoomCategory `yaml:"categories"`
	Hotels              []Hotel        `yaml:"hotels"`
}

type RoomCategory struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	BasePrice float64 `yaml:"basePrice"`
}

type Hotel struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	City        string   `yaml:"city"`
	State       string   `yaml:"state"`
	Region      string   `yaml:"region"`
	PriceFactor float64  `yaml:"priceFactor"`
	Tags        []string `yaml:"tags"`
}

type ParkConfig struct {
	Defaults ParkDefaults `yaml:"defaults"`
	Parks    []Park       `yaml:"parks"`
}

type ParkDefaults struct {
	City         string `yaml:"city"`
	State        string `yaml:"state"`
	Region       string `yaml:"region"`
	ValidityDays int    `yaml:"validityDays"`
}

type Park struct {
	ID         string           `yaml:"id"`
	Name       string           `yaml:"name"`
	Categories []TicketCategory `yaml:"categories"`
}

type TicketCategory struct {
	Name          string  `yaml:"name"`
	Price         float64 `yaml:"price"`
	FastPass      bool    `yaml:"fastPass"`
	GroupDiscount float64 `yaml:"groupDiscount"`
}

type AttractionConfig struct {
	Attractions []Attraction `yaml:"attractions"`
}

type Attraction struct {
	ID            string       `yaml:"id"`
	Name          string       `yaml:"name"`
	City          string       `yaml:"city"`
	State         string       `yaml:"state"`
	Region        string       `yaml:"region"`
	Type          string       `yaml:"type"`
	Description   string       `yaml:"description"`
	Duration      string       `yaml:"duration"`
	Difficulty    string       `yaml:"difficulty"`
	Accessibility bool         `yaml:"accessibility"`
	TicketTypes   []TicketType `yaml:"ticketTypes"`
}

type TicketType struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	AgeGroup    string   `yaml:"ageGroup"`
	BasePrice   float64  `yaml:"basePrice"`
	Duration    string   `yaml:"duration"`
	Includes    []string `yaml:"includes"`
}

type TourConfig struct {
	Tours []Tour `yaml:"tours"`
}

type Tour struct {
	ID              string       `yaml:"id"`
	Name            string       `yaml:"name"`
	City            string       `yaml:"city"`
	State           string       `yaml:"state"`
	Region          string       `yaml:"region"`
	Type            string       `yaml:"type"`
	Description     string       `yaml:"description"`
	Duration        string       `yaml:"duration"`
	Difficulty      string       `yaml:"difficulty"`
	MinParticipants int          `yaml:"minParticipants"`
	MaxParticipants int          `yaml:"maxParticipants"`
	DepartureTime   string       `yaml:"departureTime"`
	ReturnTime      string       `yaml:"returnTime"`
	MeetingPoint    string       `yaml:"meetingPoint"`
	Includes        []string     `yaml:"includes"`
	Excludes        []string     `yaml:"excludes"`
	TicketTypes     []TicketType `yaml:"ticketTypes"`
}

func loadYAML[T any](name string) (T, error) {
	var out T
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return out, fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", name, err)
	}
	return out, nil
}

func LoadHotelConfig() (HotelConfig, error) {
	return loadYAML[HotelConfig]("hotels.yaml")
}

func LoadParkConfig() (ParkConfig, error) {
	return loadYAML[ParkConfig]("parks.yaml")
}

func LoadAttractionConfig() (AttractionConfig, error) {
	return loadYAML[AttractionConfig]("attractions.yaml")
}

func LoadTourConfig() (TourConfig, error) {
	return loadYAML[TourConfig]("tours.yaml")
}
