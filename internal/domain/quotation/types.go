package quotation

type Type string

const (
	TypeHotel      Type = "hotel"
	TypePark       Type = "parque"
	TypeAttraction Type = "atracao"
	TypeTour       Type = "passeio"
	TypeCustom     Type = "personalizado"
)

var typeLabels = map[Type]string{
	TypeHotel:      "Hotel",
	TypePark:       "Parque",
	TypeAttraction: "Atração",
	TypeTour:       "Passeio",
	TypeCustom:     "Personalizado",
}

func (t Type) IsValid() bool {
	_, ok := typeLabels[t]
	return ok
}

func (t Type) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

func (t Type) String() string {
	return string(t)
}

// AllTypes lists types in display order.
func AllTypes() []Type {
	return []Type{TypeHotel, TypePark, TypeAttraction, TypeTour, TypeCustom}
}

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

var statusLabels = map[Status]string{
	StatusDraft:    "Rascunho",
	StatusSent:     "Enviada",
	StatusApproved: "Aprovada",
	StatusRejected: "Rejeitada",
	StatusExpired:  "Expirada",
}

var transitions = map[Status][]Status{
	StatusDraft: {StatusSent, StatusExpired},
	StatusSent:  {StatusApproved, StatusRejected, StatusExpired},
}

func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether s may move to next. Staying put is always allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type AdjustmentKind string

const (
	AdjustmentPercentage AdjustmentKind = "percentage"
	AdjustmentFixed      AdjustmentKind = "fixed"
)

func (k AdjustmentKind) IsValid() bool {
	return k == AdjustmentPercentage || k == AdjustmentFixed
}

// Adjustment is a discount or tax, either a percentage or an absolute amount.
type Adjustment struct {
	Kind  AdjustmentKind `json:"kind"`
	Value float64        `json:"value"`
}

func Percentage(v float64) Adjustment {
	return Adjustment{Kind: AdjustmentPercentage, Value: v}
}

func Fixed(v float64) Adjustment {
	return Adjustment{Kind: AdjustmentFixed, Value: v}
}

func (a Adjustment) IsZero() bool {
	return a.Value == 0
}

// Amount applies the adjustment to base.
func (a Adjustment) Amount(base float64) float64 {
	if a.Kind == AdjustmentPercentage {
		return base * a.Value / 100
	}
	return a.Value
}
