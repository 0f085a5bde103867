// Package analytics records template events and derives per-template aggregates from them.
package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"rsv-catalog/internal/pkg/errs"
)

type Kind string

const (
	KindView     Kind = "view"
	KindUse      Kind = "use"
	KindShare    Kind = "share"
	KindFavorite Kind = "favorite"
	KindComment  Kind = "comment"
	KindRating   Kind = "rating"
	KindError    Kind = "error"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindView, KindUse, KindShare, KindFavorite, KindComment, KindRating, KindError:
		return true
	}
	return false
}

// Payload is implemented by the kind-specific event bodies.
type Payload interface {
	kind() Kind
	validate() error
}

type UsePayload struct {
	TemplateName string `json:"templateName"`
	Category     string `json:"category"`
	Region       string `json:"region,omitempty"`
}

func (UsePayload) kind() Kind { return KindUse }

func (p UsePayload) validate() error { return nil }

type RatingPayload struct {
	Score int `json:"score"`
}

func (RatingPayload) kind() Kind { return KindRating }

func (p RatingPayload) validate() error {
	if p.Score < 1 || p.Score > 5 {
		return fmt.Errorf("rating score %d out of range 1..5", p.Score)
	}
	return nil
}

type ErrorPayload struct {
	ErrorType string `json:"errorType"`
	Message   string `json:"message"`
}

func (ErrorPayload) kind() Kind { return KindError }

func (p ErrorPayload) validate() error {
	if p.ErrorType == "" {
		return fmt.Errorf("errorType is required")
	}
	return nil
}

type Event struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"type"`
	TemplateID string    `json:"templateId"`
	UserID     string    `json:"userId"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    Payload   `json:"payload,omitempty"`
}

// Validate checks that the kind is known and carries the payload shape it requires.
func (e *Event) Validate() error {
	if !e.Kind.IsValid() {
		return errs.Wrap(errs.ErrInvalidEvent, "unknown event kind "+string(e.Kind))
	}
	if e.TemplateID == "" {
		return errs.Wrap(errs.ErrInvalidEvent, "templateId is required")
	}
	switch e.Kind {
	case KindUse, KindRating, KindError:
		if e.Payload == nil {
			return errs.Wrap(errs.ErrInvalidEvent, string(e.Kind)+" event requires a payload")
		}
	}
	if e.Payload == nil {
		return nil
	}
	if e.Payload.kind() != e.Kind {
		return errs.Wrap(errs.ErrInvalidEvent, fmt.Sprintf("payload for %s attached to %s event", e.Payload.kind(), e.Kind))
	}
	if err := e.Payload.validate(); err != nil {
		return errs.Wrap(errs.ErrInvalidEvent, err.Error())
	}
	return nil
}

type eventAlias Event

func (e *Event) UnmarshalJSON(data []byte) error {
	var raw struct {
		*eventAlias
		Payload json.RawMessage `json:"payload"`
	}
	raw.eventAlias = (*eventAlias)(e)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	payload, err := decodePayload(e.Kind, raw.Payload)
	if err != nil {
		return err
	}
	e.Payload = payload
	return e.Validate()
}

func decodePayload(kind Kind, raw json.RawMessage) (Payload, error) {
	raw = bytes.TrimSpace(raw)
	empty := len(raw) == 0 || bytes.Equal(raw, []byte("null"))

	switch kind {
	case KindUse:
		return strictDecode[UsePayload](raw, empty)
	case KindRating:
		return strictDecode[RatingPayload](raw, empty)
	case KindError:
		return strictDecode[ErrorPayload](raw, empty)
	case KindView, KindShare, KindFavorite, KindComment:
		if !empty && !bytes.Equal(raw, []byte("{}")) {
			return nil, errs.Wrap(errs.ErrInvalidEvent, string(kind)+" event carries no payload")
		}
		return nil, nil
	default:
		return nil, errs.Wrap(errs.ErrInvalidEvent, "unknown event kind "+string(kind))
	}
}

func strictDecode[T Payload](raw json.RawMessage, empty bool) (Payload, error) {
	if empty {
		return nil, nil
	}
	var p T
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, errs.Wrap(errs.ErrInvalidEvent, err.Error())
	}
	return p, nil
}
