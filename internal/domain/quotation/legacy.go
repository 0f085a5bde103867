package quotation

import (
	"bytes"
	"encoding/json"
	"time"

	"rsv-catalog/internal/pkg/errs"
)

type quotationAlias Quotation

// legacyRecord shadows the fields older records stored in a different shape.
type legacyRecord struct {
	*quotationAlias
	Discount     json.RawMessage `json:"discount"`
	DiscountType AdjustmentKind  `json:"discountType"`
	Tax          json.RawMessage `json:"tax"`
	Taxes        *float64        `json:"taxes"`
	TaxType      AdjustmentKind  `json:"taxType"`
	ExpiresAt    *time.Time      `json:"expiresAt"`
}

// DecodeRecord decodes a stored quotation, migrating legacy fields into the
// canonical shape. migrated reports whether any legacy field was present.
func DecodeRecord(raw []byte) (q Quotation, migrated bool, err error) {
	rec := legacyRecord{quotationAlias: (*quotationAlias)(&q)}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Quotation{}, false, errs.Wrap(err, "decode quotation")
	}

	discount, legacyDiscount, err := decodeAdjustment(rec.Discount, rec.DiscountType)
	if err != nil {
		return Quotation{}, false, errs.Wrap(err, "decode discount")
	}
	q.Discount = discount

	switch {
	case rec.Taxes != nil:
		q.Tax = Adjustment{Kind: kindOrFixed(rec.TaxType), Value: *rec.Taxes}
		migrated = true
	default:
		tax, legacyTax, err := decodeAdjustment(rec.Tax, rec.TaxType)
		if err != nil {
			return Quotation{}, false, errs.Wrap(err, "decode tax")
		}
		q.Tax = tax
		migrated = migrated || legacyTax
	}
	migrated = migrated || legacyDiscount

	if q.ValidUntil == nil && rec.ExpiresAt != nil {
		q.ValidUntil = rec.ExpiresAt
		migrated = true
	}

	return q, migrated, nil
}

// decodeAdjustment accepts the canonical object form or a bare number.
func decodeAdjustment(raw json.RawMessage, legacyKind AdjustmentKind) (Adjustment, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Adjustment{Kind: kindOrFixed(legacyKind)}, legacyKind != "", nil
	}
	if raw[0] == '{' {
		var a Adjustment
		if err := json.Unmarshal(raw, &a); err != nil {
			return Adjustment{}, false, err
		}
		if a.Kind == "" {
			a.Kind = AdjustmentFixed
		}
		return a, false, nil
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return Adjustment{}, false, err
	}
	return Adjustment{Kind: kindOrFixed(legacyKind), Value: v}, true, nil
}

// Older records only set discountType for percentages; absent means an absolute amount.
func kindOrFixed(k AdjustmentKind) AdjustmentKind {
	if k.IsValid() {
		return k
	}
	return AdjustmentFixed
}
