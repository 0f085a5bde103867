//go:build unit

package quotation_test

import (
	"testing"
	"time"

	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/pkg/money"
	"rsv-catalog/internal/pkg/ptr"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPriceCalculator(t *testing.T) {
	calc := quotation.NewDefaultPriceCalculator()

	t.Run("discount applies before tax", func(t *testing.T) {
		items := []quotation.Item{
			{ID: "1", Quantity: 2, UnitPrice: 100},
			{ID: "2", Quantity: 3, UnitPrice: 50},
		}
		got := calc.Calculate(items, quotation.Percentage(10), quotation.Percentage(5)).Rounded()

		want := quotation.Breakdown{
			Subtotal:       350,
			DiscountAmount: 35,
			Taxable:        315,
			TaxAmount:      15.75,
			Total:          330.75,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("fixed amounts", func(t *testing.T) {
		items := []quotation.Item{{Quantity: 5, UnitPrice: 800}, {Quantity: 1, UnitPrice: 200}}
		got := calc.Calculate(items, quotation.Fixed(200), quotation.Fixed(0))
		assert.Equal(t, 4200.0, got.Subtotal)
		assert.Equal(t, 4000.0, got.Total)
	})

	t.Run("total equals rounded subtotal minus discount plus tax", func(t *testing.T) {
		cases := []struct {
			items    []quotation.Item
			discount quotation.Adjustment
			tax      quotation.Adjustment
		}{
			{[]quotation.Item{{Quantity: 3, UnitPrice: 33.33}}, quotation.Percentage(7.5), quotation.Percentage(2.5)},
			{[]quotation.Item{{Quantity: 1, UnitPrice: 0.1}, {Quantity: 2, UnitPrice: 0.2}}, quotation.Fixed(0.05), quotation.Percentage(12)},
			{[]quotation.Item{{Quantity: 30, UnitPrice: 80}}, quotation.Fixed(300), quotation.Fixed(19.9)},
			{nil, quotation.Percentage(10), quotation.Percentage(5)},
		}
		for _, c := range cases {
			b := calc.Calculate(c.items, c.discount, c.tax)
			assert.Equal(t, money.Round2(b.Subtotal-b.DiscountAmount+b.TaxAmount), money.Round2(b.Total))
		}
	})
}

func TestRecalculate(t *testing.T) {
	q := quotation.Quotation{
		Items: []quotation.Item{
			{ID: "1", Quantity: 2, UnitPrice: 100, TotalPrice: 999},
			{ID: "2", Quantity: 3, UnitPrice: 50},
		},
		Discount: quotation.Percentage(10),
		Tax:      quotation.Percentage(5),
	}

	q.Recalculate(quotation.NewDefaultPriceCalculator())

	assert.Equal(t, 200.0, q.Items[0].TotalPrice)
	assert.Equal(t, 150.0, q.Items[1].TotalPrice)
	assert.Equal(t, 350.0, q.Subtotal)
	assert.Equal(t, 330.75, money.Round2(q.Total))
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to quotation.Status
		want     bool
	}{
		{quotation.StatusDraft, quotation.StatusSent, true},
		{quotation.StatusDraft, quotation.StatusExpired, true},
		{quotation.StatusDraft, quotation.StatusApproved, false},
		{quotation.StatusSent, quotation.StatusApproved, true},
		{quotation.StatusSent, quotation.StatusRejected, true},
		{quotation.StatusSent, quotation.StatusExpired, true},
		{quotation.StatusSent, quotation.StatusDraft, false},
		{quotation.StatusApproved, quotation.StatusRejected, false},
		{quotation.StatusRejected, quotation.StatusRejected, true},
		{quotation.StatusExpired, quotation.StatusSent, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() quotation.Quotation {
		q := quotation.Quotation{Type: quotation.TypeHotel, Items: []quotation.Item{{ID: "1", Quantity: 1, UnitPrice: 10}}}
		q.ApplyDefaults(time.Now())
		return q
	}

	q := valid()
	require.NoError(t, q.Validate())

	tests := []struct {
		name   string
		mutate func(*quotation.Quotation)
	}{
		{"unknown type", func(q *quotation.Quotation) { q.Type = "cruise" }},
		{"unknown status", func(q *quotation.Quotation) { q.Status = "archived" }},
		{"unknown discount kind", func(q *quotation.Quotation) { q.Discount.Kind = "ratio" }},
		{"negative tax", func(q *quotation.Quotation) { q.Tax = quotation.Fixed(-1) }},
		{"negative quantity", func(q *quotation.Quotation) { q.Items[0].Quantity = -1 }},
		{"negative unit price", func(q *quotation.Quotation) { q.Items[0].UnitPrice = -0.01 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid()
			tt.mutate(&q)
			err := q.Validate()
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrInvalidQuotation))
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	q := quotation.Quotation{}
	q.ApplyDefaults(now)

	assert.Equal(t, quotation.StatusDraft, q.Status)
	assert.Equal(t, "BRL", q.Currency)
	assert.Equal(t, quotation.AdjustmentFixed, q.Discount.Kind)
	assert.Equal(t, now, q.CreatedAt)
	assert.NotNil(t, q.Items)
	assert.Equal(t, now.AddDate(0, 0, 30), q.EffectiveValidUntil())
}

func TestDecodeRecord(t *testing.T) {
	cmpOpts := []cmp.Option{cmpopts.EquateEmpty()}

	t.Run("canonical record is not migrated", func(t *testing.T) {
		raw := []byte(`{"id":"q1","title":"Pacote","type":"hotel","status":"sent","items":[],
			"discount":{"kind":"percentage","value":10},"tax":{"kind":"fixed","value":5},
			"createdAt":"2025-01-02T10:00:00Z","updatedAt":"2025-01-02T10:00:00Z"}`)
		q, migrated, err := quotation.DecodeRecord(raw)
		require.NoError(t, err)
		assert.False(t, migrated)
		assert.Equal(t, quotation.Percentage(10), q.Discount)
		assert.Equal(t, quotation.Fixed(5), q.Tax)
		assert.Equal(t, quotation.StatusSent, q.Status)
	})

	t.Run("legacy numeric discount and taxes", func(t *testing.T) {
		raw := []byte(`{"id":"q2","title":"Beto Carrero","type":"parque","status":"sent",
			"items":[{"id":"i1","name":"Ingresso Estudante","quantity":30,"unitPrice":80,"totalPrice":2400}],
			"subtotal":2700,"discount":300,"taxes":12.5,"taxType":"percentage","total":2400,
			"expiresAt":"2025-02-01T00:00:00Z",
			"createdAt":"2025-01-02T10:00:00Z","updatedAt":"2025-01-02T10:00:00Z"}`)
		q, migrated, err := quotation.DecodeRecord(raw)
		require.NoError(t, err)
		assert.True(t, migrated)

		expiry := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		want := quotation.Quotation{
			ID:       "q2",
			Title:    "Beto Carrero",
			Type:     quotation.TypePark,
			Status:   quotation.StatusSent,
			Items:    []quotation.Item{{ID: "i1", Name: "Ingresso Estudante", Quantity: 30, UnitPrice: 80, TotalPrice: 2400}},
			Subtotal: 2700,
			Discount: quotation.Fixed(300),
			Tax:      quotation.Percentage(12.5),
			Total:    2400,

			ValidUntil: &expiry,
			CreatedAt:  time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
		}
		if diff := cmp.Diff(want, q, cmpOpts...); diff != "" {
			t.Errorf("decoded mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("legacy percentage discount", func(t *testing.T) {
		raw := []byte(`{"id":"q3","type":"hotel","status":"draft","discount":10,"discountType":"percentage","tax":5}`)
		q, migrated, err := quotation.DecodeRecord(raw)
		require.NoError(t, err)
		assert.True(t, migrated)
		assert.Equal(t, quotation.Percentage(10), q.Discount)
		assert.Equal(t, quotation.Fixed(5), q.Tax)
	})

	t.Run("explicit validUntil wins over expiresAt", func(t *testing.T) {
		raw := []byte(`{"id":"q4","validUntil":"2025-05-01T00:00:00Z","expiresAt":"2025-06-01T00:00:00Z"}`)
		q, _, err := quotation.DecodeRecord(raw)
		require.NoError(t, err)
		require.NotNil(t, q.ValidUntil)
		assert.Equal(t, 5, int(q.ValidUntil.Month()))
	})

	t.Run("garbage", func(t *testing.T) {
		_, _, err := quotation.DecodeRecord([]byte(`{"id":`))
		assert.Error(t, err)
		_, _, err = quotation.DecodeRecord([]byte(`{"id":"x","discount":"ten"}`))
		assert.Error(t, err)
	})
}

func TestCriteria(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	q := &quotation.Quotation{Status: quotation.StatusSent, Type: quotation.TypePark, Total: 2400, CreatedAt: base}

	tests := []struct {
		name     string
		criteria quotation.Criteria
		want     bool
	}{
		{"empty criteria", quotation.Criteria{}, true},
		{"status in set", quotation.Criteria{Statuses: []quotation.Status{quotation.StatusDraft, quotation.StatusSent}}, true},
		{"status not in set", quotation.Criteria{Statuses: []quotation.Status{quotation.StatusApproved}}, false},
		{"type mismatch", quotation.Criteria{Types: []quotation.Type{quotation.TypeHotel}}, false},
		{"date range inclusive", quotation.Criteria{From: &base, To: &base}, true},
		{"before range", quotation.Criteria{From: ptr.Of(base.Add(time.Second))}, false},
		{"min total inclusive", quotation.Criteria{MinTotal: ptr.Of(2400.0)}, true},
		{"max total exceeded", quotation.Criteria{MaxTotal: ptr.Of(2399.99)}, false},
		{"all combined", quotation.Criteria{
			Statuses: []quotation.Status{quotation.StatusSent},
			Types:    []quotation.Type{quotation.TypePark},
			MinTotal: ptr.Of(1000.0),
			MaxTotal: ptr.Of(3000.0),
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criteria.Matches(q))
		})
	}
}

func TestMatchesText(t *testing.T) {
	q := &quotation.Quotation{Title: "Pacote Resort Bahia", ClientName: "Maria Silva", ClientEmail: "maria@email.com"}
	assert.True(t, q.MatchesText("maria"))
	assert.True(t, q.MatchesText("RESORT"))
	assert.True(t, q.MatchesText(""))
	assert.False(t, q.MatchesText("joão"))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Aprovada", quotation.StatusApproved.Label())
	assert.Equal(t, "Atração", quotation.TypeAttraction.Label())
	assert.Equal(t, "cruise", quotation.Type("cruise").Label())
}
