//go:build unit

package money_test

import (
	"testing"

	"rsv-catalog/internal/pkg/money"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 330.75, money.Round2(330.75))
	assert.Equal(t, 0.3, money.Round2(0.1+0.2))
	assert.Equal(t, 1.01, money.Round2(1.005+0.0000001))
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{15.75, "R$ 15,75"},
		{330.75, "R$ 330,75"},
		{4000, "R$ 4.000,00"},
		{1234567.891, "R$ 1.234.567,89"},
		{-200, "-R$ 200,00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, money.FormatBRL(tt.in))
		})
	}
}
