package money

import (
	"math"
	"strconv"
	"strings"
)

// Round2 rounds half away from zero to cents. Only call it at display or comparison time.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatBRL renders v as "R$ 1.234,56".
func FormatBRL(v float64) string {
	neg := v < 0
	s := strconv.FormatFloat(math.Abs(Round2(v)), 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + frac
	if neg {
		return "-" + out
	}
	return out
}
