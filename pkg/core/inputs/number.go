package inputs

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// ParseNumber reads a number typed into a form field. All whitespace is
// removed (so "1 200 000" works) and the first comma is treated as the
// decimal separator ("1,5" == 1.5). Unsigned 0x, 0o and 0b integer literals
// are read in their base. Anything unparsable or non-finite is 0.
func ParseNumber(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	if cleaned == "" {
		return 0
	}
	if base := radixPrefix(cleaned); base != 0 {
		return parseRadix(cleaned[2:], base)
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return finite(v)
}

func radixPrefix(s string) int {
	if len(s) < 2 || s[0] != '0' {
		return 0
	}
	switch s[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

// parseRadix reads digits only; signs, fractions and exponents give 0.
func parseRadix(digits string, base int) float64 {
	if digits == "" || digits[0] == '+' || digits[0] == '-' || strings.Contains(digits, "_") {
		return 0
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return 0
	}
	v, _ := new(big.Float).SetInt(n).Float64()
	return finite(v)
}

// Clamp limits v to [lo, hi]. NaN is treated as 0 before clamping.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	return math.Min(math.Max(v, lo), hi)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
