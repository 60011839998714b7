package report

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/finnegil-spec/orbital-roi/pkg/core/roi"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrUnsupportedCurrency is returned for ISO codes the reports cannot format.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// DefaultCurrency is used when a caller does not choose one.
const DefaultCurrency = "NOK"

// Currency is a display currency: ISO unit plus the locale that decides
// digit grouping and symbol placement. Amounts are shown without decimals.
type Currency struct {
	Unit   currency.Unit
	Locale language.Tag
	Symbol string
	suffix bool
}

var currencies = map[string]Currency{
	"NOK": {Unit: currency.MustParseISO("NOK"), Locale: language.MustParse("nb-NO"), Symbol: "kr", suffix: true},
	"EUR": {Unit: currency.MustParseISO("EUR"), Locale: language.MustParse("de-DE"), Symbol: "€", suffix: true},
	"USD": {Unit: currency.MustParseISO("USD"), Locale: language.MustParse("en-US"), Symbol: "$"},
	"ZAR": {Unit: currency.MustParseISO("ZAR"), Locale: language.MustParse("en-ZA"), Symbol: "R"},
}

// ParseCurrency validates an ISO 4217 code and returns its display settings.
func ParseCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	c, ok := currencies[unit.String()]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, unit)
	}
	return c, nil
}

// Currencies lists the supported ISO codes in alphabetical order.
func Currencies() []string {
	codes := make([]string, 0, len(currencies))
	for code := range currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Code returns the ISO code.
func (c Currency) Code() string {
	return c.Unit.String()
}

// Money formats an amount rounded to whole units with locale grouping.
// Non-finite amounts are shown as 0.
func (c Currency) Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	rounded := math.Round(v)

	p := message.NewPrinter(c.Locale)
	digits := p.Sprint(number.Decimal(math.Abs(rounded), number.MaxFractionDigits(0)))

	sign := ""
	if rounded < 0 {
		sign = "-"
	}
	if c.suffix {
		return sign + digits + " " + c.Symbol
	}
	return sign + c.Symbol + digits
}

// Percent formats a fraction with one decimal. Non-finite values read 0.0%.
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

// PaybackLabel shows the payback year, or an em dash when it is not reached.
func PaybackLabel(p roi.Payback) string {
	if years, ok := p.Years(); ok {
		return fmt.Sprintf("%d", years)
	}
	return "—"
}
