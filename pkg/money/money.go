// Package money holds BRL formatting/parsing and cent-exact arithmetic helpers.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrInvalidAmount = errors.New("invalid amount")

const currencySymbol = "R$"

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency renders v as BRL text with two fraction digits, e.g. "R$ 1.234,50".
func FormatCurrency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + currencySymbol + " " + brPrinter.Sprint(number.Decimal(v, number.Scale(2)))
}

// ParseMoneyInput reads BRL-formatted text ("R$ 1.234,50", "1234,5", "12") into a
// non-negative amount. Everything but digits and the comma decimal separator is dropped;
// when several commas are present only the last one separates the cents.
func ParseMoneyInput(raw string) (float64, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	intPart, fracPart := cleaned, ""
	if i := strings.LastIndexByte(cleaned, ','); i >= 0 {
		intPart = strings.ReplaceAll(cleaned[:i], ",", "")
		fracPart = cleaned[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}

	text := intPart
	if fracPart != "" {
		text += "." + fracPart
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	f, _ := d.Float64()
	return f, nil
}

// RoundCents rounds v half away from zero to two decimal places.
func RoundCents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Sum adds values without float drift and returns the cent-rounded total.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Round(2).Float64()
	return f
}

// Split divides total into n cent-rounded parts; the last part absorbs the remainder
// so the parts always add back up to total.
func Split(total float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	t := decimal.NewFromFloat(total).Round(2)
	part := t.DivRound(decimal.NewFromInt(int64(n)), 2)

	out := make([]float64, n)
	acc := decimal.Zero
	for i := 0; i < n-1; i++ {
		out[i], _ = part.Float64()
		acc = acc.Add(part)
	}
	out[n-1], _ = t.Sub(acc).Float64()
	return out
}
