package country

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// symbolAfter lists languages whose currency pattern puts the symbol after
// the amount. Regions in symbolBeforeRegions keep the prefix.
var symbolAfter = map[string]bool{
	"de": true, "fr": true, "es": true, "it": true, "pl": true,
	"sv": true, "da": true, "nb": true, "fi": true, "cs": true, "ru": true,
}

var symbolBeforeRegions = map[string]bool{"CH": true, "AT": true, "LI": true}

// FormatPrice renders a decimal amount string as a localized currency value.
// Amounts that do not parse are returned unchanged.
func FormatPrice(amount, currencyCode, locale string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return amount
	}
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	p := message.NewPrinter(tag)
	group, point := separators(p)

	unit, err := currency.ParseISO(strings.TrimSpace(currencyCode))
	if err != nil {
		neg, digits := groupDigits(d, 2, group, point)
		formatted := sign(neg) + digits
		if currencyCode == "" {
			return formatted
		}
		return currencyCode + " " + formatted
	}

	scale, _ := currency.Standard.Rounding(unit)
	neg, digits := groupDigits(d, int32(scale), group, point)

	symbol := p.Sprint(currency.NarrowSymbol(unit))
	if symbol == "" {
		symbol = unit.String()
	}
	if placesSymbolAfter(tag) {
		return sign(neg) + digits + " " + symbol
	}
	if r, _ := utf8.DecodeLastRuneInString(symbol); unicode.IsLetter(r) {
		return sign(neg) + symbol + " " + digits
	}
	return sign(neg) + symbol + digits
}

// separators reads the grouping and decimal marks the printer uses for tag.
func separators(p *message.Printer) (group, point string) {
	group, point = ",", "."
	sample := p.Sprint(number.Decimal(12345.5, number.Scale(1)))
	var marks []string
	for _, r := range sample {
		switch {
		case r >= '0' && r <= '9':
		case unicode.IsDigit(r):
			return ",", "."
		default:
			marks = append(marks, string(r))
		}
	}
	switch len(marks) {
	case 1:
		return "", marks[0]
	case 2:
		return marks[0], marks[1]
	}
	return group, point
}

// groupDigits renders |d| at scale with thousands grouping. It works on the
// decimal string so large amounts keep every digit.
func groupDigits(d decimal.Decimal, scale int32, group, point string) (bool, string) {
	d = d.Round(scale)
	neg := d.Sign() < 0
	s := d.Abs().StringFixed(scale)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(group)
		b.WriteString(intPart[i : i+3])
	}
	if frac != "" {
		b.WriteString(point)
		b.WriteString(frac)
	}
	return neg, b.String()
}

func placesSymbolAfter(tag language.Tag) bool {
	base, _ := tag.Base()
	if !symbolAfter[base.String()] {
		return false
	}
	region, _ := tag.Region()
	return !symbolBeforeRegions[region.String()]
}

func sign(neg bool) string {
	if neg {
		return "-"
	}
	return ""
}
