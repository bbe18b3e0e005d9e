package formatter

import (
	"strings"

	"github.com/shopspring/decimal"
)

var smallNumbers = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tensNames = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// Indian grouping, largest first.
var scales = []struct {
	value uint64
	name  string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

// NumberToWords spells n using Indian numbering, e.g. 125000 is
// "One Lakh Twenty Five Thousand". Zero spells as "".
func NumberToWords(n int64) string {
	if n < 0 {
		// -n overflows for math.MinInt64; its magnitude still fits a uint64.
		return "Minus " + spell(uint64(-(n+1))+1)
	}
	return spell(uint64(n))
}

func spell(n uint64) string {
	var words []string
	for _, s := range scales {
		if n >= s.value {
			words = append(words, spell(n/s.value), s.name)
			n %= s.value
		}
	}
	switch {
	case n >= 20:
		words = append(words, tensNames[n/10], smallNumbers[n%10])
	case n > 0:
		words = append(words, smallNumbers[n])
	}
	return strings.Join(strings.Fields(strings.Join(words, " ")), " ")
}

// AmountInWords spells a rupee amount rounded to paise.
func AmountInWords(amount decimal.Decimal) string {
	amount = amount.Round(2)
	if amount.IsNegative() {
		return "Minus " + AmountInWords(amount.Neg())
	}
	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Shift(2).IntPart()

	var parts []string
	if rupees > 0 {
		parts = append(parts, NumberToWords(rupees)+" Rupees")
	}
	if paise > 0 {
		parts = append(parts, NumberToWords(paise)+" Paise")
	}
	if len(parts) == 0 {
		return "Zero Rupees Only"
	}
	return strings.Join(parts, " and ") + " Only"
}
