package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatCompactNT renders an NT$ amount in the short form used in alert
// and milestone text: tens of thousands collapse to 萬, thousands to k.
//
//	40000 -> "NT$ 4萬"
//	45000 -> "NT$ 4.5萬"
//	2000  -> "NT$ 2.0k"
//	500   -> "NT$ 500"
//	0     -> "0"
func FormatCompactNT(amount float64) string {
	if amount == 0 {
		return "0"
	}
	if math.Abs(amount) >= 10000 {
		val := amount / 10000
		if val == math.Trunc(val) {
			return fmt.Sprintf("NT$ %.0f萬", val)
		}
		return fmt.Sprintf("NT$ %.1f萬", val)
	}
	if math.Abs(amount) >= 1000 {
		return fmt.Sprintf("NT$ %.1fk", amount/1000)
	}
	return "NT$ " + strconv.FormatFloat(amount, 'f', -1, 64)
}

// FormatNTRevenue renders a full NT$ amount with thousands separators,
// e.g. 310000 -> "NT$ 310,000".
func FormatNTRevenue(amount float64) string {
	return "NT$ " + groupThousands(math.Round(amount))
}

func groupThousands(amount float64) string {
	negative := amount < 0
	digits := strconv.FormatFloat(math.Abs(amount), 'f', 0, 64)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
