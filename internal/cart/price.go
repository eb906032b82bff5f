package cart

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePriceCents converts a formatted price string to minor currency units.
// "$1,295 USD" -> 129500, "$45.50" -> 4550. Unparseable input yields 0.
func ParsePriceCents(priceText string) int64 {
	var b strings.Builder
	for _, r := range priceText {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	amount, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return int64(amount*100 + 0.5)
}

// FormatPrice renders minor currency units as a storefront display string:
// 129500 -> "$1,295 USD". Whole-dollar amounts drop the cents.
func FormatPrice(cents int64) string {
	dollars := cents / 100
	rem := cents % 100
	if rem == 0 {
		return fmt.Sprintf("$%s USD", groupThousands(dollars))
	}
	return fmt.Sprintf("$%s.%02d USD", groupThousands(dollars), rem)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}
