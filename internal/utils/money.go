package utils

import (
	"strconv"
	"strings"
)

// ConvertMoney renders an amount in Vietnamese dong: 2000000 -> "2.000.000đ".
func ConvertMoney(amount int64) string {
	sign := ""
	magnitude := uint64(amount)
	if amount < 0 {
		sign = "-"
		// two's complement negation stays exact for math.MinInt64
		magnitude = -magnitude
	}
	return sign + formatThousand(magnitude) + "đ"
}

func formatThousand(n uint64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatUint(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
