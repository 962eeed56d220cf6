package services

import (
	"github.com/dustin/go-humanize"
)

// FormatUSD formats an amount as US dollars with thousands grouping,
// e.g. "$1,234.56". The result always includes exactly 2 decimal places.
func FormatUSD(amount Cents) string {
	negative := false
	v := int64(amount)
	if v < 0 {
		negative = true
		v = -v
	}

	result := "$" + humanize.Comma(v/100) + "." + twoDigits(v%100)
	if negative {
		result = "-" + result
	}
	return result
}

// FormatPlainUSD formats an amount with a dollar sign and no grouping,
// e.g. "$980.53". Used in mail bodies where downstream parsers expect it.
func FormatPlainUSD(amount Cents) string {
	if amount < 0 {
		return "-$" + (-amount).String()
	}
	return "$" + amount.String()
}

func twoDigits(n int64) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}
