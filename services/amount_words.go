package services

import "strings"

// AmountToWords spells out an amount in US English for the printed quote.
// Example: 98053 → "Nine Hundred Eighty Dollars and Fifty Three Cents"
func AmountToWords(amount Cents) string {
	if amount < 0 {
		return "Negative " + AmountToWords(-amount)
	}

	dollars := int64(amount) / 100
	cents := int64(amount) % 100

	words := "Zero"
	if dollars > 0 {
		words = convertToWords(dollars)
	}
	words += pluralize(dollars, " Dollar", " Dollars")

	if cents > 0 {
		words += " and " + convertUnder100(cents) + pluralize(cents, " Cent", " Cents")
	}
	return words
}

func pluralize(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

var scales = []struct {
	value int64
	name  string
}{
	{1_000_000_000_000, "Trillion"},
	{1_000_000_000, "Billion"},
	{1_000_000, "Million"},
	{1_000, "Thousand"},
}

func convertToWords(n int64) string {
	if n == 0 {
		return ""
	}

	var parts []string
	for _, s := range scales {
		if n >= s.value {
			parts = append(parts, convertUnder1000(n/s.value)+" "+s.name)
			n %= s.value
		}
	}
	if n > 0 {
		parts = append(parts, convertUnder1000(n))
	}
	return strings.Join(parts, " ")
}

// convertUnder1000 spells n in [1, 999]. Only a trillions count can exceed it.
func convertUnder1000(n int64) string {
	if n >= 1000 {
		return convertToWords(n)
	}
	var parts []string
	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, convertUnder100(n))
	}
	return strings.Join(parts, " ")
}

func convertUnder100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += " " + ones[n%10]
	}
	return result
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
