package services

import "testing"

func TestFormatUSD_Values(t *testing.T) {
	tests := []struct {
		name   string
		input  Cents
		expect string
	}{
		{"zero", 0, "$0.00"},
		{"one cent", 1, "$0.01"},
		{"small integer", 500, "$5.00"},
		{"with decimals", 4250, "$42.50"},
		{"hundreds", 99999, "$999.99"},
		{"thousands", 123456, "$1,234.56"},
		{"exact thousands boundary", 100000, "$1,000.00"},
		{"millions", 123456789, "$1,234,567.89"},
		{"negative small", -10000, "-$100.00"},
		{"negative thousands", -25000050, "-$250,000.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatUSD(tt.input)
			if got != tt.expect {
				t.Errorf("FormatUSD(%v) = %q, want %q", int64(tt.input), got, tt.expect)
			}
		})
	}
}

func TestFormatPlainUSD(t *testing.T) {
	tests := []struct {
		input  Cents
		expect string
	}{
		{98053, "$980.53"},
		{123456, "$1234.56"},
		{0, "$0.00"},
		{-705, "-$7.05"},
	}
	for _, tt := range tests {
		if got := FormatPlainUSD(tt.input); got != tt.expect {
			t.Errorf("FormatPlainUSD(%d) = %q, want %q", int64(tt.input), got, tt.expect)
		}
	}
}

func TestAmountToWords(t *testing.T) {
	tests := []struct {
		input  Cents
		expect string
	}{
		{0, "Zero Dollars"},
		{100, "One Dollar"},
		{1, "Zero Dollars and One Cent"},
		{98053, "Nine Hundred Eighty Dollars and Fifty Three Cents"},
		{150000, "One Thousand Five Hundred Dollars"},
		{1234567800, "Twelve Million Three Hundred Forty Five Thousand Six Hundred Seventy Eight Dollars"},
		{-2500, "Negative Twenty Five Dollars"},
	}
	for _, tt := range tests {
		if got := AmountToWords(tt.input); got != tt.expect {
			t.Errorf("AmountToWords(%d) = %q, want %q", int64(tt.input), got, tt.expect)
		}
	}
}
