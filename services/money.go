package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is a currency amount in minor units. All pricing arithmetic happens
// on Cents so repeated additions never drift.
type Cents int64

// CentsFromDollars converts a whole/fractional dollar amount to cents,
// rounding to the nearest cent.
func CentsFromDollars(d float64) Cents {
	return Cents(math.Round(d * 100))
}

// Dollars returns the amount as a float. Only for display and spreadsheets.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

// String renders the amount with exactly two decimals and no symbol, e.g. "980.53".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON writes the amount as a JSON number with two decimals.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON parses a JSON number without going through float64.
func (c *Cents) UnmarshalJSON(data []byte) error {
	v, err := ParseCents(string(data))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseCents parses a decimal string such as "70.53", "-1.5" or "200" into
// cents. More than two fractional digits is an error rather than a rounding.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("parse amount: empty value")
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" || (hasDot && frac == "") || len(frac) > 2 {
		return 0, fmt.Errorf("parse amount %q: want at most two decimals", s)
	}
	if !allDigits(whole) || !allDigits(frac) {
		return 0, fmt.Errorf("parse amount %q: not a decimal number", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	n, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if neg {
		n = -n
	}
	return Cents(n), nil
}

// taxRateScale is the denominator of TaxRate.
const taxRateScale = 1_000_000

// TaxRate is a non-negative fraction stored in millionths, so 0.0775 is 77500.
type TaxRate int64

// TaxRateFromFraction converts a fraction (0.0775) to a TaxRate.
func TaxRateFromFraction(f float64) TaxRate {
	return TaxRate(math.Round(f * taxRateScale))
}

// ParseTaxRate parses a decimal fraction string exactly, up to six decimals.
func ParseTaxRate(s string) (TaxRate, error) {
	s = strings.TrimSpace(s)
	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" || (hasDot && frac == "") || len(frac) > 6 || !allDigits(whole) || !allDigits(frac) {
		return 0, fmt.Errorf("parse tax rate %q: want a non-negative fraction with at most six decimals", s)
	}
	for len(frac) < 6 {
		frac += "0"
	}
	n, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse tax rate %q: %w", s, err)
	}
	return TaxRate(n), nil
}

// Fraction returns the rate as a float (0.0775).
func (r TaxRate) Fraction() float64 {
	return float64(r) / taxRateScale
}

// Apply returns amount*rate rounded half away from zero to the cent.
func (r TaxRate) Apply(amount Cents) Cents {
	if r == 0 || amount == 0 {
		return 0
	}
	num := int64(amount) * int64(r)
	q, rem := num/taxRateScale, num%taxRateScale
	if rem < 0 {
		rem = -rem
	}
	if rem*2 >= taxRateScale {
		if num < 0 {
			q--
		} else {
			q++
		}
	}
	return Cents(q)
}

// String renders the shortest exact decimal form, e.g. "0.0775" or "0".
func (r TaxRate) String() string {
	s := fmt.Sprintf("%d.%06d", int64(r)/taxRateScale, int64(r)%taxRateScale)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Percent renders the rate as a percentage with two decimals, e.g. "7.75%".
func (r TaxRate) Percent() string {
	return fmt.Sprintf("%.2f%%", r.Fraction()*100)
}

// MarshalJSON writes the rate as a JSON number.
func (r TaxRate) MarshalJSON() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalJSON parses the rate without going through float64.
func (r *TaxRate) UnmarshalJSON(data []byte) error {
	v, err := ParseTaxRate(string(data))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
