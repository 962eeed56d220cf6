package services

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	postalCodePattern = regexp.MustCompile(`^[0-9]{5}$`)
	regionPattern     = regexp.MustCompile(`^[0-9]{2}$`)
)

// LocalZIPMarker follows an in-territory ZIP in mail bodies and quote
// documents.
const LocalZIPMarker = " (UT local)"

// Territory classifies postal codes as inside or outside the local service area.
type Territory struct {
	prefix string
	allow  map[string]bool
}

// NewTerritory builds a classifier from a 2-digit regional prefix and an
// allow-list of 5-digit codes. Both rules apply; a code is local if either matches.
func NewTerritory(prefix string, allowList []string) (*Territory, error) {
	if !regionPattern.MatchString(prefix) {
		return nil, fmt.Errorf("territory: prefix %q must be 2 digits", prefix)
	}
	t := &Territory{prefix: prefix, allow: make(map[string]bool, len(allowList))}
	for _, code := range allowList {
		if !postalCodePattern.MatchString(code) {
			return nil, fmt.Errorf("territory: allow-list code %q must be 5 digits", code)
		}
		t.allow[code] = true
	}
	return t, nil
}

// IsInTerritory reports whether code is a well-formed 5-digit code that
// starts with the regional prefix or is on the allow-list. Empty or
// malformed input is simply not in territory.
func (t *Territory) IsInTerritory(code string) bool {
	if len(code) != 5 || !postalCodePattern.MatchString(code) {
		return false
	}
	return strings.HasPrefix(code, t.prefix) || t.allow[code]
}

// Prefix returns the regional prefix.
func (t *Territory) Prefix() string { return t.prefix }

// TerritoryStatus is the advisory result shown next to the postal code field.
type TerritoryStatus struct {
	Code        string `json:"code"`
	InTerritory bool   `json:"inTerritory"`
	Message     string `json:"message"`
}

// Status classifies code and attaches the advisory message for the form.
func (t *Territory) Status(code string) TerritoryStatus {
	st := TerritoryStatus{Code: code, InTerritory: t.IsInTerritory(code)}
	switch {
	case code == "":
		st.Message = "Enter ZIP to verify local perks"
	case st.InTerritory:
		st.Message = "Local service area"
	default:
		st.Message = fmt.Sprintf("Service limited to local ZIP codes (%sxxx).", t.prefix)
	}
	return st
}

// NormalizePostalCode keeps only the digits of s, capped at five.
func NormalizePostalCode(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == 5 {
				break
			}
		}
	}
	return b.String()
}

// DefaultTerritoryPrefix is the Utah ZIP prefix.
const DefaultTerritoryPrefix = "84"

// DefaultAllowList holds the core service ZIPs.
func DefaultAllowList() []string {
	return []string{
		"84003", "84004", "84010", "84020", "84043", "84047", "84057", "84058", "84060",
		"84081", "84088", "84092", "84093", "84095", "84096", "84101", "84102", "84103",
		"84104", "84105", "84106", "84107", "84108", "84109", "84111", "84112", "84113",
		"84115", "84116", "84117", "84118", "84119", "84120", "84121", "84123", "84124", "84128",
	}
}

// DefaultTerritory returns the built-in classifier.
func DefaultTerritory() *Territory {
	t, err := NewTerritory(DefaultTerritoryPrefix, DefaultAllowList())
	if err != nil {
		panic(err)
	}
	return t
}
