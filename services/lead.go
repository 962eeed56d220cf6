package services

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Field limits applied before any lead text is embedded in a mail body or subject.
const (
	MaxNameLen          = 100
	MaxEmailLen         = 254
	MaxPhoneLen         = 30
	MaxPreferredDateLen = 30
	MaxPostalCodeLen    = 5
	MaxNotesLen         = 2000
)

var phonePattern = regexp.MustCompile(`^[0-9+()\-\s]{7,30}$`)

// Lead is the contact information captured with a build request. The JSON
// names match the downloaded request file.
type Lead struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PreferredDate string `json:"date"`
	PostalCode    string `json:"zip"`
	Notes         string `json:"notes"`
}

// SanitizeField replaces control characters (line breaks included) with
// spaces, caps the result at limit runes and trims surrounding space.
func SanitizeField(s string, limit int) string {
	var b strings.Builder
	b.Grow(len(s))
	n := 0
	for _, r := range s {
		if n == limit {
			break
		}
		if unicode.IsControl(r) || r == '\u2028' || r == '\u2029' {
			r = ' '
		}
		b.WriteRune(r)
		n++
	}
	return strings.TrimSpace(b.String())
}

// Sanitized returns a copy of the lead with every field passed through
// SanitizeField at its limit.
func (l Lead) Sanitized() Lead {
	return Lead{
		Name:          SanitizeField(l.Name, MaxNameLen),
		Email:         SanitizeField(l.Email, MaxEmailLen),
		Phone:         SanitizeField(l.Phone, MaxPhoneLen),
		PreferredDate: SanitizeField(l.PreferredDate, MaxPreferredDateLen),
		PostalCode:    SanitizeField(l.PostalCode, MaxPostalCodeLen),
		Notes:         SanitizeField(l.Notes, MaxNotesLen),
	}
}

// ValidateLead runs the basic format checks and returns field -> message for
// every violation, keyed by the JSON field name. An empty map means valid.
// The checks are advisory: exports never require a valid lead.
func ValidateLead(l Lead) map[string]string {
	out := make(map[string]string)

	err := validation.ValidateStruct(&l,
		validation.Field(&l.Name,
			validation.Required.Error("Full name is required"),
			validation.RuneLength(0, MaxNameLen)),
		validation.Field(&l.Email,
			validation.Required.Error("Email is required"),
			validation.RuneLength(0, MaxEmailLen),
			is.EmailFormat.Error("Invalid email format")),
		validation.Field(&l.Phone,
			validation.Match(phonePattern).Error("Invalid phone number (7-30 digits, spaces, +, -, parentheses)")),
		validation.Field(&l.PreferredDate,
			validation.Date("2006-01-02").Error("Invalid date (expected YYYY-MM-DD)")),
		validation.Field(&l.PostalCode,
			validation.Match(postalCodePattern).Error("Invalid ZIP code (expected 5 digits)")),
		validation.Field(&l.Notes,
			validation.RuneLength(0, MaxNotesLen)),
	)
	if err == nil {
		return out
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, ferr := range fieldErrs {
			out[field] = ferr.Error()
		}
		return out
	}
	out["lead"] = err.Error()
	return out
}

// ValidEmail reports whether s passes the lead email check.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && validation.Validate(s, is.EmailFormat) == nil
}
