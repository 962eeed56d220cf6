package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// quoteNamespace scopes reference ids so they never collide with other
// name-based UUIDs derived from the same bytes.
var quoteNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:pcquote:quote"))

// formatQuoteNumber constructs the reference string from components.
func formatQuoteNumber(prefix, date, digest string) string {
	return fmt.Sprintf("%s-Q-%s-%s", prefix, date, digest)
}

// QuoteNumber returns a stable reference for a record.
// Format: {PREFIX}-Q-{yymmdd}-{digest}
//   - PREFIX: up to four letters of the business name, upper-cased
//   - yymmdd: the record date in UTC
//   - digest: first 8 hex chars of a name-based UUID over the structured export
//
// The same record always yields the same number, including after an export
// and re-import, so it can be quoted back by the customer.
func QuoteNumber(r QuoteRecord) (string, error) {
	doc, err := ToStructuredExport(r)
	if err != nil {
		return "", err
	}
	id := uuid.NewSHA1(quoteNamespace, doc)
	digest := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
	return formatQuoteNumber(quotePrefix(r.Company), r.When.UTC().Format("060102"), digest), nil
}

func quotePrefix(company string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(company) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
			if b.Len() == 4 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "PC"
	}
	return b.String()
}
