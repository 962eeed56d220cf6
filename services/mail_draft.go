package services

import (
	"fmt"

	"github.com/domodwyer/mailyak/v3"
)

// MailDraft builds the build-request message addressed to the business as
// raw RFC 5322 bytes, ready to save as a .eml file. Nothing is sent. The
// lead becomes the Reply-To only when their address is well formed.
func (s *Shop) MailDraft(r QuoteRecord) ([]byte, error) {
	if !ValidEmail(s.Business.Email) {
		return nil, fmt.Errorf("mail draft: business email %q is not valid", s.Business.Email)
	}

	mail := mailyak.New("", nil)
	mail.To(s.Business.Email)
	mail.From(s.Business.Email)
	mail.FromName(s.Business.Name)

	lead := r.Lead.Sanitized()
	if lead.Email != "" && ValidEmail(lead.Email) {
		mail.ReplyTo(lead.Email)
	}

	mail.Subject(s.MailSubject(r))
	mail.Plain().Set(s.ToDisplayText(r))

	buf, err := mail.MimeBuf()
	if err != nil {
		return nil, fmt.Errorf("mail draft: %w", err)
	}
	return buf.Bytes(), nil
}
