package handlers

import (
	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"pcquote/services"
	"pcquote/templates"
)

// HandleQuotePreview handles GET and POST /quote/preview. GET takes the same
// fields as query parameters (?preset=creator4k&gpu=4090&extras=rgb), POST
// takes a form or a JSON quote body. HTMX requests receive only the quote
// fragment.
func HandleQuotePreview(shop *services.Shop) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		req, err := readQuoteRequest(e)
		if err != nil {
			return respondError(e, err)
		}
		cfg, err := req.configuration(shop)
		if err != nil {
			return respondError(e, err)
		}
		record, err := shop.Quote(req.Lead, cfg, clock())
		if err != nil {
			return respondError(e, err)
		}
		doc, err := services.BuildExportData(shop, record)
		if err != nil {
			return respondError(e, err)
		}

		lead := record.Lead.Sanitized()
		data := templates.QuotePreviewData{
			Document:   doc,
			Territory:  shop.Territory.Status(lead.PostalCode),
			LeadErrors: services.ValidateLead(lead),
			Presets:    shop.Presets.List(),
			Preset:     req.Preset,
			Text:       shop.ToDisplayText(record),
		}

		var component templ.Component
		if isHTMX(e) {
			component = templates.QuotePreviewContent(data)
		} else {
			component = templates.QuotePreviewPage(data)
		}
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return component.Render(e.Request.Context(), e.Response)
	}
}
