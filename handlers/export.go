package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"
	log "github.com/sirupsen/logrus"

	"pcquote/services"
)

// clock stamps new quote records. Tests replace it.
var clock = time.Now

// exportFormat describes one download flavour of a quote.
type exportFormat struct {
	ext         string
	contentType string
	render      func(shop *services.Shop, r services.QuoteRecord) ([]byte, error)
}

var exportFormats = map[string]exportFormat{
	"json": {
		ext:         "json",
		contentType: "application/json",
		render: func(_ *services.Shop, r services.QuoteRecord) ([]byte, error) {
			return services.ToStructuredExport(r)
		},
	},
	"txt": {
		ext:         "txt",
		contentType: "text/plain; charset=utf-8",
		render: func(shop *services.Shop, r services.QuoteRecord) ([]byte, error) {
			return []byte(shop.ToDisplayText(r)), nil
		},
	},
	"eml": {
		ext:         "eml",
		contentType: "message/rfc822",
		render: func(shop *services.Shop, r services.QuoteRecord) ([]byte, error) {
			return shop.MailDraft(r)
		},
	},
	"xlsx": {
		ext:         "xlsx",
		contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		render: func(shop *services.Shop, r services.QuoteRecord) ([]byte, error) {
			data, err := services.BuildExportData(shop, r)
			if err != nil {
				return nil, err
			}
			return services.GenerateExcel(data)
		},
	},
	"pdf": {
		ext:         "pdf",
		contentType: "application/pdf",
		render: func(shop *services.Shop, r services.QuoteRecord) ([]byte, error) {
			data, err := services.BuildExportData(shop, r)
			if err != nil {
				return nil, err
			}
			return services.GeneratePDF(data)
		},
	},
}

// HandleQuoteExport handles POST /api/quote/export/{format} where format is
// one of json, txt, eml, xlsx or pdf. The body carries the lead and the
// configuration; the response is a file download.
func HandleQuoteExport(shop *services.Shop) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		name := e.Request.PathValue("format")
		format, ok := exportFormats[name]
		if !ok {
			return respondError(e, badRequest(fmt.Sprintf("unsupported export format %q", name), nil))
		}

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

		body, err := format.render(shop, record)
		if err != nil {
			return respondError(e, fmt.Errorf("export %s: %w", name, err))
		}
		ref, err := services.QuoteNumber(record)
		if err != nil {
			return respondError(e, fmt.Errorf("export %s: %w", name, err))
		}

		log.WithFields(log.Fields{
			"format":    name,
			"reference": ref,
			"total":     record.Breakdown.Total.String(),
		}).Info("quote exported")

		filename := services.ExportFilename(record, format.ext)
		e.Response.Header().Set("Content-Type", format.contentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Header().Set("X-Quote-Reference", ref)
		e.Response.WriteHeader(http.StatusOK)
		_, err = e.Response.Write(body)
		return err
	}
}

// importResponse describes a previously downloaded quote. Repriced holds
// the same configuration priced against today's catalog, or is nil when the
// configuration no longer prices.
type importResponse struct {
	Reference     string                   `json:"reference"`
	Company       string                   `json:"company"`
	When          time.Time                `json:"when"`
	Lead          services.Lead            `json:"lead"`
	Configuration services.Configuration   `json:"configuration"`
	Breakdown     services.PriceBreakdown  `json:"breakdown"`
	Text          string                   `json:"text"`
	Repriced      *services.PriceBreakdown `json:"repriced"`
	PriceChanged  bool                     `json:"priceChanged"`
	RepriceError  string                   `json:"repriceError,omitempty"`
}

// HandleQuoteImport handles POST /api/quote/import. The body is a JSON file
// produced by the json export; it is parsed strictly and checked against the
// current catalog.
func HandleQuoteImport(shop *services.Shop) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		raw, err := io.ReadAll(io.LimitReader(e.Request.Body, maxBodyBytes+1))
		if err != nil {
			return respondError(e, badRequest("failed to read request body", err))
		}
		if len(raw) > maxBodyBytes {
			return respondError(e, badRequest("request body too large", nil))
		}

		record, err := services.ParseStructuredExport(raw)
		if err != nil {
			return respondError(e, err)
		}
		ref, err := services.QuoteNumber(record)
		if err != nil {
			return respondError(e, err)
		}

		resp := importResponse{
			Reference:     ref,
			Company:       record.Company,
			When:          record.When,
			Lead:          record.Lead,
			Configuration: record.Configuration,
			Breakdown:     record.Breakdown,
			Text:          shop.ToDisplayText(record),
		}
		if repriced, err := shop.Breakdown(record.Configuration); err != nil {
			resp.RepriceError = err.Error()
		} else {
			resp.Repriced = &repriced
			resp.PriceChanged = repriced != record.Breakdown
		}
		return e.JSON(http.StatusOK, resp)
	}
}
