package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"pcquote/services"
)

// formattedTotals holds the breakdown as display strings, e.g. "$1,234.50".
type formattedTotals struct {
	Parts    string `json:"parts"`
	Extras   string `json:"extras"`
	Labor    string `json:"labor"`
	Subtotal string `json:"subtotal"`
	TaxRate  string `json:"taxRate"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

type breakdownResponse struct {
	Configuration services.Configuration  `json:"configuration"`
	Breakdown     services.PriceBreakdown `json:"breakdown"`
	Formatted     formattedTotals         `json:"formatted"`
}

func formatTotals(b services.PriceBreakdown) formattedTotals {
	return formattedTotals{
		Parts:    services.FormatUSD(b.Parts),
		Extras:   services.FormatUSD(b.Extras),
		Labor:    services.FormatUSD(b.Labor),
		Subtotal: services.FormatUSD(b.Subtotal),
		TaxRate:  b.TaxRate.Percent(),
		Tax:      services.FormatUSD(b.Tax),
		Total:    services.FormatUSD(b.Total),
	}
}

// HandleBreakdown handles POST /api/quote/breakdown. It prices the posted
// configuration (optionally starting from a preset) and returns the totals.
func HandleBreakdown(shop *services.Shop) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		req, err := readQuoteRequest(e)
		if err != nil {
			return respondError(e, err)
		}
		cfg, err := req.configuration(shop)
		if err != nil {
			return respondError(e, err)
		}
		breakdown, err := shop.Breakdown(cfg)
		if err != nil {
			return respondError(e, err)
		}
		return e.JSON(http.StatusOK, breakdownResponse{
			Configuration: cfg,
			Breakdown:     breakdown,
			Formatted:     formatTotals(breakdown),
		})
	}
}
