package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"pcquote/services"
)

// HandleTerritory handles GET /api/territory/{code}. The code is classified
// exactly as given; ?normalize=1 first strips non-digits the way the ZIP
// field does while typing.
func HandleTerritory(shop *services.Shop) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		code := e.Request.PathValue("code")
		if e.Request.URL.Query().Get("normalize") == "1" {
			code = services.NormalizePostalCode(code)
		}
		return e.JSON(http.StatusOK, shop.Territory.Status(code))
	}
}

type leadCheckResponse struct {
	Valid     bool                     `json:"valid"`
	Errors    map[string]string        `json:"errors"`
	Territory services.TerritoryStatus `json:"territory"`
}

// HandleLeadCheck handles POST /api/lead/validate. It runs the advisory
// contact checks; the answer is always 200 because exports never require a
// valid lead.
func HandleLeadCheck(shop *services.Shop) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		req, err := readQuoteRequest(e)
		if err != nil {
			return respondError(e, err)
		}
		lead := req.Lead.Sanitized()
		errs := services.ValidateLead(lead)
		return e.JSON(http.StatusOK, leadCheckResponse{
			Valid:     len(errs) == 0,
			Errors:    errs,
			Territory: shop.Territory.Status(lead.PostalCode),
		})
	}
}
