package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"pcquote/services"
)

type presetResponse struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Configuration services.Configuration  `json:"configuration"`
	Breakdown     services.PriceBreakdown `json:"breakdown"`
}

// HandlePresetList handles GET /api/presets.
func HandlePresetList(shop *services.Shop) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, shop.Presets.List())
	}
}

// HandlePresetGet handles GET /api/presets/{id} and returns the preset's
// configuration already priced.
func HandlePresetGet(shop *services.Shop) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		cfg, err := shop.Presets.Resolve(id)
		if err != nil {
			return respondError(e, err)
		}
		breakdown, err := shop.Breakdown(cfg)
		if err != nil {
			return respondError(e, err)
		}
		name, _ := shop.Presets.Name(id)
		return e.JSON(http.StatusOK, presetResponse{
			ID:            id,
			Name:          name,
			Configuration: cfg,
			Breakdown:     breakdown,
		})
	}
}
