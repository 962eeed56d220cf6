package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/pocketbase/pocketbase/core"
	log "github.com/sirupsen/logrus"

	"pcquote/services"
)

// maxSheetBytes caps uploaded price sheets.
const maxSheetBytes = 10 << 20

type categoryResponse struct {
	ID    services.Category      `json:"id"`
	Label string                 `json:"label"`
	Items []services.CatalogItem `json:"items"`
}

type catalogResponse struct {
	Business        services.Business        `json:"business"`
	Categories      []categoryResponse       `json:"categories"`
	Extras          []services.ExtraItem     `json:"extras"`
	Labor           services.Labor           `json:"labor"`
	TaxRate         services.TaxRate         `json:"taxRate"`
	TaxPercent      string                   `json:"taxPercent"`
	TerritoryPrefix string                   `json:"territoryPrefix"`
	Presets         []services.PresetSummary `json:"presets"`
}

// HandleCatalog handles GET /api/catalog and returns everything the quote
// page needs to render its pickers.
func HandleCatalog(shop *services.Shop) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cat := shop.Catalog
		resp := catalogResponse{
			Business:        shop.Business,
			Categories:      make([]categoryResponse, 0, len(services.Categories)),
			Extras:          cat.Extras(),
			Labor:           cat.LaborFees(),
			TaxRate:         cat.TaxRate(),
			TaxPercent:      cat.TaxRate().Percent(),
			TerritoryPrefix: shop.Territory.Prefix(),
			Presets:         shop.Presets.List(),
		}
		for _, c := range services.Categories {
			resp.Categories = append(resp.Categories, categoryResponse{
				ID:    c,
				Label: c.Label(),
				Items: cat.Items(c),
			})
		}
		return e.JSON(http.StatusOK, resp)
	}
}

// HandlePriceSheetDownload handles GET /api/catalog/sheet and returns the
// active price list as an xlsx file that the sheet check accepts unchanged.
func HandlePriceSheetDownload(shop *services.Shop) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := services.GeneratePriceSheet(shop.Catalog)
		if err != nil {
			return respondError(e, fmt.Errorf("generate price sheet: %w", err))
		}

		filename := services.SanitizeFilename(shop.Business.Name) + "-price-sheet.xlsx"
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.WriteHeader(http.StatusOK)
		_, err = e.Response.Write(data)
		return err
	}
}

// sheetCheckResponse summarises an uploaded price sheet without applying it.
type sheetCheckResponse struct {
	*services.PriceSheet
	Valid        bool   `json:"valid"`
	CatalogError string `json:"catalogError,omitempty"`
}

// HandlePriceSheetCheck handles POST /api/catalog/sheet/check. It validates
// an uploaded CSV or XLSX price list (multipart field "file") against the
// current labor, tax and presets. With ?report=xlsx and row errors present
// the response is a downloadable error report instead of JSON.
// The running catalog is never replaced; the sheet goes live through the
// pricing.price_sheet setting on the next start.
func HandlePriceSheetCheck(shop *services.Shop) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(maxSheetBytes); err != nil {
			return respondError(e, badRequest("failed to parse upload", err))
		}
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return respondError(e, badRequest("no file uploaded", err))
		}
		defer file.Close()

		fileName := filepath.Base(header.Filename)
		sheet, err := services.ParsePriceSheet(file, fileName)
		if err != nil {
			return respondError(e, badRequest(err.Error(), nil))
		}

		log.WithFields(log.Fields{
			"file":   fileName,
			"rows":   sheet.TotalRows,
			"errors": sheet.ErrorRows,
		}).Info("price sheet checked")

		if len(sheet.Errors) > 0 && e.Request.URL.Query().Get("report") == "xlsx" {
			data, err := services.GenerateErrorReport(sheet.Errors)
			if err != nil {
				return respondError(e, fmt.Errorf("generate error report: %w", err))
			}
			e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			e.Response.Header().Set("Content-Disposition", `attachment; filename="price-sheet-errors.xlsx"`)
			e.Response.WriteHeader(http.StatusOK)
			_, err = e.Response.Write(data)
			return err
		}

		resp := sheetCheckResponse{PriceSheet: sheet}
		if len(sheet.Errors) == 0 {
			cat := shop.Catalog
			candidate, err := sheet.Catalog(cat.LaborFees(), cat.TaxRate())
			if err == nil {
				_, err = services.NewShop(shop.Business, candidate, shop.Presets.Presets(), shop.Territory)
			}
			if err != nil {
				resp.CatalogError = err.Error()
			} else {
				resp.Valid = true
			}
		}

		if isHTMX(e) {
			if resp.Valid {
				SetToast(e, "success", fmt.Sprintf("%s: %d rows look good", fileName, sheet.ValidRows))
			} else {
				SetToast(e, "error", fmt.Sprintf("%s: problems found, see details", fileName))
			}
		}
		return e.JSON(http.StatusOK, resp)
	}
}
