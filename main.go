package main

import (
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	log "github.com/sirupsen/logrus"

	"pcquote/commands"
	"pcquote/config"
	"pcquote/handlers"
)

func main() {
	// PCQUOTE_CONFIG names the YAML file; without it ./pcquote.yaml is used
	// when present.
	cfg, err := config.Load(os.Getenv(config.EnvPrefix + "_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Log.ApplyLogging(); err != nil {
		log.Fatalf("config: %v", err)
	}

	// The shop is built once; a catalog that breaks a preset stops startup here.
	shop, err := cfg.Shop()
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	log.WithFields(log.Fields{
		"business": shop.Business.Name,
		"presets":  len(shop.Presets.List()),
		"tax":      shop.Catalog.TaxRate().Percent(),
	}).Info("catalog loaded")

	app := pocketbase.New()
	app.RootCmd.AddCommand(
		commands.NewQuoteCommand(shop),
		commands.NewPresetsCommand(shop),
	)

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(handlers.RequestLogger())

		// ── Catalog ──────────────────────────────────────────────
		se.Router.GET("/api/catalog", handlers.HandleCatalog(shop))
		se.Router.GET("/api/catalog/sheet", handlers.HandlePriceSheetDownload(shop))
		se.Router.POST("/api/catalog/sheet/check", handlers.HandlePriceSheetCheck(shop))

		// ── Presets ──────────────────────────────────────────────
		se.Router.GET("/api/presets", handlers.HandlePresetList(shop))
		se.Router.GET("/api/presets/{id}", handlers.HandlePresetGet(shop))

		// ── Territory & lead ─────────────────────────────────────
		se.Router.GET("/api/territory/{code}", handlers.HandleTerritory(shop))
		se.Router.POST("/api/lead/validate", handlers.HandleLeadCheck(shop))

		// ── Quotes ───────────────────────────────────────────────
		se.Router.POST("/api/quote/breakdown", handlers.HandleBreakdown(shop))
		se.Router.POST("/api/quote/export/{format}", handlers.HandleQuoteExport(shop))
		se.Router.POST("/api/quote/import", handlers.HandleQuoteImport(shop))

		// ── HTML preview ─────────────────────────────────────────
		se.Router.GET("/quote/preview", handlers.HandleQuotePreview(shop))
		se.Router.POST("/quote/preview", handlers.HandleQuotePreview(shop))

		// Redirect home to the preview
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/quote/preview")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
