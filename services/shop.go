package services

import (
	"fmt"
	"time"
)

// Business is the owner information printed on quotes and mail drafts.
type Business struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Tagline string `json:"tagline"`
}

// DefaultBusiness is the built-in owner block.
var DefaultBusiness = Business{
	Name:    "UtahPCs",
	City:    "Salt Lake City",
	Phone:   "(801) 555-0137",
	Email:   "builds@utahpcs.example",
	Tagline: "Custom PCs, Local Expertise, Fair Pricing",
}

// Shop bundles the static configuration surface: business details, catalog,
// presets and territory. It is built once at startup and only read afterwards.
type Shop struct {
	Business  Business
	Catalog   *Catalog
	Presets   *PresetBook
	Territory *Territory
}

// NewShop runs the preset self-check against the catalog and returns the
// assembled shop.
func NewShop(business Business, cat *Catalog, presets []Preset, territory *Territory) (*Shop, error) {
	if business.Name == "" {
		return nil, fmt.Errorf("shop: business name is required")
	}
	if cat == nil || territory == nil {
		return nil, fmt.Errorf("shop: catalog and territory are required")
	}
	book, err := NewPresetBook(cat, presets)
	if err != nil {
		return nil, fmt.Errorf("shop: %w", err)
	}
	return &Shop{
		Business:  business,
		Catalog:   cat,
		Presets:   book,
		Territory: territory,
	}, nil
}

// DefaultShop returns the shop built entirely from built-in data.
func DefaultShop() *Shop {
	s, err := NewShop(DefaultBusiness, DefaultCatalog(), DefaultPresets(), DefaultTerritory())
	if err != nil {
		panic(err)
	}
	return s
}

// Breakdown prices cfg against the shop catalog.
func (s *Shop) Breakdown(cfg Configuration) (PriceBreakdown, error) {
	return ComputeBreakdown(s.Catalog, cfg)
}

// Quote prices cfg and snapshots it with the lead into a QuoteRecord.
func (s *Shop) Quote(lead Lead, cfg Configuration, now time.Time) (QuoteRecord, error) {
	b, err := s.Breakdown(cfg)
	if err != nil {
		return QuoteRecord{}, err
	}
	return s.ToRecord(lead, cfg, b, now), nil
}
