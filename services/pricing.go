// Package services implements the build quoting core: the catalog, the
// pricing engine, service-area classification, presets and quote exports.
// Everything here is a pure function of its arguments and the immutable
// catalog, so it is safe to call from concurrent requests.
package services

import (
	"sort"
)

// PriceBreakdown is derived from a Configuration on every call and never stored.
type PriceBreakdown struct {
	Parts    Cents   `json:"parts"`
	Extras   Cents   `json:"extras"`
	Labor    Cents   `json:"labor"`
	Subtotal Cents   `json:"subtotal"`
	TaxRate  TaxRate `json:"taxRate"`
	Tax      Cents   `json:"tax"`
	Total    Cents   `json:"total"`
}

// ValidateConfiguration checks that every category has a known selection,
// that no unknown category is present, and that every extra exists.
// The first violation is reported as an *InvalidConfigurationError.
func ValidateConfiguration(cat *Catalog, cfg Configuration) error {
	for _, c := range Categories {
		id, ok := cfg.Selection[c]
		if !ok || id == "" {
			return &InvalidConfigurationError{Category: c, Reason: "missing selection"}
		}
		if _, err := cat.Item(c, id); err != nil {
			return &InvalidConfigurationError{Category: c, ID: id, Reason: "unknown item"}
		}
	}

	if len(cfg.Selection) > len(Categories) {
		var unknown []string
		for k := range cfg.Selection {
			if _, ok := ParseCategory(string(k)); !ok {
				unknown = append(unknown, string(k))
			}
		}
		sort.Strings(unknown)
		if len(unknown) > 0 {
			k := Category(unknown[0])
			return &InvalidConfigurationError{Category: k, ID: cfg.Selection[k], Reason: "unknown category"}
		}
	}

	for _, id := range cfg.Extras {
		if _, err := cat.Extra(id); err != nil {
			return &InvalidConfigurationError{ID: id, Reason: "unknown extra"}
		}
	}
	return nil
}

// ComputeBreakdown prices a configuration against the catalog.
//
//	parts    = sum of the selected item prices
//	extras   = sum of the distinct extras
//	labor    = base labor + OS tuning
//	subtotal = parts + extras + labor
//	tax      = subtotal * rate, rounded half away from zero to the cent
//	total    = subtotal + tax
func ComputeBreakdown(cat *Catalog, cfg Configuration) (PriceBreakdown, error) {
	if err := ValidateConfiguration(cat, cfg); err != nil {
		return PriceBreakdown{}, err
	}

	var b PriceBreakdown
	for _, c := range Categories {
		price, err := cat.PriceOf(c, cfg.Selection[c])
		if err != nil {
			return PriceBreakdown{}, &InvalidConfigurationError{Category: c, ID: cfg.Selection[c], Reason: "unknown item"}
		}
		b.Parts += price
	}

	for _, id := range cfg.UniqueExtras() {
		price, err := cat.ExtraPriceOf(id)
		if err != nil {
			return PriceBreakdown{}, &InvalidConfigurationError{ID: id, Reason: "unknown extra"}
		}
		b.Extras += price
	}

	b.Labor = cat.Labor()
	b.Subtotal = b.Parts + b.Extras + b.Labor
	b.TaxRate = cat.TaxRate()
	b.Tax = b.TaxRate.Apply(b.Subtotal)
	b.Total = b.Subtotal + b.Tax
	return b, nil
}

// Consistent reports whether the breakdown's derived fields add up.
func (b PriceBreakdown) Consistent() bool {
	return b.Subtotal == b.Parts+b.Extras+b.Labor &&
		b.Tax == b.TaxRate.Apply(b.Subtotal) &&
		b.Total == b.Subtotal+b.Tax
}
