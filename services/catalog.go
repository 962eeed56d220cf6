package services

import (
	"fmt"
	"strings"
)

// CatalogItem is one priced option inside a category.
type CatalogItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Price Cents  `json:"price"`
}

// ExtraItem is an optional add-on service, priced independently of the build.
type ExtraItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Price Cents  `json:"price"`
}

// Labor holds the flat service fees charged on every build.
type Labor struct {
	Build    Cents `json:"build"`
	OSTuning Cents `json:"osTuning"`
}

// Catalog is the immutable price list. Build one with NewCatalog; the zero
// value is not usable.
type Catalog struct {
	tiers   map[Category][]CatalogItem
	extras  []ExtraItem
	labor   Labor
	taxRate TaxRate
}

// NewCatalog validates and copies the given price list. Every category must
// have at least one item, ids must be unique within their list and no price
// or rate may be negative.
func NewCatalog(tiers map[Category][]CatalogItem, extras []ExtraItem, labor Labor, taxRate TaxRate) (*Catalog, error) {
	if taxRate < 0 {
		return nil, fmt.Errorf("catalog: negative tax rate %s", taxRate)
	}
	if labor.Build < 0 || labor.OSTuning < 0 {
		return nil, fmt.Errorf("catalog: negative labor fee")
	}

	for key := range tiers {
		if _, ok := ParseCategory(string(key)); !ok {
			return nil, fmt.Errorf("catalog: unknown category %q", key)
		}
	}

	c := &Catalog{
		tiers:   make(map[Category][]CatalogItem, len(Categories)),
		labor:   labor,
		taxRate: taxRate,
	}

	for _, cat := range Categories {
		items := tiers[cat]
		if len(items) == 0 {
			return nil, fmt.Errorf("catalog: category %s has no items", cat)
		}
		seen := make(map[string]bool, len(items))
		for _, it := range items {
			if strings.TrimSpace(it.ID) == "" {
				return nil, fmt.Errorf("catalog: %s item with empty id", cat)
			}
			if seen[it.ID] {
				return nil, fmt.Errorf("catalog: duplicate %s item %q", cat, it.ID)
			}
			if it.Price < 0 {
				return nil, fmt.Errorf("catalog: %s item %q has negative price", cat, it.ID)
			}
			seen[it.ID] = true
		}
		c.tiers[cat] = append([]CatalogItem(nil), items...)
	}

	seen := make(map[string]bool, len(extras))
	for _, x := range extras {
		if strings.TrimSpace(x.ID) == "" {
			return nil, fmt.Errorf("catalog: extra with empty id")
		}
		if seen[x.ID] {
			return nil, fmt.Errorf("catalog: duplicate extra %q", x.ID)
		}
		if x.Price < 0 {
			return nil, fmt.Errorf("catalog: extra %q has negative price", x.ID)
		}
		seen[x.ID] = true
	}
	c.extras = append([]ExtraItem(nil), extras...)

	return c, nil
}

// Items returns a copy of the ordered item list for a category.
func (c *Catalog) Items(cat Category) []CatalogItem {
	return append([]CatalogItem(nil), c.tiers[cat]...)
}

// Item looks up a single item.
func (c *Catalog) Item(cat Category, id string) (CatalogItem, error) {
	for _, it := range c.tiers[cat] {
		if it.ID == id {
			return it, nil
		}
	}
	return CatalogItem{}, &UnknownItemError{Category: cat, ID: id}
}

// PriceOf returns the price of an item. Unknown ids are an error, never zero.
func (c *Catalog) PriceOf(cat Category, id string) (Cents, error) {
	it, err := c.Item(cat, id)
	if err != nil {
		return 0, err
	}
	return it.Price, nil
}

// Extras returns a copy of the ordered extras list.
func (c *Catalog) Extras() []ExtraItem {
	return append([]ExtraItem(nil), c.extras...)
}

// Extra looks up a single add-on.
func (c *Catalog) Extra(id string) (ExtraItem, error) {
	for _, x := range c.extras {
		if x.ID == id {
			return x, nil
		}
	}
	return ExtraItem{}, &UnknownItemError{ID: id}
}

// ExtraPriceOf returns the price of an add-on.
func (c *Catalog) ExtraPriceOf(id string) (Cents, error) {
	x, err := c.Extra(id)
	if err != nil {
		return 0, err
	}
	return x.Price, nil
}

// BaseLaborFee is the flat assembly fee.
func (c *Catalog) BaseLaborFee() Cents { return c.labor.Build }

// OSTuningFee is the flat OS tuning fee.
func (c *Catalog) OSTuningFee() Cents { return c.labor.OSTuning }

// Labor returns the total labor charged on every build.
func (c *Catalog) Labor() Cents { return c.labor.Build + c.labor.OSTuning }

// LaborFees returns both labor constants.
func (c *Catalog) LaborFees() Labor { return c.labor }

// TaxRate is the sales tax applied to the subtotal.
func (c *Catalog) TaxRate() TaxRate { return c.taxRate }

// WithPricing returns a copy of the catalog with different labor and tax
// constants. The item lists are shared since they are never mutated.
func (c *Catalog) WithPricing(labor Labor, taxRate TaxRate) (*Catalog, error) {
	return NewCatalog(c.tiers, c.extras, labor, taxRate)
}

// DefaultTiers is the built-in component price list.
func DefaultTiers() map[Category][]CatalogItem {
	return map[Category][]CatalogItem{
		CategoryCPU: {
			{ID: "r5", Label: "Ryzen 5 / Core i5", Price: 18000},
			{ID: "r7", Label: "Ryzen 7 / Core i7", Price: 31000},
			{ID: "r9", Label: "Ryzen 9 / Core i9", Price: 52000},
		},
		CategoryGPU: {
			{ID: "none", Label: "Integrated / None", Price: 0},
			{ID: "4060", Label: "GeForce RTX 4060 / RX 7600XT", Price: 32000},
			{ID: "4070s", Label: "GeForce RTX 4070 Super", Price: 56000},
			{ID: "4080s", Label: "GeForce RTX 4080 Super", Price: 98000},
			{ID: "4090", Label: "GeForce RTX 4090", Price: 169000},
		},
		CategoryRAM: {
			{ID: "16", Label: "16GB DDR5", Price: 6000},
			{ID: "32", Label: "32GB DDR5", Price: 10000},
			{ID: "64", Label: "64GB DDR5", Price: 22000},
		},
		CategoryStorage: {
			{ID: "1tb", Label: "1TB NVMe SSD", Price: 8000},
			{ID: "2tb", Label: "2TB NVMe SSD", Price: 14000},
			{ID: "4tb", Label: "4TB NVMe SSD", Price: 29000},
		},
		CategoryCase: {
			{ID: "air", Label: "Airflow Mid Tower", Price: 11000},
			{ID: "silent", Label: "Silent Mid Tower", Price: 13000},
			{ID: "mesh", Label: "High-Airflow Mesh", Price: 16000},
		},
		CategoryPSU: {
			{ID: "650", Label: "650W 80+ Gold", Price: 8500},
			{ID: "750", Label: "750W 80+ Gold", Price: 11000},
			{ID: "850", Label: "850W 80+ Gold", Price: 13000},
			{ID: "1000", Label: "1000W 80+ Gold", Price: 18000},
		},
	}
}

// DefaultExtras is the built-in add-on list.
func DefaultExtras() []ExtraItem {
	return []ExtraItem{
		{ID: "os", Label: "Windows install & license", Price: 15000},
		{ID: "rgb", Label: "RGB fans / strips", Price: 6000},
		{ID: "wifi", Label: "Wi-Fi / BT card", Price: 4500},
		{ID: "aio", Label: "240mm AIO liquid cooler", Price: 12000},
		{ID: "cable", Label: "Pro cable management", Price: 4500},
		{ID: "rush", Label: "Rush build (48-72h)", Price: 12000},
		{ID: "delivery", Label: "Local delivery & setup", Price: 8000},
	}
}

// DefaultLabor is $200 build plus $45 OS tuning.
var DefaultLabor = Labor{Build: 20000, OSTuning: 4500}

// DefaultTaxRate is 7.75%.
const DefaultTaxRate TaxRate = 77500

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultTiers(), DefaultExtras(), DefaultLabor, DefaultTaxRate)
	if err != nil {
		panic(err)
	}
	return c
}
