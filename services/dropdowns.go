package services

// Category is one of the fixed component slots of a build.
type Category string

const (
	CategoryCPU     Category = "cpu"
	CategoryGPU     Category = "gpu"
	CategoryRAM     Category = "ram"
	CategoryStorage Category = "storage"
	CategoryCase    Category = "case"
	CategoryPSU     Category = "psu"
)

// Categories lists every category in display order. Every configuration
// must select exactly one item for each of them.
var Categories = []Category{
	CategoryCPU,
	CategoryGPU,
	CategoryRAM,
	CategoryStorage,
	CategoryCase,
	CategoryPSU,
}

func (c Category) String() string {
	return string(c)
}

// Label returns the human label used in mail bodies and documents.
func (c Category) Label() string {
	switch c {
	case CategoryCPU:
		return "CPU"
	case CategoryGPU:
		return "GPU"
	case CategoryRAM:
		return "RAM"
	case CategoryStorage:
		return "Storage"
	case CategoryCase:
		return "Case"
	case CategoryPSU:
		return "PSU"
	default:
		return "Unknown"
	}
}

// ParseCategory maps a raw key to a Category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
