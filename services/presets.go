package services

import "fmt"

// Preset is a named, pre-validated build.
type Preset struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Configuration Configuration `json:"configuration"`
}

// PresetSummary is the id/name pair shown in a preset picker.
type PresetSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PresetBook is the static, self-checked set of presets.
type PresetBook struct {
	presets []Preset
	byID    map[string]int
}

// NewPresetBook copies presets and checks each one against the catalog once.
// A preset that does not price cleanly is a startup error.
func NewPresetBook(cat *Catalog, presets []Preset) (*PresetBook, error) {
	b := &PresetBook{
		presets: make([]Preset, 0, len(presets)),
		byID:    make(map[string]int, len(presets)),
	}
	for _, p := range presets {
		if p.ID == "" {
			return nil, fmt.Errorf("preset %q has empty id", p.Name)
		}
		if _, dup := b.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate preset %q", p.ID)
		}
		if err := ValidateConfiguration(cat, p.Configuration); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.ID, err)
		}
		b.byID[p.ID] = len(b.presets)
		b.presets = append(b.presets, Preset{ID: p.ID, Name: p.Name, Configuration: p.Configuration.Clone()})
	}
	return b, nil
}

// Resolve returns an independent copy of the preset's configuration.
func (b *PresetBook) Resolve(id string) (Configuration, error) {
	i, ok := b.byID[id]
	if !ok {
		return Configuration{}, &UnknownPresetError{ID: id}
	}
	return b.presets[i].Configuration.Clone(), nil
}

// Name returns the display name of a preset.
func (b *PresetBook) Name(id string) (string, bool) {
	i, ok := b.byID[id]
	if !ok {
		return "", false
	}
	return b.presets[i].Name, true
}

// List returns the presets in declaration order.
func (b *PresetBook) List() []PresetSummary {
	out := make([]PresetSummary, len(b.presets))
	for i, p := range b.presets {
		out[i] = PresetSummary{ID: p.ID, Name: p.Name}
	}
	return out
}

// Presets returns deep copies of every preset in declaration order, so a
// replacement catalog can be checked against them.
func (b *PresetBook) Presets() []Preset {
	out := make([]Preset, len(b.presets))
	for i, p := range b.presets {
		out[i] = Preset{ID: p.ID, Name: p.Name, Configuration: p.Configuration.Clone()}
	}
	return out
}

// DefaultPresets returns the built-in presets.
func DefaultPresets() []Preset {
	return []Preset{
		{
			ID:   "gaming1080",
			Name: "Gaming (1080p/144Hz)",
			Configuration: Configuration{
				Selection: map[Category]string{
					CategoryCPU: "r5", CategoryGPU: "4060", CategoryRAM: "16",
					CategoryStorage: "1tb", CategoryCase: "mesh", CategoryPSU: "650",
				},
				Extras: []string{"os", "cable"},
			},
		},
		{
			ID:   "gaming1440",
			Name: "Gaming (1440p/High)",
			Configuration: Configuration{
				Selection: map[Category]string{
					CategoryCPU: "r7", CategoryGPU: "4070s", CategoryRAM: "32",
					CategoryStorage: "2tb", CategoryCase: "mesh", CategoryPSU: "750",
				},
				Extras: []string{"os", "aio", "cable"},
			},
		},
		{
			ID:   "creator4k",
			Name: "Creator (4K / AI)",
			Configuration: Configuration{
				Selection: map[Category]string{
					CategoryCPU: "r9", CategoryGPU: "4080s", CategoryRAM: "64",
					CategoryStorage: "4tb", CategoryCase: "silent", CategoryPSU: "1000",
				},
				Extras: []string{"os", "aio", "wifi"},
			},
		},
		{
			ID:   "office",
			Name: "Home / Office",
			Configuration: Configuration{
				Selection: map[Category]string{
					CategoryCPU: "r5", CategoryGPU: "none", CategoryRAM: "16",
					CategoryStorage: "1tb", CategoryCase: "air", CategoryPSU: "650",
				},
				Extras: []string{"os"},
			},
		},
	}
}
