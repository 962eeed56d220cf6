package services

// Configuration is a build: one item id per category plus a set of extras.
// Extras behave as a set; duplicates collapse and order carries no price meaning.
type Configuration struct {
	Selection map[Category]string `json:"selections"`
	Extras    []string            `json:"extras"`
}

// Clone returns a deep copy that shares no memory with c.
func (c Configuration) Clone() Configuration {
	out := Configuration{}
	if c.Selection != nil {
		out.Selection = make(map[Category]string, len(c.Selection))
		for k, v := range c.Selection {
			out.Selection[k] = v
		}
	}
	if c.Extras != nil {
		out.Extras = append(make([]string, 0, len(c.Extras)), c.Extras...)
	}
	return out
}

// UniqueExtras returns the extras ids with duplicates removed, keeping the
// first occurrence of each.
func (c Configuration) UniqueExtras() []string {
	seen := make(map[string]bool, len(c.Extras))
	out := make([]string, 0, len(c.Extras))
	for _, id := range c.Extras {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// HasExtra reports whether id is among the selected extras.
func (c Configuration) HasExtra(id string) bool {
	for _, x := range c.Extras {
		if x == id {
			return true
		}
	}
	return false
}

// DefaultConfiguration is the starting build shown before any preset is
// chosen, and the state a "reset" returns to.
func DefaultConfiguration() Configuration {
	return Configuration{
		Selection: map[Category]string{
			CategoryCPU:     "r5",
			CategoryGPU:     "none",
			CategoryRAM:     "16",
			CategoryStorage: "1tb",
			CategoryCase:    "air",
			CategoryPSU:     "650",
		},
		Extras: []string{"os"},
	}
}
