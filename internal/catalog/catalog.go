package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Model represents a recognized GPU model and its price limits
type Model struct {
	Name           string `json:"name"`
	ReferencePrice int    `json:"reference_price"`
	// Ceiling is an optional looser acceptable-price cap; 0 means none
	Ceiling int `json:"ceiling,omitempty"`
}

// Catalog holds the recognized models and the exclusion rules used to
// reject near-miss model names in listing titles
type Catalog struct {
	models     []Model
	exclusions []string
}

// New creates a catalog. Models are kept longest-name-first so that a
// more specific model wins over a shorter one whose name is contained
// in the same title.
func New(models []Model, exclusions []string) *Catalog {
	sorted := make([]Model, len(models))
	copy(sorted, models)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Name) > len(sorted[j].Name)
	})

	lowered := make([]string, len(exclusions))
	for i, e := range exclusions {
		lowered[i] = strings.ToLower(e)
	}

	return &Catalog{
		models:     sorted,
		exclusions: lowered,
	}
}

// Default returns the built-in catalog
func Default() *Catalog {
	return New([]Model{
		{Name: "RTX 4070", ReferencePrice: 600},
		{Name: "RTX 4070 SUPER", ReferencePrice: 600},
		{Name: "RTX 4070 Ti", ReferencePrice: 800, Ceiling: 850},
		{Name: "RTX 4070 Ti SUPER", ReferencePrice: 800},
		{Name: "RTX 4080", ReferencePrice: 1200},
		{Name: "RTX 4080 SUPER", ReferencePrice: 1000, Ceiling: 1100},
	}, []string{
		"RTX 4060",
		"RTX 4050",
	})
}

// catalogFile is the JSON shape of a catalog override file
type catalogFile struct {
	Models     []Model  `json:"models"`
	Exclusions []string `json:"exclusions"`
}

// Load reads a catalog override file. An empty path returns the
// built-in catalog; a present but unreadable file is a startup error.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	if len(file.Models) == 0 {
		return nil, fmt.Errorf("catalog file %s defines no models", path)
	}

	return New(file.Models, file.Exclusions), nil
}

// Models returns the catalog entries, longest name first
func (c *Catalog) Models() []Model {
	return c.models
}

// Match resolves a raw listing title to a canonical model. Exclusions
// always win: a title containing any excluded name never matches, even
// when a catalog entry is also present in the title.
func (c *Catalog) Match(title string) (Model, bool) {
	lowered := strings.ToLower(title)

	for _, excluded := range c.exclusions {
		if strings.Contains(lowered, excluded) {
			return Model{}, false
		}
	}

	for _, m := range c.models {
		if strings.Contains(lowered, strings.ToLower(m.Name)) {
			return m, true
		}
	}

	return Model{}, false
}
