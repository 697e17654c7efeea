package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchLongestNameWins(t *testing.T) {
	c := Default()

	testCases := []struct {
		title    string
		expected string
		matched  bool
	}{
		{"ACME RTX 4070 Ti SUPER 16GB OC", "RTX 4070 Ti SUPER", true},
		{"ACME RTX 4070 Ti 12GB", "RTX 4070 Ti", true},
		{"GIGABYTE GeForce RTX 4070 WINDFORCE", "RTX 4070", true},
		{"MSI RTX 4080 SUPER Ventus 3X", "RTX 4080 SUPER", true},
		{"ZOTAC RTX 4080 Trinity", "RTX 4080", true},
		{"msi rtx 4070 super gaming x slim", "RTX 4070 SUPER", true},
		{"Radeon RX 7800 XT", "", false},
		{"RTX 4090 Founders Edition", "", false},
	}

	for _, tc := range testCases {
		model, ok := c.Match(tc.title)
		assert.Equal(t, tc.matched, ok, "title: %s", tc.title)
		if tc.matched {
			assert.Equal(t, tc.expected, model.Name, "title: %s", tc.title)
		}
	}
}

func TestMatchExclusionWins(t *testing.T) {
	c := Default()

	// The 4060 tier is excluded outright, even though "RTX 4060 Ti"
	// would otherwise overlap with nothing in the catalog and a bundle
	// title could also contain a recognized model name.
	_, ok := c.Match("ASUS RTX 4060 Ti Dual OC")
	assert.False(t, ok)

	_, ok = c.Match("Bundle: RTX 4070 + RTX 4060 backplate")
	assert.False(t, ok, "exclusion must win over a present catalog name")
}

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		text     string
		expected int
		ok       bool
	}{
		{"$1,199.00", 1199, true},
		{"$999.99", 999, true},
		{"599", 599, true},
		{"Now: $549.00!", 549, true},
		{"1,049", 1049, true},
		{"Call for price", 0, false},
		{"", 0, false},
	}

	for _, tc := range testCases {
		price, ok := ParsePrice(tc.text)
		assert.Equal(t, tc.ok, ok, "text: %q", tc.text)
		assert.Equal(t, tc.expected, price, "text: %q", tc.text)
	}
}

func TestEvaluateInclusiveThreshold(t *testing.T) {
	m := Model{Name: "RTX 4070", ReferencePrice: 599}

	assert.True(t, Evaluate(PolicyStrict, m, 599), "price at the reference must qualify")
	assert.True(t, Evaluate(PolicyStrict, m, 550))
	assert.False(t, Evaluate(PolicyStrict, m, 600))
}

func TestEvaluateCeilingPolicy(t *testing.T) {
	withCeiling := Model{Name: "RTX 4080 SUPER", ReferencePrice: 1000, Ceiling: 1100}
	withoutCeiling := Model{Name: "RTX 4070", ReferencePrice: 600}

	assert.True(t, Evaluate(PolicyCeiling, withCeiling, 1100))
	assert.False(t, Evaluate(PolicyCeiling, withCeiling, 1101))
	assert.False(t, Evaluate(PolicyStrict, withCeiling, 1100), "strict policy ignores the ceiling")

	// No ceiling set: the ceiling policy behaves like strict
	assert.True(t, Evaluate(PolicyCeiling, withoutCeiling, 600))
	assert.False(t, Evaluate(PolicyCeiling, withoutCeiling, 601))
}

func TestLoadCatalogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")

	content := `{
		"models": [
			{"name": "RTX 5080", "reference_price": 999},
			{"name": "RTX 5080 SUPER", "reference_price": 1099, "ceiling": 1199}
		],
		"exclusions": ["RTX 5060"]
	}`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c, err := Load(path)
	assert.NoError(t, err)

	model, ok := c.Match("PNY RTX 5080 SUPER 16GB")
	assert.True(t, ok)
	assert.Equal(t, "RTX 5080 SUPER", model.Name)
	assert.Equal(t, 1099, model.ReferencePrice)

	_, ok = c.Match("PNY RTX 5060 8GB")
	assert.False(t, ok)
}

func TestLoadCatalogFileErrors(t *testing.T) {
	// Empty path falls back to the built-in catalog
	c, err := Load("")
	assert.NoError(t, err)
	assert.NotEmpty(t, c.Models())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	assert.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	assert.NoError(t, os.WriteFile(empty, []byte(`{"models": []}`), 0644))
	_, err = Load(empty)
	assert.Error(t, err)
}
