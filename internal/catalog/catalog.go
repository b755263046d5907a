// Package catalog holds the static list of sortable items. Items are pure
// data: the engine binds physics bodies to them but never mutates them.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Category string

type Item struct {
	ID       string   `yaml:"id"`
	Label    string   `yaml:"label"`
	Category Category `yaml:"category"`
	Icon     string   `yaml:"icon,omitempty"`
}

// Catalog is an ordered item list plus the fixed closed category set,
// in first-appearance order. The category order is also the bucket order
// and the hit-test priority order.
type Catalog struct {
	Items      []Item
	Categories []Category
}

type fileFormat struct {
	Items []Item `yaml:"items"`
}

func New(items []Item) (*Catalog, error) {
	c := &Catalog{Items: items}
	seen := make(map[Category]bool)
	for _, it := range items {
		if !seen[it.Category] {
			seen[it.Category] = true
			c.Categories = append(c.Categories, it.Category)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(f.Items)
}

func (c *Catalog) Validate() error {
	if len(c.Items) == 0 {
		return fmt.Errorf("catalog has no items")
	}
	if len(c.Categories) < 2 {
		return fmt.Errorf("catalog needs at least 2 categories, got %d", len(c.Categories))
	}
	ids := make(map[string]bool, len(c.Items))
	for i, it := range c.Items {
		if it.ID == "" {
			return fmt.Errorf("item %d has empty id", i)
		}
		if it.Label == "" {
			return fmt.Errorf("item %q has empty label", it.ID)
		}
		if ids[it.ID] {
			return fmt.Errorf("duplicate item id: %s", it.ID)
		}
		ids[it.ID] = true
	}
	return nil
}

func (c *Catalog) CountByCategory() map[Category]int {
	counts := make(map[Category]int, len(c.Categories))
	for _, it := range c.Items {
		counts[it.Category]++
	}
	return counts
}

// Default is the built-in session catalog: 20 items across 4 categories.
func Default() *Catalog {
	c, err := New([]Item{
		{ID: "apple", Label: "apple", Category: "fruit"},
		{ID: "banana", Label: "banana", Category: "fruit"},
		{ID: "cherry", Label: "cherry", Category: "fruit"},
		{ID: "mango", Label: "mango", Category: "fruit"},
		{ID: "plum", Label: "plum", Category: "fruit"},
		{ID: "otter", Label: "otter", Category: "animal"},
		{ID: "heron", Label: "heron", Category: "animal"},
		{ID: "lynx", Label: "lynx", Category: "animal"},
		{ID: "gecko", Label: "gecko", Category: "animal"},
		{ID: "badger", Label: "badger", Category: "animal"},
		{ID: "cello", Label: "cello", Category: "instrument"},
		{ID: "oboe", Label: "oboe", Category: "instrument"},
		{ID: "banjo", Label: "banjo", Category: "instrument"},
		{ID: "viola", Label: "viola", Category: "instrument"},
		{ID: "drum", Label: "drum", Category: "instrument"},
		{ID: "tram", Label: "tram", Category: "vehicle"},
		{ID: "kayak", Label: "kayak", Category: "vehicle"},
		{ID: "glider", Label: "glider", Category: "vehicle"},
		{ID: "scooter", Label: "scooter", Category: "vehicle"},
		{ID: "ferry", Label: "ferry", Category: "vehicle"},
	})
	if err != nil {
		panic(err) // built-in catalog is always valid
	}
	return c
}
