package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if len(c.Items) != 20 {
		t.Errorf("expected 20 items, got %d", len(c.Items))
	}
	if len(c.Categories) != 4 {
		t.Errorf("expected 4 categories, got %d", len(c.Categories))
	}
	for cat, n := range c.CountByCategory() {
		if n != 5 {
			t.Errorf("category %s has %d items, want 5", cat, n)
		}
	}
}

func TestCategoryOrderIsFirstAppearance(t *testing.T) {
	c, err := New([]Item{
		{ID: "a", Label: "a", Category: "x"},
		{ID: "b", Label: "b", Category: "y"},
		{ID: "c", Label: "c", Category: "x"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Categories[0] != "x" || c.Categories[1] != "y" {
		t.Errorf("category order = %v, want [x y]", c.Categories)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
	}{
		{"empty", nil},
		{"single category", []Item{
			{ID: "a", Label: "a", Category: "x"},
			{ID: "b", Label: "b", Category: "x"},
		}},
		{"duplicate id", []Item{
			{ID: "a", Label: "a", Category: "x"},
			{ID: "a", Label: "b", Category: "y"},
		}},
		{"empty id", []Item{
			{ID: "", Label: "a", Category: "x"},
			{ID: "b", Label: "b", Category: "y"},
		}},
		{"empty label", []Item{
			{ID: "a", Label: "", Category: "x"},
			{ID: "b", Label: "b", Category: "y"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.items); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	data := `items:
  - id: ball
    label: ball
    category: toys
  - id: fork
    label: fork
    category: cutlery
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(c.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(c.Items))
	}
	if c.Items[0].Category != "toys" {
		t.Errorf("first category = %s, want toys", c.Items[0].Category)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
