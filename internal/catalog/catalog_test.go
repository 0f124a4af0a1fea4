package catalog

import "testing"

func TestCatalogHasTwentyCategories(t *testing.T) {
	cats := Categories()
	if len(cats) != 20 {
		t.Fatalf("expected 20 categories, got %d", len(cats))
	}
	seen := map[string]bool{}
	for _, c := range cats {
		if c.Name == "" {
			t.Fatal("category with empty name")
		}
		if seen[c.Name] {
			t.Fatalf("duplicate category %q", c.Name)
		}
		seen[c.Name] = true
		if len(c.Subcategories) == 0 {
			t.Fatalf("category %q has no subcategories", c.Name)
		}
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	c, ok := Lookup("FOOD")
	if !ok {
		t.Fatal("expected to find food")
	}
	if c.Name != "food" {
		t.Fatalf("got %q", c.Name)
	}
	if _, ok := Lookup("no-such-category"); ok {
		t.Fatal("expected miss")
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	first := Categories()
	first[0].Name = "mutated"
	first[0].Subcategories[0] = "mutated"

	again := Categories()
	if again[0].Name == "mutated" || again[0].Subcategories[0] == "mutated" {
		t.Fatal("catalog should be immutable to callers")
	}
}
