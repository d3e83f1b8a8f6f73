package game

import "testing"

func TestCatalogSourceDrawsFromCatalog(t *testing.T) {
	words := map[string]string{}
	for _, category := range promptCatalog {
		for _, word := range category.words {
			words[word] = category.name
		}
	}

	source := NewSeededCatalogSource(1)
	for i := 0; i < 50; i++ {
		prompt := source.RandomPrompt()
		if prompt.Word == "" || prompt.Category == "" {
			t.Fatalf("empty prompt: %#v", prompt)
		}
		if _, ok := words[prompt.Word]; !ok {
			t.Fatalf("word %q not in catalog", prompt.Word)
		}
	}
}

func TestCatalogSourceDeterministicWithSeed(t *testing.T) {
	a := NewSeededCatalogSource(42)
	b := NewSeededCatalogSource(42)
	for i := 0; i < 10; i++ {
		if a.RandomPrompt() != b.RandomPrompt() {
			t.Fatalf("expected identical sequences for equal seeds")
		}
	}
}

func TestCatalogCategories(t *testing.T) {
	names := CatalogCategories()
	if len(names) != 8 {
		t.Fatalf("expected eight categories, got %d", len(names))
	}
}
