package game

import "testing"

func TestMatches(t *testing.T) {
	cases := []struct {
		name   string
		guess  string
		answer string
		want   bool
	}{
		{"exact", "cat", "cat", true},
		{"case insensitive", "Cat", "cat", true},
		{"whitespace trimmed", "  dog ", "Dog", true},
		{"gerund guess", "cycling", "cycle", true},
		{"doubled consonant", "running", "run", true},
		{"reversed forms", "run", "running", true},
		{"plural", "cats", "cat", true},
		{"answer plural", "cat", "cats", true},
		{"past tense", "jumped", "jump", true},
		{"unrelated", "cat", "dog", false},
		{"short word exact only", "is", "ism", false},
		{"short answer exact only", "ism", "is", false},
		{"empty guess", "", "cat", false},
		{"whitespace only", "   ", "cat", false},
		{"substring without suffix", "cast", "cat", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(tc.guess, tc.answer); got != tc.want {
				t.Fatalf("Matches(%q, %q) = %v, want %v", tc.guess, tc.answer, got, tc.want)
			}
		})
	}
}

func TestMatchesShortBaseGuard(t *testing.T) {
	// Stripping "es" from "ones" leaves a two-letter base, which must not
	// fuzzy-match anything.
	if Matches("ones", "on") {
		t.Fatalf("expected short base to be rejected")
	}
}
