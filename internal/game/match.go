package game

import "strings"

// Suffixes tried when relaxing a guess to its base form, in checklist order.
var guessSuffixes = []string{"ing", "ed", "s", "es", "er", "est"}

// Matches reports whether a submitted guess counts as the target word.
// Matching is case- and whitespace-insensitive and accepts morphological
// variants ("cycling" for "cycle") by stripping a single common suffix.
// Words shorter than three characters only match exactly, so short answers
// never collide through the fuzzy rules. The heuristic is intentionally
// permissive and can over-match on short unrelated words sharing a suffix.
func Matches(guess, answer string) bool {
	g := strings.ToLower(strings.TrimSpace(guess))
	a := strings.ToLower(strings.TrimSpace(answer))
	if g == a {
		return true
	}
	if len(g) < 3 || len(a) < 3 {
		return false
	}
	if strings.Contains(g, a) || strings.Contains(a, g) {
		gb := stripGuessSuffix(g)
		ab := stripGuessSuffix(a)
		if g == ab || a == gb {
			return true
		}
		if len(gb) >= 3 && stemsMatch(gb, ab) {
			return true
		}
	}
	for _, suffix := range guessSuffixes {
		if strings.HasSuffix(g, suffix) {
			base := strings.TrimSuffix(g, suffix)
			if len(base) >= 3 && (base == a || stemsMatch(base, a)) {
				return true
			}
		}
		if strings.HasSuffix(a, suffix) {
			base := strings.TrimSuffix(a, suffix)
			if len(base) >= 3 && (base == g || stemsMatch(g, base)) {
				return true
			}
		}
	}
	return false
}

func stripGuessSuffix(word string) string {
	for _, suffix := range guessSuffixes {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix) {
			return strings.TrimSuffix(word, suffix)
		}
	}
	return word
}

// stemsMatch accepts two base forms when one is a prefix of the other,
// which covers doubled consonants ("runn" vs "run") and dropped final
// vowels ("cycl" vs "cycle") without a dictionary.
func stemsMatch(x, y string) bool {
	if x == y {
		return true
	}
	shorter, longer := x, y
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	return len(shorter) >= 3 && strings.HasPrefix(longer, shorter)
}
