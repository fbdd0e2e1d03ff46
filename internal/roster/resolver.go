package roster

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tier identifies which matching rule produced a resolution. Lower tiers are
// stricter; the resolver stops at the first tier that matches.
type Tier int

const (
	TierExact Tier = iota + 1
	TierCaseInsensitive
	TierTokenInName
	TierNameInToken
	TierFirstWord
	TierWordOverlap
	TierFuzzy
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierCaseInsensitive:
		return "case_insensitive"
	case TierTokenInName:
		return "token_in_name"
	case TierNameInToken:
		return "name_in_token"
	case TierFirstWord:
		return "first_word"
	case TierWordOverlap:
		return "word_overlap"
	case TierFuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// Match is a successful resolution: the roster entry that matched and the
// tier that produced it.
type Match struct {
	Name     string
	Username string
	Tier     Tier
}

// Resolve maps a free-text token to a roster username. Not finding a match
// is an ordinary outcome, reported via the bool, never an error.
func (ix *Index) Resolve(token string) (Match, bool) {
	token = strings.TrimSpace(token)
	if token == "" || len(ix.entries) == 0 {
		return Match{}, false
	}
	lower := strings.ToLower(token)

	// Tier 1: exact.
	for _, e := range ix.entries {
		if e.Name == token {
			return Match{Name: e.Name, Username: e.Username, Tier: TierExact}, true
		}
	}

	// Tier 2: case-insensitive exact.
	for _, e := range ix.entries {
		if strings.ToLower(e.Name) == lower {
			return Match{Name: e.Name, Username: e.Username, Tier: TierCaseInsensitive}, true
		}
	}

	// Tier 3: token contained in roster name.
	for _, e := range ix.entries {
		if strings.Contains(strings.ToLower(e.Name), lower) {
			return Match{Name: e.Name, Username: e.Username, Tier: TierTokenInName}, true
		}
	}

	// Tier 4: roster name contained in token.
	for _, e := range ix.entries {
		if strings.Contains(lower, strings.ToLower(e.Name)) {
			return Match{Name: e.Name, Username: e.Username, Tier: TierNameInToken}, true
		}
	}

	// Tier 5: first word equality. The length guard keeps single-letter
	// abbreviations from matching everyone sharing an initial.
	first := firstWord(lower)
	if utf8.RuneCountInString(first) > 1 {
		for _, e := range ix.entries {
			if firstWord(strings.ToLower(e.Name)) == first {
				return Match{Name: e.Name, Username: e.Username, Tier: TierFirstWord}, true
			}
		}
	}

	// Tier 6: any word of the token equals any word of the name.
	tokenWords := significantWords(lower)
	if len(tokenWords) > 0 {
		for _, e := range ix.entries {
			for _, nw := range significantWords(strings.ToLower(e.Name)) {
				if containsWord(tokenWords, nw) {
					return Match{Name: e.Name, Username: e.Username, Tier: TierWordOverlap}, true
				}
			}
		}
	}

	// Tier 7: punctuation-stripped comparison. Containment only counts when
	// the lengths are close, so short fragments cannot fuzz-match long names.
	clean := stripNonAlnum(lower)
	if clean != "" {
		for _, e := range ix.entries {
			cleanName := stripNonAlnum(strings.ToLower(e.Name))
			if cleanName == "" {
				continue
			}
			if clean == cleanName {
				return Match{Name: e.Name, Username: e.Username, Tier: TierFuzzy}, true
			}
			if strings.Contains(clean, cleanName) || strings.Contains(cleanName, clean) {
				if runeLenDelta(clean, cleanName) <= 2 {
					return Match{Name: e.Name, Username: e.Username, Tier: TierFuzzy}, true
				}
			}
		}
	}

	return Match{}, false
}

// ResolveUsername is the single-value form used at the pairing boundary.
func (ix *Index) ResolveUsername(token string) (string, bool) {
	m, ok := ix.Resolve(token)
	if !ok {
		return "", false
	}
	return m.Username, true
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[0]
}

// significantWords drops one-rune words, which carry no matching signal.
func significantWords(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		if utf8.RuneCountInString(w) > 1 {
			out = append(out, w)
		}
	}
	return out
}

func containsWord(words []string, w string) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}

func stripNonAlnum(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

func runeLenDelta(a, b string) int {
	d := utf8.RuneCountInString(a) - utf8.RuneCountInString(b)
	if d < 0 {
		return -d
	}
	return d
}
