package pairing

import (
	"regexp"
	"strings"
	"unicode"
)

// Side is one participant of a pairing: the raw token from the pasted text
// and the roster resolution outcome. An unresolved side is an ordinary state
// the caller must handle, not an error.
type Side struct {
	Token    string
	Username string
	Found    bool
}

// Pairing is one scheduled game in input order: left-hand side is white.
type Pairing struct {
	White Side
	Black Side
}

func (p Pairing) Resolved() bool { return p.White.Found && p.Black.Found }

var numberingRe = regexp.MustCompile(`^[\s\x{3000}]*\d+[.、:：)\-–—\s]*`)

// Normalize trims a raw line and removes a leading list marker (numbering
// followed by punctuation or whitespace).
func Normalize(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	return strings.TrimSpace(numberingRe.ReplaceAllString(line, ""))
}

// Separator patterns tried in order; the first match wins. Explicit versus
// markers beat the bare hyphen, which beats the colon forms; the final
// fallback splits on the last whitespace run.
var separatorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(.+?)\s+(?:vs|对战)\s+(.+)$`),
	regexp.MustCompile(`^(.+?)\s+-\s+(.+)$`),
	regexp.MustCompile(`^(.+?)\s+对\s+(.+)$`),
	regexp.MustCompile(`^(.+?)\s*[:：]\s*(.+)$`),
	regexp.MustCompile(`^(.+)\s+(\S+)$`),
}

// Extract splits one normalized, non-empty line into (left, right) tokens.
// A line that does not split, or splits into empty or digit-only sides on
// every pattern, yields ok=false; callers skip such lines silently.
func Extract(line string) (left, right string, ok bool) {
	for _, re := range separatorPatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		l := strings.TrimSpace(m[1])
		r := strings.TrimSpace(m[2])
		if l == "" || r == "" || isDigits(l) || isDigits(r) {
			continue
		}
		return l, r, true
	}
	return "", "", false
}

// ParseText runs the full text → pairings pipeline: normalize each line,
// extract tokens, resolve each token against the roster. Input order is
// preserved; blank and unsplittable lines are dropped without comment.
func ParseText(text string, resolve func(token string) (string, bool)) []Pairing {
	var out []Pairing
	for _, raw := range strings.Split(text, "\n") {
		line := Normalize(raw)
		if line == "" {
			continue
		}
		left, right, ok := Extract(line)
		if !ok {
			continue
		}
		out = append(out, Pairing{
			White: makeSide(left, resolve),
			Black: makeSide(right, resolve),
		})
	}
	return out
}

func makeSide(token string, resolve func(string) (string, bool)) Side {
	s := Side{Token: token}
	if resolve == nil {
		return s
	}
	if username, ok := resolve(token); ok {
		s.Username = username
		s.Found = true
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
