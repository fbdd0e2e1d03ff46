package roster

import "testing"

func testIndex() *Index {
	return NewIndex(map[string]string{
		"Zhang San": "zhangsan123",
		"Li Si":     "lisi99",
		"Wang Wu":   "wangwu_chess",
		"A Chen":    "achen1",
	})
}

func mustResolve(t *testing.T, ix *Index, token string, wantUser string, wantTier Tier) {
	t.Helper()
	m, ok := ix.Resolve(token)
	if !ok {
		t.Fatalf("Resolve(%q): no match, want %s via %s", token, wantUser, wantTier)
	}
	if m.Username != wantUser {
		t.Fatalf("Resolve(%q) = %q, want %q", token, m.Username, wantUser)
	}
	if m.Tier != wantTier {
		t.Fatalf("Resolve(%q) tier = %s, want %s", token, m.Tier, wantTier)
	}
}

func TestResolveExact(t *testing.T) {
	mustResolve(t, testIndex(), "Zhang San", "zhangsan123", TierExact)
}

func TestResolveCaseInsensitive(t *testing.T) {
	mustResolve(t, testIndex(), "zhang san", "zhangsan123", TierCaseInsensitive)
}

func TestResolvePartialToken(t *testing.T) {
	// a fragment of the roster name resolves before any fuzzier rule
	mustResolve(t, testIndex(), "Zhang", "zhangsan123", TierTokenInName)
}

func TestResolveNameInsideToken(t *testing.T) {
	mustResolve(t, testIndex(), "Coach Li Si", "lisi99", TierNameInToken)
}

func TestResolveFirstWord(t *testing.T) {
	mustResolve(t, testIndex(), "Wang Xiaoming", "wangwu_chess", TierFirstWord)
}

func TestResolveSingleLetterFirstWordDoesNotMatch(t *testing.T) {
	// a one-letter first word must not pull in everyone sharing the initial
	if m, ok := testIndex().Resolve("A Wang2"); ok {
		t.Fatalf("Resolve(\"A Wang2\") = %+v, want no match", m)
	}
}

func TestResolveWordOverlap(t *testing.T) {
	mustResolve(t, testIndex(), "Si Li", "lisi99", TierWordOverlap)
}

func TestResolveFuzzyPunctuation(t *testing.T) {
	mustResolve(t, testIndex(), "Li.Si", "lisi99", TierFuzzy)
}

func TestResolveFuzzyLengthGuard(t *testing.T) {
	// cleaned containment, but far longer than the roster name
	if m, ok := testIndex().Resolve("LiSi2024extra"); ok {
		t.Fatalf("Resolve long fragment = %+v, want no match", m)
	}
}

func TestResolveEmptyTokenAndRoster(t *testing.T) {
	if _, ok := testIndex().Resolve("   "); ok {
		t.Fatalf("blank token resolved")
	}
	empty := NewIndex(nil)
	if _, ok := empty.Resolve("Zhang San"); ok {
		t.Fatalf("empty roster resolved")
	}
}

func TestResolveNoMatch(t *testing.T) {
	if m, ok := testIndex().Resolve("Unknown Person"); ok {
		t.Fatalf("Resolve unknown = %+v, want no match", m)
	}
}

func TestResolveUsername(t *testing.T) {
	u, ok := testIndex().ResolveUsername("li si")
	if !ok || u != "lisi99" {
		t.Fatalf("ResolveUsername = %q/%v, want lisi99/true", u, ok)
	}
}

func TestIndexSanitizesUsernames(t *testing.T) {
	ix := NewIndex(map[string]string{
		"Zhang San": " zhang san 123 ",
		"Empty":     "   ",
	})
	if ix.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (empty username dropped)", ix.Len())
	}
	u, ok := ix.ResolveUsername("Zhang San")
	if !ok || u != "zhangsan123" {
		t.Fatalf("sanitized username = %q/%v", u, ok)
	}
}
