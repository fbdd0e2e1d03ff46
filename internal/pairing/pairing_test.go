package pairing

import "testing"

func noResolve(string) (string, bool) { return "", false }

func TestExtractVersus(t *testing.T) {
	cases := []struct {
		line        string
		left, right string
	}{
		{"Zhang San vs Li Si", "Zhang San", "Li Si"},
		{"alice VS bob", "alice", "bob"},
		{"Zhang San 对战 Li Si", "Zhang San", "Li Si"},
		{"Zhang San 对 Li Si", "Zhang San", "Li Si"},
		{"Carol - Dave", "Carol", "Dave"},
		{"Eve：Frank", "Eve", "Frank"},
		{"Grace: Heidi", "Grace", "Heidi"},
		{"Li:lisi99", "Li", "lisi99"},
		{"Alice Bob", "Alice", "Bob"},
	}
	for _, c := range cases {
		l, r, ok := Extract(c.line)
		if !ok {
			t.Fatalf("Extract(%q): no split", c.line)
		}
		if l != c.left || r != c.right {
			t.Fatalf("Extract(%q) = (%q, %q), want (%q, %q)", c.line, l, r, c.left, c.right)
		}
	}
}

func TestExtractRejectsDigitSides(t *testing.T) {
	if l, r, ok := Extract("vs 34"); ok {
		t.Fatalf("digit side accepted: (%q, %q)", l, r)
	}
}

func TestNormalizeStripsNumbering(t *testing.T) {
	cases := map[string]string{
		"1. Zhang San vs Li Si":   "Zhang San vs Li Si",
		"  2、Carol - Dave":       "Carol - Dave",
		"　3) Eve：Frank":     "Eve：Frank",
		"10 - Grace vs Heidi":     "Grace vs Heidi",
		"   ":                     "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseTextOrderAndResolution(t *testing.T) {
	roster := map[string]string{
		"Zhang San": "zhangsan123",
		"Li Si":     "lisi99",
		"Carol":     "carol_c",
	}
	resolve := func(token string) (string, bool) {
		u, ok := roster[token]
		return u, ok
	}

	text := "1. Zhang San vs Li Si\n\n2. Carol vs Mystery\nnot splittable_ here ok\n"
	got := ParseText(text, resolve)
	if len(got) != 3 {
		t.Fatalf("pairings = %d, want 3: %+v", len(got), got)
	}

	first := got[0]
	if !first.Resolved() {
		t.Fatalf("first pairing unresolved: %+v", first)
	}
	if first.White.Username != "zhangsan123" || first.Black.Username != "lisi99" {
		t.Fatalf("first pairing usernames: %+v", first)
	}

	second := got[1]
	if second.Resolved() {
		t.Fatalf("second pairing should be partial: %+v", second)
	}
	if !second.White.Found || second.Black.Found {
		t.Fatalf("second pairing sides: %+v", second)
	}
	if second.Black.Token != "Mystery" {
		t.Fatalf("unresolved token lost: %q", second.Black.Token)
	}
}

func TestParseTextSkipsBlankAndUnsplittable(t *testing.T) {
	got := ParseText("\n   \n12\n", noResolve)
	if len(got) != 0 {
		t.Fatalf("expected no pairings, got %+v", got)
	}
}

func TestParseTextNilResolve(t *testing.T) {
	got := ParseText("Alice vs Bob", nil)
	if len(got) != 1 || got[0].White.Found || got[0].Black.Found {
		t.Fatalf("nil resolver: %+v", got)
	}
}
