package replio

import "testing"

func TestNeedsMoreInputTracksBracketBalance(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"1 + 2", false},
		{"{x -> x", true},
		{"{x -> x}", false},
		{"[1, 2", true},
		{"[1, 2]", false},
		{`"{ not real"`, false},
		{`"unterminated {`, false},
	}
	for _, c := range cases {
		if got := needsMoreInput(c.in); got != c.want {
			t.Errorf("needsMoreInput(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFilterCompletionsPrefixMatch(t *testing.T) {
	got := filterCompletions("fil")
	found := false
	for _, w := range got {
		if w == "filter" {
			found = true
		}
		if len(w) < len("fil") || w[:3] != "fil" {
			t.Errorf("completion %q does not share prefix %q", w, "fil")
		}
	}
	if !found {
		t.Errorf("expected \"filter\" among completions for \"fil\", got %v", got)
	}
}
