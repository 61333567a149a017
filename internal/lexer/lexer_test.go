package lexer

import (
	"testing"

	"github.com/rphle/numfu/internal/token"
)

func tokenTypes(src string) []token.Type {
	l := New(src)
	var out []token.Type
	for {
		tok := l.NextToken()
		out = append(out, tok.Type)
		if tok.Type == token.EOF {
			return out
		}
	}
}

func TestArrowAndComposeAreNotSplitFromAssignOrGT(t *testing.T) {
	got := tokenTypes("-> >> |>")
	want := []token.Type{token.ARROW, token.COMPOSE, token.PIPE, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAssertionSugarIsOneToken(t *testing.T) {
	got := tokenTypes("--->")
	if len(got) != 2 || got[0] != token.ASSERT {
		t.Fatalf("expected a single ASSERT token, got %v", got)
	}
}

func TestNumberLiteralWithExponent(t *testing.T) {
	l := New("1.5e-3")
	tok := l.NextToken()
	if tok.Type != token.NUMBER || tok.Literal != "1.5e-3" {
		t.Fatalf("got %v %q, want NUMBER %q", tok.Type, tok.Literal, "1.5e-3")
	}
}

func TestStringEscapeSequences(t *testing.T) {
	l := New(`"a\nb\tc\"d"`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("expected STRING, got %v (%q)", tok.Type, tok.Literal)
	}
	if want := "a\nb\tc\"d"; tok.Literal != want {
		t.Errorf("got %q, want %q", tok.Literal, want)
	}
}

func TestUnterminatedStringIsIllegal(t *testing.T) {
	l := New(`"abc`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL for unterminated string, got %v", tok.Type)
	}
}

func TestUnderscoreAloneIsPlaceholderToken(t *testing.T) {
	l := New("_ foo _bar")
	if tok := l.NextToken(); tok.Type != token.UNDERSCORE {
		t.Fatalf("expected UNDERSCORE, got %v", tok.Type)
	}
	if tok := l.NextToken(); tok.Type != token.IDENT || tok.Literal != "foo" {
		t.Fatalf("expected IDENT foo, got %v %q", tok.Type, tok.Literal)
	}
	if tok := l.NextToken(); tok.Type != token.IDENT || tok.Literal != "_bar" {
		t.Fatalf("expected IDENT _bar, got %v %q", tok.Type, tok.Literal)
	}
}

func TestLineCommentIsSkipped(t *testing.T) {
	got := tokenTypes("1 // comment\n+ 2")
	want := []token.Type{token.NUMBER, token.PLUS, token.NUMBER, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStateRestoreRewindsScanPosition(t *testing.T) {
	l := New("foo bar")
	st := l.State()
	first := l.NextToken()
	if first.Literal != "foo" {
		t.Fatalf("expected foo, got %q", first.Literal)
	}
	l.Restore(st)
	again := l.NextToken()
	if again.Literal != "foo" {
		t.Fatalf("after Restore expected foo again, got %q", again.Literal)
	}
}
