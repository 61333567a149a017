// Package errs provides the structured error type used throughout
// NumFu: lexing, parsing, module resolution, and evaluation all raise
// *NumFuError values carrying a source span and a named Kind, matching
// the error-kind table in spec.md §7.
package errs

import (
	"fmt"
	"strings"

	"github.com/rphle/numfu/internal/token"
)

// Kind names the category of an error, as observed from NumFu user
// code (spec §7). A user-supplied tag via error(msg, "CustomTag") is
// also a Kind, just not one of these predeclared constants.
type Kind string

const (
	SyntaxError    Kind = "SyntaxError"
	NameError      Kind = "NameError"
	TypeError      Kind = "TypeError"
	IndexError     Kind = "IndexError"
	ValueError     Kind = "ValueError"
	AssertionError Kind = "AssertionError"
	RecursionError Kind = "RecursionError"
	ImportError    Kind = "ImportError"
	RuntimeError   Kind = "RuntimeError"
)

// Sentinel errors, one per predeclared Kind, for errors.Is(err,
// errs.ErrType)-style matching against the category of a
// NumFuError without caring about its message or position.
var (
	ErrSyntax    = &NumFuError{Kind: SyntaxError}
	ErrName      = &NumFuError{Kind: NameError}
	ErrType      = &NumFuError{Kind: TypeError}
	ErrIndex     = &NumFuError{Kind: IndexError}
	ErrValue     = &NumFuError{Kind: ValueError}
	ErrAssertion = &NumFuError{Kind: AssertionError}
	ErrRecursion = &NumFuError{Kind: RecursionError}
	ErrImport    = &NumFuError{Kind: ImportError}
	ErrRuntime   = &NumFuError{Kind: RuntimeError}
)

// NumFuError is the single error type raised by every NumFu component.
type NumFuError struct {
	Kind    Kind
	Message string
	Hints   []string
	Pos     token.Position
}

// New builds a NumFuError with the given kind, message and position.
func New(kind Kind, pos token.Position, format string, args ...any) *NumFuError {
	return &NumFuError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func (e *NumFuError) Error() string {
	return e.String()
}

func (e *NumFuError) String() string {
	var sb strings.Builder
	if e.Pos.File != "" || e.Pos.Line > 0 {
		sb.WriteString(e.Pos.String())
		sb.WriteString(": ")
	}
	sb.WriteString(string(e.Kind))
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	return sb.String()
}

// Is implements the errors.Is(err, target) contract: a NumFuError
// matches a sentinel (ErrSyntax, ErrType, ...) of the same Kind
// regardless of message, position, or hints.
func (e *NumFuError) Is(target error) bool {
	t, ok := target.(*NumFuError)
	return ok && t.Message == "" && t.Kind == e.Kind
}

// Format implements fmt.Formatter so a NumFuError prints sensibly
// under both %v (same as Error()) and %+v (message plus any hints and
// the source position, without requiring the source text
// PrettyString needs).
func (e *NumFuError) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('+') {
			fmt.Fprint(f, e.String())
			for _, h := range e.Hints {
				fmt.Fprintf(f, "\n  hint: %s", h)
			}
			return
		}
		fmt.Fprint(f, e.String())
	default:
		fmt.Fprint(f, e.String())
	}
}

// WithHint returns e with an additional hint appended, for chaining at
// the raise site.
func (e *NumFuError) WithHint(hint string) *NumFuError {
	e.Hints = append(e.Hints, hint)
	return e
}

// PrettyString renders the error together with the offending source
// line and a caret pointing at the column, for CLI/REPL display.
func (e *NumFuError) PrettyString(source string) string {
	var sb strings.Builder
	sb.WriteString(e.String())
	sb.WriteString("\n")

	if e.Pos.Line <= 0 {
		return sb.String()
	}
	lines := strings.Split(source, "\n")
	if e.Pos.Line > len(lines) {
		return sb.String()
	}
	line := lines[e.Pos.Line-1]
	sb.WriteString("    ")
	sb.WriteString(line)
	sb.WriteString("\n")
	if e.Pos.Column > 0 {
		pad := e.Pos.Column - 1
		if pad < 0 {
			pad = 0
		}
		width := e.Pos.Width
		if width < 1 {
			width = 1
		}
		sb.WriteString("    ")
		sb.WriteString(strings.Repeat(" ", pad))
		sb.WriteString(strings.Repeat("^", width))
		sb.WriteString("\n")
	}
	for _, h := range e.Hints {
		sb.WriteString("  hint: ")
		sb.WriteString(h)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ExitCode maps an error Kind to the process exit status described in
// spec.md §6: syntax/import errors are 2, everything else fatal at
// runtime is 1.
func (e *NumFuError) ExitCode() int {
	switch e.Kind {
	case SyntaxError, ImportError:
		return 2
	default:
		return 1
	}
}
