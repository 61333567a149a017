// Package replio implements numfu's interactive REPL: line editing,
// history, and tab completion via peterh/liner, in the style of the
// teacher's pkg/parsley/repl package, adapted to numfu's Session and
// trampolined evaluator.
package replio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	numfu "github.com/rphle/numfu"
	"github.com/rphle/numfu/internal/builtins"
	"github.com/rphle/numfu/internal/errs"
)

const prompt = "nf> "
const continuationPrompt = ".. "

const logo = `
█▄░█ █░█ █▀▄▀█ █▀▀ █░█
█░▀█ █▄█ █░▀░█ █▀░ █▄█ `

var completionWords = []string{
	"let", "in", "if", "then", "else", "import", "export", "del", "from", "as",
	"length", "slice", "reverse", "sort", "type", "assert", "error", "print", "input",
	"map", "filter", "reduce", "zip", "id", "flip", "range", "repeat",
	"all", "any", "sum", "product", "contains", "first", "last", "concat",
	"true", "false", "nan", "inf",
}

// Start runs the REPL loop against a fresh Session until EOF or an
// explicit exit command, printing results and errors to out.
func Start(out io.Writer, version string, opts numfu.Options) error {
	if opts.IO.Logger == nil {
		opts.IO.Logger = &replLogger{out: out}
	}
	session, err := numfu.NewSession(opts)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		return filterCompletions(partial)
	})

	historyFile := filepath.Join(os.TempDir(), ".numfu_history")
	if f, herr := os.Open(historyFile); herr == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, herr := os.Create(historyFile); herr == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintf(out, "%s\n", logo)
	fmt.Fprintln(out, "numfu", version)
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit, Tab to complete")
	fmt.Fprintln(out)

	var buf strings.Builder
	for {
		p := prompt
		if buf.Len() > 0 {
			p = continuationPrompt
		}
		input, perr := line.Prompt(p)
		if perr != nil {
			if perr == liner.ErrPromptAborted {
				buf.Reset()
				fmt.Fprintln(out, "^C")
				continue
			}
			if perr == io.EOF {
				fmt.Fprintln(out)
				return nil
			}
			fmt.Fprintf(out, "error reading input: %v\n", perr)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if buf.Len() == 0 && (trimmed == "exit" || trimmed == "quit") {
			return nil
		}
		if buf.Len() == 0 && trimmed == "" {
			continue
		}

		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(input)

		full := buf.String()
		if needsMoreInput(full) {
			continue
		}
		if trimmed != "" {
			line.AppendHistory(full)
		}

		v, evalErr := session.Run(full)
		if evalErr != nil {
			printErr(out, full, evalErr)
		} else if v != nil {
			fmt.Fprintln(out, v.String())
		}
		buf.Reset()
	}
}

func printErr(out io.Writer, source string, err *errs.NumFuError) {
	fmt.Fprintln(out, err.PrettyString(source))
}

// replLogger is the REPL's builtins.Logger: print() output gets a
// distinct "» " prefix so it reads apart from the bare value echoed
// after each evaluated expression, the use case SPEC_FULL.md §A.2
// calls out for a host-installed Logger.
type replLogger struct {
	out io.Writer
}

func (l *replLogger) Log(values ...interface{}) {
	fmt.Fprint(l.out, "» ")
	for i, v := range values {
		if i > 0 {
			fmt.Fprint(l.out, " ")
		}
		fmt.Fprint(l.out, v)
	}
}

func (l *replLogger) LogLine(values ...interface{}) {
	l.Log(values...)
	fmt.Fprintln(l.out)
}

var _ builtins.Logger = (*replLogger)(nil)

func filterCompletions(partial string) []string {
	var out []string
	for _, w := range completionWords {
		if strings.HasPrefix(w, partial) {
			out = append(out, w)
		}
	}
	return out
}

// needsMoreInput reports whether input has unbalanced braces,
// brackets, or parens, so the REPL should keep buffering lines rather
// than try to parse an incomplete expression.
func needsMoreInput(input string) bool {
	depth := 0
	inString := false
	escapeNext := false
	for i := 0; i < len(input); i++ {
		ch := input[i]
		if escapeNext {
			escapeNext = false
			continue
		}
		if ch == '\\' {
			escapeNext = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch ch {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		}
	}
	return depth > 0
}
