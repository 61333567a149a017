package builtins

import (
	"fmt"
	"io"
)

// Logger is the ambient output sink print() writes through (SPEC_FULL.md
// §A.2), mirroring the teacher's evaluator.Logger interface rather than
// reaching for a third-party logging framework: the teacher itself logs
// with nothing but fmt.Print, so that is the grounded idiom here too.
type Logger interface {
	Log(values ...interface{})
	LogLine(values ...interface{})
}

// WriterLogger is the default Logger, writing space-joined values to an
// io.Writer the way the teacher's defaultStdoutLogger writes to stdout.
type WriterLogger struct {
	Out io.Writer
}

func (l *WriterLogger) Log(values ...interface{}) {
	for i, v := range values {
		if i > 0 {
			fmt.Fprint(l.Out, " ")
		}
		fmt.Fprint(l.Out, v)
	}
}

func (l *WriterLogger) LogLine(values ...interface{}) {
	l.Log(values...)
	fmt.Fprintln(l.Out)
}
