package lox

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter is the explicit error-reporting collaborator threaded
// through the Scanner, Parser, Resolver and Interpreter constructors.
// The teacher's lexer/parser/resolver instead call os.Exit directly
// from deep inside the pipeline (a process-global-errors anti-pattern
// spec.md's Design Notes call out); golox's phases take a Reporter and
// never exit or panic themselves, leaving that decision to the driver.
type Reporter interface {
	// ReportSyntax is called by the Scanner and Parser. where is an
	// optional location qualifier (e.g. "at 'foo'"); pass "" when the
	// message stands alone.
	ReportSyntax(line int, where, message string)
	// ReportResolve is called by the Resolver against the offending
	// token.
	ReportResolve(tok Token, message string)
	// ReportRuntime is called once, by the Interpreter's driver-facing
	// entry point, with the single uncaught runtime error.
	ReportRuntime(err *RuntimeErr)

	HadSyntaxError() bool
	HadResolveError() bool
	HadRuntimeError() bool
	// Reset clears the syntax-error flag between REPL lines; runtime
	// errors are never reset since each REPL line is a fresh eval.
	Reset()
}

// StdReporter is the default Reporter: it writes human-readable
// diagnostics to an io.Writer (ordinarily os.Stderr), colorizing the
// severity tag the way the teacher's own test/compare.go colorizes
// pass/fail with fatih/color.
type StdReporter struct {
	Out io.Writer

	hadSyntax  bool
	hadResolve bool
	hadRuntime bool
}

// NewStdReporter returns a Reporter writing to out.
func NewStdReporter(out io.Writer) *StdReporter {
	return &StdReporter{Out: out}
}

func (r *StdReporter) ReportSyntax(line int, where, message string) {
	tag := color.RedString("Error")
	if where == "" {
		fmt.Fprintf(r.Out, "[line %d] %s: %s\n", line, tag, message)
	} else {
		fmt.Fprintf(r.Out, "[line %d] %s %s: %s\n", line, tag, where, message)
	}
	r.hadSyntax = true
}

func (r *StdReporter) ReportResolve(tok Token, message string) {
	where := "at end"
	if tok.Kind != EOF {
		where = "at '" + tok.Lexeme + "'"
	}
	fmt.Fprintf(r.Out, "[line %d] %s %s: %s\n", tok.Line, color.RedString("Error"), where, message)
	r.hadResolve = true
}

func (r *StdReporter) ReportRuntime(err *RuntimeErr) {
	fmt.Fprintf(r.Out, "%s\n[line %d]\n", err.Message, err.Token.Line)
	r.hadRuntime = true
}

func (r *StdReporter) HadSyntaxError() bool  { return r.hadSyntax }
func (r *StdReporter) HadResolveError() bool { return r.hadResolve }
func (r *StdReporter) HadRuntimeError() bool { return r.hadRuntime }

func (r *StdReporter) Reset() {
	r.hadSyntax = false
}
