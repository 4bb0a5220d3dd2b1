package lox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdReporterSyntaxSetsFlagAndWrites(t *testing.T) {
	var buf strings.Builder
	r := NewStdReporter(&buf)

	assert.False(t, r.HadSyntaxError())
	r.ReportSyntax(3, "at '('", "Expect expression.")
	assert.True(t, r.HadSyntaxError())
	assert.Contains(t, buf.String(), "line 3")
	assert.Contains(t, buf.String(), "Expect expression.")
}

func TestStdReporterResolveAtEndOmitsLexeme(t *testing.T) {
	var buf strings.Builder
	r := NewStdReporter(&buf)

	r.ReportResolve(Token{Kind: EOF, Line: 9}, "Can't return from top-level code.")
	assert.True(t, r.HadResolveError())
	assert.Contains(t, buf.String(), "at end")
}

func TestStdReporterRuntimeSetsFlagIndependently(t *testing.T) {
	var buf strings.Builder
	r := NewStdReporter(&buf)
	r.ReportSyntax(1, "", "boom")

	r.ReportRuntime(&RuntimeErr{Token: Token{Line: 5}, Message: "Undefined variable 'x'."})
	assert.True(t, r.HadRuntimeError())
	assert.True(t, r.HadSyntaxError())
}

func TestStdReporterResetOnlyClearsSyntaxFlag(t *testing.T) {
	var buf strings.Builder
	r := NewStdReporter(&buf)
	r.ReportSyntax(1, "", "boom")
	r.ReportRuntime(&RuntimeErr{Token: Token{Line: 1}, Message: "boom"})

	r.Reset()
	assert.False(t, r.HadSyntaxError())
	assert.True(t, r.HadRuntimeError())
}
