// Package validator checks parsed helmwave documents against the fixed
// schema and anchors every finding in the original source text.
//
// The parsed document carries no positions. Each rule reads values from the
// document and independently scans the raw lines (via the parser package's
// position index) to find where a finding belongs.
package validator

import (
	"github.com/helmwave/helmwave-lint/pkg/diagnostic"
	"github.com/helmwave/helmwave-lint/pkg/parser"
)

// Rule is one independent check. Rules never panic or fail; they report
// zero or more diagnostics.
type Rule func(doc parser.Document, lines []string) []diagnostic.Diagnostic

// Rules returns the checks in the order their diagnostics are reported
func Rules() []Rule {
	return []Rule{
		CheckProject,
		CheckVersion,
		CheckRepositories,
		CheckReleases,
		CheckRegistries,
		CheckMonitors,
		CheckLifecycle,
		CheckUnknownKeys,
	}
}

// Validate runs every rule over a parsed document
func Validate(doc parser.Document, lines []string) []diagnostic.Diagnostic {
	var collector diagnostic.Collector
	for _, rule := range Rules() {
		collector.Add(rule(doc, lines)...)
	}
	return collector.Diagnostics()
}

// ValidateText parses text and validates the result. A syntax error is
// terminal: it is the only diagnostic returned and no rule runs.
func ValidateText(text string) []diagnostic.Diagnostic {
	result := parser.Parse(text)
	if result.SyntaxError != nil {
		return []diagnostic.Diagnostic{SyntaxDiagnostic(result.SyntaxError, result.Lines)}
	}
	return Validate(result.Document, result.Lines)
}

// SyntaxDiagnostic converts a parse failure into an error diagnostic at the
// parser's reported position
func SyntaxDiagnostic(err *parser.SyntaxError, lines []string) diagnostic.Diagnostic {
	if err.InvalidRoot {
		return diagnostic.Error(startOfFile(lines), err.Message)
	}

	line := min(max(err.Line, 0), max(len(lines)-1, 0))
	lineLength := 0
	if line < len(lines) {
		lineLength = len(lines[line])
	}
	column := min(max(err.Column, 0), lineLength)
	end := min(column+10, lineLength)

	return diagnostic.Error(
		diagnostic.NewRange(line, column, line, end),
		"YAML syntax error: "+err.Message,
	)
}
