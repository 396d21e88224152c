// Package quickfix turns diagnostic messages into suggested text edits.
//
// Suggestions are keyed on the diagnostic message text and are never applied
// by the linter itself; they are shown as hints and included in JSON output.
package quickfix

import (
	"strings"

	"github.com/helmwave/helmwave-lint/pkg/constants"
	"github.com/helmwave/helmwave-lint/pkg/diagnostic"
)

// TextEdit replaces Range with NewText. An empty range is an insertion.
type TextEdit struct {
	Range   diagnostic.Range `json:"range"`
	NewText string           `json:"newText"`
}

// Fix is a single suggested edit for one diagnostic
type Fix struct {
	Title     string   `json:"title"`
	Edit      TextEdit `json:"edit"`
	Preferred bool     `json:"preferred,omitempty"`
}

// missingField maps a missing-field message to the field and placeholder value to insert
type missingField struct {
	message string
	field   string
	value   string
}

var missingFields = []missingField{
	{"Release missing required field: name", "name", `"release-name"`},
	{"Release missing required field: chart", "chart", `"chart-name"`},
	{"Release missing required field: namespace", "namespace", `"default"`},
	{"Repository missing required field: url", "url", `"https://charts.helm.sh/stable"`},
	{"Repository missing required field: name", "name", `"repo-name"`},
	{"Registry missing required field: host", "host", `"registry.example.com"`},
}

// Suggest returns a fix for d, if its message is one with a known remedy
func Suggest(d diagnostic.Diagnostic, lines []string) (Fix, bool) {
	if d.Source != constants.DiagnosticSource {
		return Fix{}, false
	}
	message := d.Message

	if strings.Contains(message, "Missing required field: project") {
		return Fix{
			Title:     "Add missing project field",
			Edit:      insertAt(0, "project: \"my-project\"\n"),
			Preferred: true,
		}, true
	}

	for _, m := range missingFields {
		if strings.Contains(message, m.message) {
			return addItemField(d, lines, m.field, m.value), true
		}
	}

	if strings.Contains(message, "must be an array") {
		return replaceValue(d, lines, "Fix array type", "  - # Add array items here")
	}
	if strings.Contains(message, "must be an object") {
		return replaceValue(d, lines, "Fix object type", "  # Add object properties here")
	}

	return Fix{}, false
}

// addItemField inserts field below the first line of the sequence item the
// diagnostic covers, aligned with the item's own fields
func addItemField(d diagnostic.Diagnostic, lines []string, field, value string) Fix {
	line := d.Range.Start.Line
	indent := "  "
	if line >= 0 && line < len(lines) {
		indent = strings.Repeat(" ", fieldColumn(lines[line]))
	}
	return Fix{
		Title:     "Add missing " + field + " field",
		Edit:      insertAt(line+1, indent+field+": "+value+"\n"),
		Preferred: true,
	}
}

// replaceValue rewrites the diagnostic's line so the key opens an empty block.
// The line must declare the key the message names; sequence entry lines are
// left alone.
func replaceValue(d diagnostic.Diagnostic, lines []string, title, placeholder string) (Fix, bool) {
	line := d.Range.Start.Line
	if line < 0 || line >= len(lines) {
		return Fix{}, false
	}
	text := lines[line]
	trimmed := strings.TrimLeft(text, " \t")
	colon := strings.Index(text, ":")
	if colon == -1 || strings.HasPrefix(trimmed, "-") {
		return Fix{}, false
	}
	key := strings.Trim(strings.TrimSpace(text[:colon]), `"'`)
	if key == "" || !strings.Contains(d.Message, key) {
		return Fix{}, false
	}
	indent := text[:len(text)-len(trimmed)]
	return Fix{
		Title: title,
		Edit: TextEdit{
			Range:   diagnostic.NewRange(line, 0, line, len(text)),
			NewText: text[:colon+1] + "\n" + indent + placeholder,
		},
	}, true
}

func insertAt(line int, text string) TextEdit {
	return TextEdit{Range: diagnostic.NewRange(line, 0, line, 0), NewText: text}
}

// fieldColumn returns the column of the first mapping key on line, past any "- " marker
func fieldColumn(line string) int {
	column := len(line) - len(strings.TrimLeft(line, " \t"))
	if strings.HasPrefix(line[column:], "- ") {
		column += 2
		for column < len(line) && line[column] == ' ' {
			column++
		}
	}
	return column
}
