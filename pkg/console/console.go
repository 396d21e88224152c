package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/helmwave/helmwave-lint/pkg/diagnostic"
)

// SourcePosition is a 1-based location in a source file
type SourcePosition struct {
	File   string
	Line   int
	Column int
}

// SourceError is a finding rendered against the text it was found in.
// EndColumn, when past Column on the same line, widens the underline.
type SourceError struct {
	Position  SourcePosition
	EndColumn int
	Type      string // "error", "warning", "info"
	Message   string
	Context   []string // source lines centered on Position.Line
	Hint      string
}

// contextRadius is the number of lines shown on each side of the finding
const contextRadius = 1

var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	infoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	filePathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BD93F9"))

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	contextLineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F8F8F2"))

	highlightStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#FF5555")).
			Foreground(lipgloss.Color("#282A36"))

	hintStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#50FA7B"))
)

func isTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// applyStyle styles text only when stdout is a terminal
func applyStyle(style lipgloss.Style, text string) string {
	if isTTY() {
		return style.Render(text)
	}
	return text
}

// ToRelativePath converts an absolute path to a path relative to the working directory
func ToRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}

	wd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(wd, path)
	if err != nil {
		return path
	}

	return relPath
}

// FromDiagnostic builds a SourceError for d, taking context from lines
func FromDiagnostic(file string, d diagnostic.Diagnostic, lines []string, hint string) SourceError {
	start, end := d.Range.Start, d.Range.End
	endColumn := 0
	if end.Line == start.Line && end.Character > start.Character {
		endColumn = end.Character + 1
	}

	return SourceError{
		Position: SourcePosition{
			File:   file,
			Line:   start.Line + 1,
			Column: start.Character + 1,
		},
		EndColumn: endColumn,
		Type:      d.Severity.String(),
		Message:   d.Message,
		Context:   ContextLines(lines, start.Line),
		Hint:      hint,
	}
}

// ContextLines returns the lines around the 0-based line, centered on it.
// Lines before the start of the file are padded with empty strings so the
// finding stays in the middle.
func ContextLines(lines []string, line int) []string {
	if line < 0 || line >= len(lines) {
		return nil
	}
	context := make([]string, 0, 2*contextRadius+1)
	for i := line - contextRadius; i <= line+contextRadius; i++ {
		switch {
		case i < 0:
			context = append(context, "")
		case i < len(lines):
			context = append(context, lines[i])
		}
	}
	return context
}

// FormatError renders a SourceError the way compilers do: an IDE-parseable
// header, the surrounding source and an underline below the finding
func FormatError(err SourceError) string {
	var output strings.Builder

	var typeStyle lipgloss.Style
	var prefix string
	switch err.Type {
	case "warning":
		typeStyle = warningStyle
		prefix = "warning"
	case "info":
		typeStyle = infoStyle
		prefix = "info"
	default:
		typeStyle = errorStyle
		prefix = "error"
	}

	// file:line:column: type: message
	if err.Position.File != "" {
		location := fmt.Sprintf("%s:%d:%d:",
			ToRelativePath(err.Position.File),
			err.Position.Line,
			err.Position.Column)
		output.WriteString(applyStyle(filePathStyle, location))
		output.WriteString(" ")
	}

	output.WriteString(applyStyle(typeStyle, prefix+":"))
	output.WriteString(" ")
	output.WriteString(err.Message)
	output.WriteString("\n")

	if len(err.Context) > 0 && err.Position.Line > 0 {
		output.WriteString(renderContext(err, typeStyle))
	}

	if err.Hint != "" {
		output.WriteString(applyStyle(hintStyle, "hint: "))
		output.WriteString(err.Hint)
		output.WriteString("\n")
	}

	return output.String()
}

// renderContext renders the context lines with line numbers, highlighting the
// finding's columns and underlining them
func renderContext(err SourceError, markerStyle lipgloss.Style) string {
	var output strings.Builder

	maxLineNum := err.Position.Line + len(err.Context)/2
	lineNumWidth := len(fmt.Sprintf("%d", maxLineNum))

	for i, line := range err.Context {
		lineNum := err.Position.Line - len(err.Context)/2 + i
		if lineNum < 1 {
			continue
		}

		output.WriteString(applyStyle(lineNumberStyle, fmt.Sprintf("%*d", lineNumWidth, lineNum)))
		output.WriteString(" | ")

		if lineNum != err.Position.Line {
			output.WriteString(applyStyle(contextLineStyle, line))
			output.WriteString("\n")
			continue
		}

		start, end := highlightBounds(err, line)
		if start >= end {
			output.WriteString(applyStyle(highlightStyle, line))
			output.WriteString("\n")
			continue
		}

		output.WriteString(applyStyle(contextLineStyle, line[:start]))
		output.WriteString(applyStyle(highlightStyle, line[start:end]))
		output.WriteString(applyStyle(contextLineStyle, line[end:]))
		output.WriteString("\n")

		output.WriteString(strings.Repeat(" ", lineNumWidth+3+start))
		output.WriteString(applyStyle(markerStyle, strings.Repeat("^", end-start)))
		output.WriteString("\n")
	}

	return output.String()
}

// highlightBounds converts the 1-based column span of err to byte offsets in line
func highlightBounds(err SourceError, line string) (int, int) {
	if err.Position.Column <= 0 || err.Position.Column > len(line) {
		return 0, 0
	}
	start := err.Position.Column - 1
	end := start + 1
	if err.EndColumn > err.Position.Column {
		end = min(err.EndColumn-1, len(line))
	}
	return start, end
}

// FormatSuccessMessage formats a success message with styling
func FormatSuccessMessage(message string) string {
	successStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#50FA7B"))

	return applyStyle(successStyle, "✓ ") + message
}

// FormatInfoMessage formats an informational message
func FormatInfoMessage(message string) string {
	return applyStyle(infoStyle, "ℹ ") + message
}

// FormatWarningMessage formats a warning message
func FormatWarningMessage(message string) string {
	return applyStyle(warningStyle, "⚠ ") + message
}

// FormatErrorMessage formats a simple error message (for stderr output)
func FormatErrorMessage(message string) string {
	return applyStyle(errorStyle, "✗ ") + message
}

// FormatVerboseMessage formats verbose debugging output
func FormatVerboseMessage(message string) string {
	verboseStyle := lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color("#6272A4"))

	return applyStyle(verboseStyle, "🔍 ") + message
}

// FormatLocationMessage formats a file or directory location message
func FormatLocationMessage(message string) string {
	locationStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFB86C"))

	return applyStyle(locationStyle, "📁 ") + message
}

// FormatCountMessage formats a summary count
func FormatCountMessage(message string) string {
	countStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#8BE9FD"))

	return applyStyle(countStyle, "📊 ") + message
}
