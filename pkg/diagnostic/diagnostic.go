// Package diagnostic defines validation findings and the ordered collector
// that aggregates them for one validation pass.
package diagnostic

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/helmwave/helmwave-lint/pkg/constants"
)

// Severity of a diagnostic. Values follow the LSP numbering.
type Severity int

const (
	SeverityError   Severity = 1
	SeverityWarning Severity = 2
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalJSON renders the severity by name
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the severity name
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch strings.ToLower(name) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return fmt.Errorf("unknown severity %q", name)
	}
	return nil
}

// Position is a 0-based line and byte column
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open span between two positions
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewRange builds a range from 0-based coordinates
func NewRange(startLine, startCol, endLine, endCol int) Range {
	return Range{
		Start: Position{Line: startLine, Character: startCol},
		End:   Position{Line: endLine, Character: endCol},
	}
}

// Diagnostic is a single validation finding anchored in the source text
type Diagnostic struct {
	Range    Range    `json:"range"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Source   string   `json:"source"`
}

// New creates a diagnostic tagged with the helmwave source
func New(r Range, message string, severity Severity) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  message,
		Severity: severity,
		Source:   constants.DiagnosticSource,
	}
}

// Error creates an error diagnostic
func Error(r Range, message string) Diagnostic {
	return New(r, message, SeverityError)
}

// Warning creates a warning diagnostic
func Warning(r Range, message string) Diagnostic {
	return New(r, message, SeverityWarning)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Range.Start.Line+1, d.Range.Start.Character+1, d.Severity, d.Message)
}
