package parser

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// Document is a parsed helmwave configuration: top-level key names mapped to
// arbitrary decoded values. It carries no source positions.
type Document map[string]any

// SyntaxError describes a document that could not be turned into a Document.
// Line and Column are 0-based.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
	// InvalidRoot is set when the text parsed but its root is not a mapping
	InvalidRoot bool
}

func (e *SyntaxError) Error() string {
	if e.InvalidRoot {
		return e.Message
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line+1, e.Column+1, e.Message)
}

// ParseResult is the outcome of parsing one document snapshot
type ParseResult struct {
	Document    Document
	Lines       []string
	SyntaxError *SyntaxError
}

// Parse decodes text and splits it into lines. Exactly one of Document and
// SyntaxError is set on the result.
func Parse(text string) ParseResult {
	result := ParseResult{Lines: SplitLines(text)}

	var root any
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		line, column, message := ExtractYAMLError(err)
		result.SyntaxError = &SyntaxError{
			Line:    max(line-1, 0),
			Column:  max(column-1, 0),
			Message: message,
		}
		return result
	}

	doc, ok := toDocument(root)
	if !ok {
		result.SyntaxError = &SyntaxError{Message: "Invalid YAML document", InvalidRoot: true}
		return result
	}

	result.Document = doc
	return result
}

func toDocument(root any) (Document, bool) {
	switch m := root.(type) {
	case map[string]any:
		return Document(m), true
	case map[any]any:
		doc := make(Document, len(m))
		for k, v := range m {
			doc[fmt.Sprint(k)] = v
		}
		return doc, true
	default:
		return nil, false
	}
}
