package validator

import (
	"github.com/helmwave/helmwave-lint/pkg/diagnostic"
	"github.com/helmwave/helmwave-lint/pkg/parser"
)

// scope is the source region of one mapping (a sequence item or a nested
// block). When the region cannot be found in the text every anchor degrades
// to fallback instead of dropping the diagnostic.
type scope struct {
	lines    []string
	span     parser.Span
	located  bool
	fallback diagnostic.Range
}

// whole covers every line of the scope
func (s scope) whole() diagnostic.Range {
	if !s.located {
		return s.fallback
	}
	return spanRange(s.lines, s.span)
}

func (s scope) field(key string) (parser.Position, bool) {
	if !s.located {
		return parser.Position{}, false
	}
	return parser.LocateKeyInSpan(s.lines, s.span, key)
}

// keyRange covers the key of a field
func (s scope) keyRange(key string) diagnostic.Range {
	if pos, ok := s.field(key); ok {
		return keyRange(pos)
	}
	return s.whole()
}

// valueRange covers the inline value of a field, or its key when the value
// is not inline
func (s scope) valueRange(key string) diagnostic.Range {
	if pos, ok := s.field(key); ok {
		return valueOrKeyRange(pos)
	}
	return s.whole()
}

// restOfLine covers a field's line from the start of its value
func (s scope) restOfLine(key string) diagnostic.Range {
	if pos, ok := s.field(key); ok {
		return diagnostic.NewRange(pos.Line, pos.ValueStart, pos.Line, len(s.lines[pos.Line]))
	}
	return s.whole()
}

// child returns the scope of the block nested under a field
func (s scope) child(key string) scope {
	pos, ok := s.field(key)
	if !ok {
		return scope{lines: s.lines, fallback: s.whole()}
	}
	block, ok := parser.BlockSpan(s.lines, pos)
	return scope{
		lines:    s.lines,
		span:     block,
		located:  ok,
		fallback: valueOrKeyRange(pos),
	}
}

// element covers the index-th entry of the block sequence under a field
func (s scope) element(key string, index int) diagnostic.Range {
	pos, ok := s.field(key)
	if !ok {
		return s.whole()
	}
	items := parser.SequenceItems(s.lines, pos)
	if index < len(items) {
		return spanRange(s.lines, items[index])
	}
	return valueOrKeyRange(pos)
}

// sectionItems returns one scope per entry of the top-level sequence key.
// Entries that cannot be matched to lines (flow style, text drifted from the
// parsed value) fall back to the section's header line or the file start.
func sectionItems(lines []string, key string, count int) []scope {
	fallback := startOfFile(lines)
	var spans []parser.Span
	if header, ok := parser.LocateKey(lines, key); ok {
		fallback = lineRange(lines, header.Line)
		spans = parser.SequenceItems(lines, header)
	}

	scopes := make([]scope, count)
	for i := range scopes {
		scopes[i] = scope{lines: lines, fallback: fallback}
		if i < len(spans) {
			scopes[i].span = spans[i]
			scopes[i].located = true
		}
	}
	return scopes
}

// sectionValueRange covers the inline value of a top-level key
func sectionValueRange(lines []string, key string) diagnostic.Range {
	if pos, ok := parser.LocateKey(lines, key); ok {
		return valueOrKeyRange(pos)
	}
	return startOfFile(lines)
}

func startOfFile(lines []string) diagnostic.Range {
	return lineRange(lines, 0)
}

func lineRange(lines []string, line int) diagnostic.Range {
	length := 0
	if line >= 0 && line < len(lines) {
		length = len(lines[line])
	}
	return diagnostic.NewRange(line, 0, line, length)
}

func spanRange(lines []string, span parser.Span) diagnostic.Range {
	return diagnostic.NewRange(span.StartLine, 0, span.EndLine, len(lines[span.EndLine]))
}

func keyRange(pos parser.Position) diagnostic.Range {
	return diagnostic.NewRange(pos.Line, pos.KeyStart, pos.Line, pos.KeyEnd)
}

func valueOrKeyRange(pos parser.Position) diagnostic.Range {
	if pos.ValueStart == pos.ValueEnd {
		return keyRange(pos)
	}
	return diagnostic.NewRange(pos.Line, pos.ValueStart, pos.Line, pos.ValueEnd)
}
