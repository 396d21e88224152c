package parser

import (
	"strconv"
	"strings"
)

// Position locates a key and its inline value on a single source line.
// All offsets are 0-based byte columns; ValueStart == ValueEnd means the key
// has no inline value (for example a nested block start).
type Position struct {
	Line       int
	KeyStart   int
	KeyEnd     int
	ValueStart int
	ValueEnd   int
}

// Span is an inclusive range of source lines
type Span struct {
	StartLine int
	EndLine   int
}

// SplitLines splits source text into lines, dropping the carriage return of CRLF endings
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// LocateKey finds the first line declaring key.
//
// Without a parent the key must sit at the document's minimal indentation.
// With a parent, the parent is located at top level first and the key is
// searched only inside the parent's block: lines indented deeper than the
// parent (or sequence entries at the parent's own indentation). The first
// line that dedents past the parent ends the search.
func LocateKey(lines []string, key string, parent ...string) (Position, bool) {
	if len(parent) > 0 && parent[0] != "" {
		header, ok := LocateKey(lines, parent[0])
		if !ok {
			return Position{}, false
		}
		end := blockEnd(lines, header)
		for i := header.Line + 1; i <= end; i++ {
			if pos, ok := matchKey(lines[i], i, key, true); ok {
				return pos, true
			}
		}
		return Position{}, false
	}

	minIndent := minimalIndentation(lines)
	for i, line := range lines {
		if isBlankOrComment(line) || indentation(line) != minIndent {
			continue
		}
		if pos, ok := matchKey(line, i, key, false); ok {
			return pos, true
		}
	}
	return Position{}, false
}

// LocateArrayItem finds the index-th (0-based) entry of the block sequence under
// the top-level key parent. The returned position spans the whole entry line:
// KeyStart..KeyEnd covers the "-" marker and ValueStart..ValueEnd the rest of
// the line. Multi-line entries are not decomposed; see ItemSpan.
func LocateArrayItem(lines []string, parent string, index int) (Position, bool) {
	span, ok := ItemSpan(lines, parent, index)
	if !ok {
		return Position{}, false
	}
	return itemPosition(lines, span.StartLine), true
}

// ItemSpan returns the line range of the index-th entry of the block sequence
// under the top-level key parent
func ItemSpan(lines []string, parent string, index int) (Span, bool) {
	header, ok := LocateKey(lines, parent)
	if !ok {
		return Span{}, false
	}
	items := SequenceItems(lines, header)
	if index < 0 || index >= len(items) {
		return Span{}, false
	}
	return items[index], true
}

// SequenceItems splits the block under header into sequence entries.
// Each entry runs from its "-" marker through the last non-blank line indented
// deeper than the marker, so neighbouring entries never overlap. A block that
// is not a block sequence (flow style, mapping, scalar) yields no items.
func SequenceItems(lines []string, header Position) []Span {
	end := blockEnd(lines, header)
	itemIndent := -1
	var items []Span

	for i := header.Line + 1; i <= end; i++ {
		line := lines[i]
		if isBlankOrComment(line) {
			continue
		}
		indent := indentation(line)
		trimmed := line[indent:]

		if itemIndent == -1 {
			if !isSequenceEntry(trimmed) {
				return nil
			}
			itemIndent = indent
		}

		switch {
		case indent == itemIndent && isSequenceEntry(trimmed):
			items = append(items, Span{StartLine: i, EndLine: i})
		case indent > itemIndent && len(items) > 0:
			items[len(items)-1].EndLine = i
		default:
			return items
		}
	}

	return items
}

// BlockSpan returns the lines nested under header, excluding the header line itself
func BlockSpan(lines []string, header Position) (Span, bool) {
	end := blockEnd(lines, header)
	if end <= header.Line {
		return Span{}, false
	}
	return Span{StartLine: header.Line + 1, EndLine: end}, true
}

// LocateKeyInSpan finds key among the fields of the mapping occupying span.
// The field column is taken from the first content line of the span (after a
// leading "- " marker), so keys of nested mappings are never matched.
func LocateKeyInSpan(lines []string, span Span, key string) (Position, bool) {
	fieldColumn := -1
	for i := span.StartLine; i <= span.EndLine && i < len(lines); i++ {
		if i < 0 || isBlankOrComment(lines[i]) || strings.TrimSpace(lines[i]) == "-" {
			continue
		}
		column := contentColumn(lines[i])
		if fieldColumn == -1 {
			fieldColumn = column
		}
		if column != fieldColumn {
			continue
		}
		if pos, ok := matchKey(lines[i], i, key, true); ok {
			return pos, true
		}
	}
	return Position{}, false
}

// LocatePath walks nested keys and sequence indexes from the top level, for
// example LocatePath(lines, "releases", "1", "chart", "name")
func LocatePath(lines []string, segments ...string) (Position, bool) {
	if len(segments) == 0 {
		return Position{}, false
	}

	pos, ok := LocateKey(lines, segments[0])
	if !ok {
		return Position{}, false
	}
	var item *Span

	for _, segment := range segments[1:] {
		if index, err := strconv.Atoi(segment); err == nil {
			items := SequenceItems(lines, pos)
			if index < 0 || index >= len(items) {
				return Position{}, false
			}
			span := items[index]
			item = &span
			pos = itemPosition(lines, span.StartLine)
			continue
		}

		var scope Span
		if item != nil {
			scope = *item
			item = nil
		} else {
			block, ok := BlockSpan(lines, pos)
			if !ok {
				return Position{}, false
			}
			scope = block
		}
		if pos, ok = LocateKeyInSpan(lines, scope, segment); !ok {
			return Position{}, false
		}
	}

	return pos, true
}

// itemPosition describes a sequence entry line
func itemPosition(lines []string, line int) Position {
	text := lines[line]
	dash := indentation(text)
	valueStart := dash + 1
	for valueStart < len(text) && isSpace(text[valueStart]) {
		valueStart++
	}
	valueEnd := len(strings.TrimRight(text, " \t"))
	if valueEnd < valueStart {
		valueEnd = valueStart
	}
	return Position{
		Line:       line,
		KeyStart:   dash,
		KeyEnd:     dash + 1,
		ValueStart: valueStart,
		ValueEnd:   valueEnd,
	}
}

// matchKey reports whether line declares key. When allowItem is set a leading
// "- " sequence marker is skipped, so "- name: x" declares name.
func matchKey(line string, lineNum int, key string, allowItem bool) (Position, bool) {
	column := indentation(line)
	if allowItem {
		column = contentColumn(line)
	}
	rest := line[column:]

	for _, form := range []string{key, `"` + key + `"`, `'` + key + `'`} {
		if !strings.HasPrefix(rest, form) {
			continue
		}
		colon := column + len(form)
		for colon < len(line) && line[colon] == ' ' {
			colon++
		}
		if colon >= len(line) || line[colon] != ':' {
			continue
		}
		if colon+1 < len(line) && !isSpace(line[colon+1]) {
			continue
		}

		keyStart := column
		if form != key {
			keyStart++
		}
		valueStart, valueEnd := valueSpan(line, colon)
		return Position{
			Line:       lineNum,
			KeyStart:   keyStart,
			KeyEnd:     keyStart + len(key),
			ValueStart: valueStart,
			ValueEnd:   valueEnd,
		}, true
	}

	return Position{}, false
}

// valueSpan returns the inline value after the colon at index colon, without
// trailing comment or whitespace. An empty value collapses to colon+1.
func valueSpan(line string, colon int) (int, int) {
	start := colon + 1
	for start < len(line) && isSpace(line[start]) {
		start++
	}
	end := commentStart(line, start)
	for end > start && isSpace(line[end-1]) {
		end--
	}
	if end == start {
		return colon + 1, colon + 1
	}
	return start, end
}

// commentStart returns the index of the "#" that opens a line comment at or
// after from, or len(line). "#" only opens a comment at from or after
// whitespace, and never inside a quoted scalar.
func commentStart(line string, from int) int {
	i := from
	if i < len(line) && (line[i] == '"' || line[i] == '\'') {
		quote := line[i]
		i++
		for i < len(line) {
			if line[i] == '\\' && quote == '"' {
				i += 2
				continue
			}
			if line[i] == quote {
				if quote == '\'' && i+1 < len(line) && line[i+1] == '\'' {
					i += 2
					continue
				}
				i++
				break
			}
			i++
		}
	}

	for ; i < len(line); i++ {
		if line[i] == '#' && (i == from || isSpace(line[i-1])) {
			return i
		}
	}
	return len(line)
}

// blockEnd returns the last line belonging to the block opened by header.
// Lines indented deeper than the header's key column belong to it, as do
// sequence entries at that column (compact block sequences).
func blockEnd(lines []string, header Position) int {
	parentIndent := contentColumn(lines[header.Line])
	end := header.Line

	for i := header.Line + 1; i < len(lines); i++ {
		line := lines[i]
		if isBlankOrComment(line) {
			continue
		}
		indent := indentation(line)
		if indent > parentIndent || (indent == parentIndent && isSequenceEntry(line[indent:])) {
			end = i
			continue
		}
		break
	}

	return end
}

// minimalIndentation returns the smallest indentation among content lines
func minimalIndentation(lines []string) int {
	minIndent := -1
	for _, line := range lines {
		if isBlankOrComment(line) || isDocumentMarker(line) {
			continue
		}
		if indent := indentation(line); minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent == -1 {
		return 0
	}
	return minIndent
}

// contentColumn returns the column of the first character after indentation
// and any sequence markers
func contentColumn(line string) int {
	column := indentation(line)
	for {
		rest := line[column:]
		if !strings.HasPrefix(rest, "- ") && !strings.HasPrefix(rest, "-\t") {
			return column
		}
		column++
		for column < len(line) && isSpace(line[column]) {
			column++
		}
	}
}

func indentation(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isBlankOrComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

func isDocumentMarker(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "---" || trimmed == "..."
}

func isSequenceEntry(trimmed string) bool {
	return trimmed == "-" || strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "-\t")
}
