// Package outline builds a navigable symbol tree for a helmwave document
package outline

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/helmwave/helmwave-lint/pkg/diagnostic"
	"github.com/helmwave/helmwave-lint/pkg/parser"
	"github.com/helmwave/helmwave-lint/pkg/schema"
)

// Kind classifies a symbol. Names follow the LSP symbol kinds.
type Kind string

const (
	KindPackage   Kind = "package"
	KindModule    Kind = "module"
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindObject    Kind = "object"
	KindArray     Kind = "array"
	KindString    Kind = "string"
	KindNumber    Kind = "number"
	KindBoolean   Kind = "boolean"
	KindProperty  Kind = "property"
)

// Symbol is one outline entry anchored at its key or sequence marker
type Symbol struct {
	Name     string           `json:"name"`
	Detail   string           `json:"detail,omitempty"`
	Kind     Kind             `json:"kind"`
	Range    diagnostic.Range `json:"range"`
	Children []Symbol         `json:"children,omitempty"`
}

// Build lists the top-level keys of doc in source order. Keys that cannot be
// found in lines are left out.
func Build(doc parser.Document, lines []string) []Symbol {
	var symbols []Symbol
	for key, value := range doc {
		pos, ok := parser.LocateKey(lines, key)
		if !ok {
			continue
		}
		symbol := newSymbol(key, value, pos)
		symbol.Children = children(key, value, pos, lines)
		symbols = append(symbols, symbol)
	}
	sortByPosition(symbols)
	return symbols
}

func newSymbol(key string, value any, pos parser.Position) Symbol {
	return Symbol{
		Name:   key,
		Detail: detail(key, value),
		Kind:   kind(key, value),
		Range:  diagnostic.NewRange(pos.Line, pos.KeyStart, pos.Line, pos.KeyEnd),
	}
}

func children(key string, value any, header parser.Position, lines []string) []Symbol {
	switch key {
	case schema.KeyRepositories, schema.KeyRegistries, schema.KeyReleases, schema.KeyMonitors:
		entries, ok := value.([]any)
		if !ok {
			return nil
		}
		return items(key, entries, header, lines)
	case schema.KeyLifecycle:
		hooks, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		block, ok := parser.BlockSpan(lines, header)
		if !ok {
			return nil
		}
		return fields(hooks, block, lines)
	}
	return nil
}

// items describes each sequence entry, with its own fields as children
func items(section string, entries []any, header parser.Position, lines []string) []Symbol {
	spans := parser.SequenceItems(lines, header)
	var out []Symbol
	for i, entry := range entries {
		if i >= len(spans) {
			break
		}
		span := spans[i]
		entryFields, _ := entry.(map[string]any)
		symbol := Symbol{
			Name:   itemName(section, entryFields, i),
			Detail: itemDetail(section, entryFields),
			Kind:   itemKind(section),
			Range:  diagnostic.NewRange(span.StartLine, 0, span.EndLine, len(lines[span.EndLine])),
		}
		if entryFields != nil {
			symbol.Children = fields(entryFields, span, lines)
		}
		out = append(out, symbol)
	}
	return out
}

// fields lists the keys of a mapping occupying span
func fields(m map[string]any, span parser.Span, lines []string) []Symbol {
	var out []Symbol
	for key, value := range m {
		pos, ok := parser.LocateKeyInSpan(lines, span, key)
		if !ok {
			continue
		}
		out = append(out, newSymbol(key, value, pos))
	}
	sortByPosition(out)
	return out
}

func sortByPosition(symbols []Symbol) {
	slices.SortFunc(symbols, func(a, b Symbol) int {
		if c := cmp.Compare(a.Range.Start.Line, b.Range.Start.Line); c != 0 {
			return c
		}
		return cmp.Compare(a.Range.Start.Character, b.Range.Start.Character)
	})
}

func kind(key string, value any) Kind {
	switch key {
	case schema.KeyProject:
		return KindPackage
	case schema.KeyVersion:
		return KindString
	case schema.KeyRepositories, schema.KeyRegistries, schema.KeyReleases, schema.KeyMonitors, "tags":
		return KindArray
	case schema.KeyLifecycle, "values":
		return KindObject
	}

	switch value.(type) {
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	case string:
		return KindString
	case bool:
		return KindBoolean
	case int, int64, uint64, float64:
		return KindNumber
	}
	return KindProperty
}

func detail(key string, value any) string {
	switch key {
	case schema.KeyProject:
		return fmt.Sprintf("Project: %v", value)
	case schema.KeyVersion:
		return fmt.Sprintf("Version: %v", value)
	case schema.KeyRepositories, schema.KeyRegistries, schema.KeyReleases, schema.KeyMonitors, "tags":
		if entries, ok := value.([]any); ok {
			return fmt.Sprintf("%d %s", len(entries), key)
		}
		return key
	}

	switch v := value.(type) {
	case []any:
		return fmt.Sprintf("%d items", len(v))
	case map[string]any:
		return fmt.Sprintf("%d properties", len(v))
	case nil:
		return ""
	}
	return fmt.Sprint(value)
}

func itemName(section string, fields map[string]any, index int) string {
	nameKey, label := "name", ""
	switch section {
	case schema.KeyRepositories:
		label = "Repository"
	case schema.KeyRegistries:
		nameKey, label = "host", "Registry"
	case schema.KeyReleases:
		label = "Release"
	case schema.KeyMonitors:
		label = "Monitor"
	}
	if name, ok := fields[nameKey].(string); ok && name != "" {
		return name
	}
	return fmt.Sprintf("%s %d", label, index+1)
}

func itemDetail(section string, fields map[string]any) string {
	text := func(key, fallback string) string {
		if v, ok := fields[key].(string); ok && v != "" {
			return v
		}
		return fallback
	}

	switch section {
	case schema.KeyRepositories:
		return text("url", "Repository")
	case schema.KeyRegistries:
		return text("host", "Registry")
	case schema.KeyReleases:
		chart := text("chart", "chart")
		if chartFields, ok := fields["chart"].(map[string]any); ok {
			if name, ok := chartFields["name"].(string); ok && name != "" {
				chart = name
			}
		}
		return chart + " in " + text("namespace", "namespace")
	case schema.KeyMonitors:
		return text("type", "Monitor")
	}
	return ""
}

func itemKind(section string) Kind {
	switch section {
	case schema.KeyRepositories, schema.KeyRegistries:
		return KindModule
	case schema.KeyReleases:
		return KindClass
	case schema.KeyMonitors:
		return KindInterface
	}
	return KindObject
}
