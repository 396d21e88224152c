package validator

import (
	"cmp"
	"slices"
	"strings"

	"github.com/helmwave/helmwave-lint/pkg/diagnostic"
	"github.com/helmwave/helmwave-lint/pkg/parser"
	"github.com/helmwave/helmwave-lint/pkg/schema"
)

// CheckProject requires a non-empty project name
func CheckProject(doc parser.Document, lines []string) []diagnostic.Diagnostic {
	value := doc[schema.KeyProject]
	pos, found := parser.LocateKey(lines, schema.KeyProject)

	switch {
	case !isSet(map[string]any(doc), schema.KeyProject):
		if !found {
			return []diagnostic.Diagnostic{diagnostic.Error(startOfFile(lines), msgMissingProject)}
		}
		return []diagnostic.Diagnostic{diagnostic.Error(keyRange(pos), msgEmptyProject)}
	case !isString(value):
		r := startOfFile(lines)
		if found {
			r = valueOrKeyRange(pos)
		}
		return []diagnostic.Diagnostic{diagnostic.Error(r, msgProjectNotString)}
	}
	return nil
}

// CheckVersion warns when the version constraint is malformed. Non-string
// scalars such as `version: 0.30` are checked against their source text.
func CheckVersion(doc parser.Document, lines []string) []diagnostic.Diagnostic {
	value, ok := doc[schema.KeyVersion]
	if !ok || value == nil || value == "" {
		return nil
	}

	pos, found := parser.LocateKey(lines, schema.KeyVersion)
	text, quoted := value.(string)
	if !quoted && isScalar(value) {
		text = scalarText(value)
		if found && pos.ValueEnd > pos.ValueStart {
			text = strings.Trim(lines[pos.Line][pos.ValueStart:pos.ValueEnd], `"'`)
		}
	}

	if isScalar(value) && schema.IsValidVersion(text) {
		return nil
	}

	r := startOfFile(lines)
	if found {
		r = valueOrKeyRange(pos)
	}
	return []diagnostic.Diagnostic{diagnostic.Warning(r, msgInvalidVersion)}
}

// CheckUnknownKeys warns about every unrecognized top-level key, in source order
func CheckUnknownKeys(doc parser.Document, lines []string) []diagnostic.Diagnostic {
	var unknown []string
	for key := range doc {
		if !schema.IsTopLevelKey(key) {
			unknown = append(unknown, key)
		}
	}

	var out []diagnostic.Diagnostic
	for _, k := range bySourceOrder(unknown, func(key string) (parser.Position, bool) {
		return parser.LocateKey(lines, key)
	}) {
		r := startOfFile(lines)
		if k.found {
			r = keyRange(k.pos)
		}
		out = append(out, diagnostic.Warning(r, unknownTopLevelKeyMessage(k.name)))
	}
	return out
}

type locatedKey struct {
	name  string
	pos   parser.Position
	found bool
}

// bySourceOrder orders keys by the line they appear on. Keys that cannot be
// located come last, alphabetically, so repeated runs agree.
func bySourceOrder(keys []string, locate func(string) (parser.Position, bool)) []locatedKey {
	located := make([]locatedKey, 0, len(keys))
	for _, key := range keys {
		pos, found := locate(key)
		located = append(located, locatedKey{name: key, pos: pos, found: found})
	}

	slices.SortFunc(located, func(a, b locatedKey) int {
		if a.found != b.found {
			if a.found {
				return -1
			}
			return 1
		}
		if a.found {
			if c := cmp.Compare(a.pos.Line, b.pos.Line); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.name, b.name)
	})
	return located
}
