package validator

import (
	"github.com/helmwave/helmwave-lint/pkg/diagnostic"
	"github.com/helmwave/helmwave-lint/pkg/parser"
)

// itemCheck validates the fields of one sequence entry
type itemCheck func(fields map[string]any, item scope) []diagnostic.Diagnostic

// checkSequenceSection validates a top-level key that must hold a sequence
// of mappings. A section of the wrong type gets one error and no item checks.
func checkSequenceSection(doc parser.Document, lines []string, key, kind string, check itemCheck) []diagnostic.Diagnostic {
	value, ok := doc[key]
	if !ok || value == nil {
		return nil
	}

	entries, ok := asSlice(value)
	if !ok {
		return []diagnostic.Diagnostic{
			diagnostic.Error(sectionValueRange(lines, key), key+" must be an array"),
		}
	}

	var collector diagnostic.Collector
	scopes := sectionItems(lines, key, len(entries))
	for i, entry := range entries {
		fields, ok := asMap(entry)
		if !ok {
			collector.AddError(scopes[i].whole(), kind+" entry must be an object")
			continue
		}
		collector.Add(check(fields, scopes[i])...)
	}
	return collector.Diagnostics()
}

// requireFields reports each missing field over the whole item
func requireFields(fields map[string]any, item scope, kind string, names ...string) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, name := range names {
		if !isSet(fields, name) {
			out = append(out, diagnostic.Error(item.whole(), kind+" missing required field: "+name))
		}
	}
	return out
}

// checkAuthPair reports a single warning when exactly one of username and
// password is configured
func checkAuthPair(fields map[string]any, item scope, kind string) []diagnostic.Diagnostic {
	if isSet(fields, "username") == isSet(fields, "password") {
		return nil
	}
	return []diagnostic.Diagnostic{
		diagnostic.Warning(item.whole(), kind+" authentication requires both username and password"),
	}
}

// checkEnum warns when a present field is not one of the allowed values
func checkEnum(fields map[string]any, item scope, key, label string, allowed []string, valid func(string) bool) []diagnostic.Diagnostic {
	value, ok := fields[key]
	if !ok || value == nil {
		return nil
	}
	text := scalarText(value)
	if isScalar(value) && valid(text) {
		return nil
	}
	return []diagnostic.Diagnostic{
		diagnostic.Warning(item.valueRange(key), invalidValueMessage(label, text, allowed)),
	}
}

// checkArrayField reports a present field that is not a sequence
func checkArrayField(fields map[string]any, item scope, key, label string) []diagnostic.Diagnostic {
	value, ok := fields[key]
	if !ok || value == nil {
		return nil
	}
	if _, ok := asSlice(value); ok {
		return nil
	}
	return []diagnostic.Diagnostic{
		diagnostic.Error(item.valueRange(key), label+" must be an array"),
	}
}
