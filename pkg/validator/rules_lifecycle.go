package validator

import (
	"fmt"

	"github.com/helmwave/helmwave-lint/pkg/diagnostic"
	"github.com/helmwave/helmwave-lint/pkg/parser"
	"github.com/helmwave/helmwave-lint/pkg/schema"
)

// CheckLifecycle validates the lifecycle mapping: only known hooks, each
// holding a list of commands
func CheckLifecycle(doc parser.Document, lines []string) []diagnostic.Diagnostic {
	value, ok := doc[schema.KeyLifecycle]
	if !ok || value == nil {
		return nil
	}
	hooks, ok := asMap(value)
	if !ok {
		return []diagnostic.Diagnostic{
			diagnostic.Error(sectionValueRange(lines, schema.KeyLifecycle), msgLifecycleNotObject),
		}
	}

	section := scope{lines: lines, fallback: startOfFile(lines)}
	if header, found := parser.LocateKey(lines, schema.KeyLifecycle); found {
		section.fallback = lineRange(lines, header.Line)
		section.span, section.located = parser.BlockSpan(lines, header)
	}

	names := make([]string, 0, len(hooks))
	for name := range hooks {
		names = append(names, name)
	}

	var collector diagnostic.Collector
	for _, hook := range bySourceOrder(names, section.field) {
		if !schema.IsLifecycleHook(hook.name) {
			r := section.fallback
			if hook.found {
				r = keyRange(hook.pos)
			}
			collector.AddWarning(r, unknownLifecycleHookMessage(hook.name))
			continue
		}
		collector.Add(checkHook(hook.name, hooks[hook.name], section)...)
	}
	return collector.Diagnostics()
}

func checkHook(name string, value any, section scope) []diagnostic.Diagnostic {
	if value == nil {
		return nil
	}
	commands, ok := asSlice(value)
	if !ok {
		return []diagnostic.Diagnostic{
			diagnostic.Error(section.valueRange(name), fmt.Sprintf("Lifecycle hook '%s' must be an array", name)),
		}
	}

	var out []diagnostic.Diagnostic
	for i, command := range commands {
		switch c := command.(type) {
		case string:
			continue
		default:
			fields, ok := asMap(c)
			if !ok {
				out = append(out, diagnostic.Error(section.element(name, i), "Lifecycle command must be a string or an object"))
				continue
			}
			out = append(out, checkCommand(fields, section, name, i)...)
		}
	}
	return out
}

func checkCommand(fields map[string]any, section scope, hook string, index int) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	anchor := section.element(hook, index)

	if !isSet(fields, "cmd") {
		out = append(out, diagnostic.Error(anchor, "Lifecycle command missing required field: cmd"))
	}
	if args, ok := fields["args"]; ok && args != nil {
		if _, ok := asSlice(args); !ok {
			out = append(out, diagnostic.Error(anchor, "Lifecycle command args must be an array"))
		}
	}
	if show, ok := fields["show"]; ok && show != nil {
		if _, ok := show.(bool); !ok {
			out = append(out, diagnostic.Warning(anchor, "Lifecycle command show must be a boolean"))
		}
	}
	return out
}
