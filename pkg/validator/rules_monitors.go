package validator

import (
	"fmt"

	"github.com/helmwave/helmwave-lint/pkg/diagnostic"
	"github.com/helmwave/helmwave-lint/pkg/parser"
	"github.com/helmwave/helmwave-lint/pkg/schema"
)

// CheckMonitors validates monitors: name and type are required and each type
// requires its own nested settings block
func CheckMonitors(doc parser.Document, lines []string) []diagnostic.Diagnostic {
	return checkSequenceSection(doc, lines, schema.KeyMonitors, "Monitor", checkMonitor)
}

func checkMonitor(fields map[string]any, item scope) []diagnostic.Diagnostic {
	out := requireFields(fields, item, "Monitor", "name", "type")
	if isSet(fields, "type") {
		out = append(out, checkEnum(fields, item, "type", "monitor type", schema.MonitorTypes, schema.IsMonitorType)...)
	}

	switch stringValue(fields, "type") {
	case schema.MonitorTypeHTTP:
		out = append(out, checkHTTPMonitor(fields, item)...)
	case schema.MonitorTypePrometheus:
		out = append(out, checkPrometheusMonitor(fields, item)...)
	}
	return out
}

func checkHTTPMonitor(fields map[string]any, item scope) []diagnostic.Diagnostic {
	settings, ok := asMap(fields[schema.MonitorTypeHTTP])
	if !ok {
		return []diagnostic.Diagnostic{
			diagnostic.Error(item.whole(), "HTTP monitor missing required field: http.url"),
			diagnostic.Error(item.whole(), "HTTP monitor missing required field: http.expected_codes"),
		}
	}
	block := item.child(schema.MonitorTypeHTTP)

	var out []diagnostic.Diagnostic
	for _, name := range []string{"url", "expected_codes"} {
		if !isSet(settings, name) {
			out = append(out, diagnostic.Error(item.whole(), "HTTP monitor missing required field: http."+name))
		}
	}

	if isSet(settings, "url") && !schema.IsValidURL(scalarText(settings["url"])) {
		out = append(out, diagnostic.Warning(block.valueRange("url"), msgInvalidMonitorURL))
	}
	out = append(out, checkEnum(settings, block, "method", "HTTP method", schema.HTTPMethods, schema.IsHTTPMethod)...)
	return append(out, checkExpectedCodes(settings, block)...)
}

// checkExpectedCodes requires expected_codes to be a list of integer HTTP
// status codes
func checkExpectedCodes(settings map[string]any, block scope) []diagnostic.Diagnostic {
	value, ok := settings["expected_codes"]
	if !ok || value == nil {
		return nil
	}
	codes, ok := asSlice(value)
	if !ok {
		return []diagnostic.Diagnostic{
			diagnostic.Error(block.valueRange("expected_codes"), "HTTP monitor expected_codes must be an array"),
		}
	}

	var out []diagnostic.Diagnostic
	for i, code := range codes {
		if n, ok := toInt(code); ok && schema.IsValidStatusCode(n) {
			continue
		}
		out = append(out, diagnostic.Error(block.element("expected_codes", i), fmt.Sprintf(
			"Invalid HTTP status code '%v' in expected_codes. Expected an integer between %d and %d",
			code, schema.MinHTTPStatusCode, schema.MaxHTTPStatusCode)))
	}
	return out
}

func checkPrometheusMonitor(fields map[string]any, item scope) []diagnostic.Diagnostic {
	settings, _ := asMap(fields[schema.MonitorTypePrometheus])
	block := item.child(schema.MonitorTypePrometheus)

	var out []diagnostic.Diagnostic
	for _, name := range []string{"url", "expr"} {
		if !isSet(settings, name) {
			out = append(out, diagnostic.Error(item.whole(), "Prometheus monitor missing required field: prometheus."+name))
		}
	}
	if isSet(settings, "url") && !schema.IsValidURL(scalarText(settings["url"])) {
		out = append(out, diagnostic.Warning(block.valueRange("url"), msgInvalidMonitorURL))
	}
	return out
}
