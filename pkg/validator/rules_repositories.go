package validator

import (
	"github.com/helmwave/helmwave-lint/pkg/diagnostic"
	"github.com/helmwave/helmwave-lint/pkg/parser"
	"github.com/helmwave/helmwave-lint/pkg/schema"
)

// CheckRepositories validates chart repositories: name and url are required,
// url must be well formed and credentials come in pairs
func CheckRepositories(doc parser.Document, lines []string) []diagnostic.Diagnostic {
	return checkSequenceSection(doc, lines, schema.KeyRepositories, "Repository", checkRepository)
}

func checkRepository(fields map[string]any, item scope) []diagnostic.Diagnostic {
	out := requireFields(fields, item, "Repository", "name", "url")

	if isSet(fields, "url") && !schema.IsValidURL(scalarText(fields["url"])) {
		out = append(out, diagnostic.Warning(item.restOfLine("url"), msgInvalidRepoURL))
	}

	return append(out, checkAuthPair(fields, item, "Repository")...)
}

// CheckRegistries validates OCI registries: host is required and must be a
// hostname with an optional port, credentials come in pairs
func CheckRegistries(doc parser.Document, lines []string) []diagnostic.Diagnostic {
	return checkSequenceSection(doc, lines, schema.KeyRegistries, "Registry", checkRegistry)
}

func checkRegistry(fields map[string]any, item scope) []diagnostic.Diagnostic {
	out := requireFields(fields, item, "Registry", "host")

	if isSet(fields, "host") && !schema.IsValidHost(scalarText(fields["host"])) {
		out = append(out, diagnostic.Warning(item.valueRange("host"), msgInvalidRegistryHost))
	}

	return append(out, checkAuthPair(fields, item, "Registry")...)
}
