package validator

import (
	"fmt"
	"strings"

	"github.com/helmwave/helmwave-lint/pkg/diagnostic"
	"github.com/helmwave/helmwave-lint/pkg/parser"
	"github.com/helmwave/helmwave-lint/pkg/schema"
)

// CheckReleases validates helm releases: required fields, enumerations, list
// typed fields and references to monitors and other releases
func CheckReleases(doc parser.Document, lines []string) []diagnostic.Diagnostic {
	refs := releaseReferences{
		monitors: namesOf(doc[schema.KeyMonitors]),
		releases: releaseNames(doc[schema.KeyReleases]),
	}
	return checkSequenceSection(doc, lines, schema.KeyReleases, "Release", refs.checkRelease)
}

// releaseReferences holds the names a release may refer to
type releaseReferences struct {
	monitors map[string]bool
	releases map[string]bool
}

func (r releaseReferences) checkRelease(fields map[string]any, item scope) []diagnostic.Diagnostic {
	out := requireFields(fields, item, "Release", "name", "chart", "namespace")

	out = append(out, checkChart(fields, item)...)
	out = append(out, checkEnum(fields, item, "pending_release_strategy", "pending_release_strategy",
		schema.PendingReleaseStrategies, schema.IsPendingReleaseStrategy)...)
	out = append(out, checkEnum(fields, item, "deletion_propagation", "deletion_propagation",
		schema.DeletionPropagations, schema.IsDeletionPropagation)...)

	for _, key := range []string{"values", "tags", "depends_on", "monitors"} {
		out = append(out, checkArrayField(fields, item, key, "Release "+key)...)
	}

	out = append(out, r.checkMonitorRefs(fields, item)...)
	out = append(out, r.checkDependencies(fields, item)...)
	return out
}

// checkChart accepts a chart reference string or an object with a name
func checkChart(fields map[string]any, item scope) []diagnostic.Diagnostic {
	if !isSet(fields, "chart") {
		return nil
	}
	chart := fields["chart"]
	if chartFields, ok := asMap(chart); ok {
		if !isSet(chartFields, "name") {
			return []diagnostic.Diagnostic{
				diagnostic.Error(item.keyRange("chart"), "Release chart missing required field: name"),
			}
		}
		return nil
	}
	if _, ok := asSlice(chart); ok {
		return []diagnostic.Diagnostic{
			diagnostic.Error(item.valueRange("chart"), "Release chart must be a string or an object"),
		}
	}
	return nil
}

// checkMonitorRefs warns about release monitors that are not declared at top level
func (r releaseReferences) checkMonitorRefs(fields map[string]any, item scope) []diagnostic.Diagnostic {
	refs, ok := asSlice(fields["monitors"])
	if !ok {
		return nil
	}

	var out []diagnostic.Diagnostic
	for i, ref := range refs {
		name := referenceName(ref)
		if name == "" || r.monitors[name] {
			continue
		}
		out = append(out, diagnostic.Warning(item.element("monitors", i),
			fmt.Sprintf("Release monitor '%s' is not defined in monitors", name)))
	}
	return out
}

// checkDependencies warns about depends_on entries naming no known release.
// Entries may use the bare release name or the name@namespace form; tag-only
// entries are not checked.
func (r releaseReferences) checkDependencies(fields map[string]any, item scope) []diagnostic.Diagnostic {
	deps, ok := asSlice(fields["depends_on"])
	if !ok {
		return nil
	}

	var out []diagnostic.Diagnostic
	for i, dep := range deps {
		name := referenceName(dep)
		if name == "" || r.releases[name] {
			continue
		}
		if base, _, ok := strings.Cut(name, "@"); ok && r.releases[base] {
			continue
		}
		out = append(out, diagnostic.Warning(item.element("depends_on", i),
			fmt.Sprintf("Release dependency '%s' does not match any release", name)))
	}
	return out
}

// referenceName extracts the name of a reference written either as a plain
// string or as an object with a name field
func referenceName(ref any) string {
	if s, ok := ref.(string); ok {
		return strings.TrimSpace(s)
	}
	if fields, ok := asMap(ref); ok {
		return strings.TrimSpace(stringValue(fields, "name"))
	}
	return ""
}

// namesOf collects the name field of every mapping in a sequence
func namesOf(section any) map[string]bool {
	names := make(map[string]bool)
	entries, _ := asSlice(section)
	for _, entry := range entries {
		if fields, ok := asMap(entry); ok {
			if name := stringValue(fields, "name"); name != "" {
				names[name] = true
			}
		}
	}
	return names
}

// releaseNames collects release names and their name@namespace forms
func releaseNames(section any) map[string]bool {
	names := namesOf(section)
	entries, _ := asSlice(section)
	for _, entry := range entries {
		fields, ok := asMap(entry)
		if !ok {
			continue
		}
		name, namespace := stringValue(fields, "name"), stringValue(fields, "namespace")
		if name != "" && namespace != "" {
			names[name+"@"+namespace] = true
		}
	}
	return names
}
