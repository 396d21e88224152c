package quickfix

import (
	"testing"

	"github.com/helmwave/helmwave-lint/pkg/diagnostic"
	"github.com/helmwave/helmwave-lint/pkg/parser"
	"github.com/helmwave/helmwave-lint/pkg/validator"
)

func firstFix(t *testing.T, text string) (Fix, diagnostic.Diagnostic) {
	t.Helper()
	diags := validator.ValidateText(text)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic")
	}
	fix, ok := Suggest(diags[0], parser.SplitLines(text))
	if !ok {
		t.Fatalf("expected a fix for %q", diags[0].Message)
	}
	return fix, diags[0]
}

func TestSuggestMissingProject(t *testing.T) {
	fix, _ := firstFix(t, "version: \"1.0\"\n")
	if fix.Title != "Add missing project field" || !fix.Preferred {
		t.Errorf("unexpected fix %+v", fix)
	}
	if fix.Edit.Range != diagnostic.NewRange(0, 0, 0, 0) || fix.Edit.NewText != "project: \"my-project\"\n" {
		t.Errorf("unexpected edit %+v", fix.Edit)
	}
}

func TestSuggestMissingItemFields(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		title string
		edit  string
		line  int
	}{
		{
			name:  "repository url",
			text:  "project: p\nrepositories:\n  - name: a\n",
			title: "Add missing url field",
			edit:  "    url: \"https://charts.helm.sh/stable\"\n",
			line:  3,
		},
		{
			name:  "release name",
			text:  "project: p\nreleases:\n- chart: c\n  namespace: n\n",
			title: "Add missing name field",
			edit:  "  name: \"release-name\"\n",
			line:  3,
		},
		{
			name:  "registry host",
			text:  "project: p\nregistries:\n  -   username: a\n      password: b\n",
			title: "Add missing host field",
			edit:  "      host: \"registry.example.com\"\n",
			line:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix, _ := firstFix(t, tt.text)
			if fix.Title != tt.title {
				t.Errorf("title = %q, want %q", fix.Title, tt.title)
			}
			if fix.Edit.NewText != tt.edit {
				t.Errorf("edit = %q, want %q", fix.Edit.NewText, tt.edit)
			}
			if fix.Edit.Range.Start.Line != tt.line {
				t.Errorf("insert line = %d, want %d", fix.Edit.Range.Start.Line, tt.line)
			}
		})
	}
}

func TestSuggestArrayType(t *testing.T) {
	fix, d := firstFix(t, "project: p\nreleases: web\n")
	if fix.Title != "Fix array type" {
		t.Errorf("unexpected title %q", fix.Title)
	}
	if fix.Edit.Range != diagnostic.NewRange(d.Range.Start.Line, 0, 1, len("releases: web")) {
		t.Errorf("unexpected range %+v", fix.Edit.Range)
	}
	if fix.Edit.NewText != "releases:\n  - # Add array items here" {
		t.Errorf("unexpected text %q", fix.Edit.NewText)
	}
}

func TestSuggestObjectType(t *testing.T) {
	fix, _ := firstFix(t, "project: p\nlifecycle: run\n")
	if fix.Title != "Fix object type" || fix.Edit.NewText != "lifecycle:\n  # Add object properties here" {
		t.Errorf("unexpected fix %+v", fix)
	}
}

func TestSuggestArrayTypeSkipsEntryLines(t *testing.T) {
	lines := []string{
		"lifecycle:",
		"  pre_up:",
		"    - cmd: echo",
		"      args: hello",
	}
	tests := []diagnostic.Diagnostic{
		diagnostic.Error(diagnostic.NewRange(2, 4, 3, 17), "Lifecycle command args must be an array"),
		diagnostic.Error(diagnostic.NewRange(2, 0, 3, 17), "Release entry must be an object"),
		diagnostic.Error(diagnostic.NewRange(1, 2, 1, 8), "releases must be an array"),
	}
	for _, d := range tests {
		if fix, ok := Suggest(d, lines); ok {
			t.Errorf("unexpected fix %+v for %q", fix, d.Message)
		}
	}
}

func TestSuggestIgnoresOtherDiagnostics(t *testing.T) {
	lines := []string{"project: p"}
	tests := []diagnostic.Diagnostic{
		diagnostic.Warning(diagnostic.NewRange(0, 0, 0, 1), "Invalid repository URL format"),
		{Message: "Missing required field: project", Source: "yaml"},
	}
	for _, d := range tests {
		if fix, ok := Suggest(d, lines); ok {
			t.Errorf("unexpected fix %+v for %q", fix, d.Message)
		}
	}
}
