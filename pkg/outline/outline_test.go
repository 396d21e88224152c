package outline

import (
	"testing"

	"github.com/helmwave/helmwave-lint/pkg/parser"
)

const document = `version: "0.36.0"
project: demo

repositories:
  - name: bitnami
    url: https://charts.bitnami.com/bitnami
  - url: https://charts.example.com

releases:
  - name: web
    chart:
      name: bitnami/nginx
    namespace: default
    tags: [frontend]

lifecycle:
  pre_up:
    - echo hi
  post_up: []
`

func build(t *testing.T, text string) []Symbol {
	t.Helper()
	result := parser.Parse(text)
	if result.SyntaxError != nil {
		t.Fatalf("unexpected syntax error: %v", result.SyntaxError)
	}
	return Build(result.Document, result.Lines)
}

func TestBuildTopLevelInSourceOrder(t *testing.T) {
	symbols := build(t, document)

	expected := []struct {
		name   string
		kind   Kind
		detail string
		line   int
	}{
		{"version", KindString, "Version: 0.36.0", 0},
		{"project", KindPackage, "Project: demo", 1},
		{"repositories", KindArray, "2 repositories", 3},
		{"releases", KindArray, "1 releases", 8},
		{"lifecycle", KindObject, "2 properties", 15},
	}

	if len(symbols) != len(expected) {
		t.Fatalf("expected %d symbols, got %d: %+v", len(expected), len(symbols), symbols)
	}
	for i, want := range expected {
		got := symbols[i]
		if got.Name != want.name || got.Kind != want.kind || got.Detail != want.detail {
			t.Errorf("symbol %d = %s/%s/%q, want %s/%s/%q", i, got.Name, got.Kind, got.Detail, want.name, want.kind, want.detail)
		}
		if got.Range.Start.Line != want.line {
			t.Errorf("%s on line %d, want %d", want.name, got.Range.Start.Line, want.line)
		}
	}
}

func TestBuildSectionItems(t *testing.T) {
	symbols := build(t, document)

	repositories := symbols[2].Children
	if len(repositories) != 2 {
		t.Fatalf("expected 2 repositories, got %+v", repositories)
	}
	if repositories[0].Name != "bitnami" || repositories[0].Detail != "https://charts.bitnami.com/bitnami" {
		t.Errorf("unexpected first repository %+v", repositories[0])
	}
	if repositories[1].Name != "Repository 2" || repositories[1].Kind != KindModule {
		t.Errorf("unnamed repository should get a positional name, got %+v", repositories[1])
	}
	if r := repositories[0].Range; r.Start.Line != 4 || r.End.Line != 5 {
		t.Errorf("unexpected repository range %+v", r)
	}

	release := symbols[3].Children[0]
	if release.Name != "web" || release.Detail != "bitnami/nginx in default" || release.Kind != KindClass {
		t.Errorf("unexpected release %+v", release)
	}
	var names []string
	for _, child := range release.Children {
		names = append(names, child.Name)
	}
	if len(names) != 4 || names[0] != "name" || names[1] != "chart" || names[2] != "namespace" || names[3] != "tags" {
		t.Errorf("unexpected release fields %v", names)
	}
}

func TestBuildLifecycleHooks(t *testing.T) {
	symbols := build(t, document)
	hooks := symbols[4].Children
	if len(hooks) != 2 || hooks[0].Name != "pre_up" || hooks[1].Name != "post_up" {
		t.Fatalf("unexpected hooks %+v", hooks)
	}
	if hooks[0].Detail != "1 items" || hooks[0].Kind != KindArray {
		t.Errorf("unexpected pre_up symbol %+v", hooks[0])
	}
}

func TestBuildEmpty(t *testing.T) {
	if symbols := Build(nil, nil); len(symbols) != 0 {
		t.Errorf("expected no symbols, got %+v", symbols)
	}
}
