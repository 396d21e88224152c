package parser

import (
	"fmt"
	"strings"
	"testing"
)

const sampleDocument = `project: demo # the project
version: ">=0.30.0"

repositories:
  - name: bitnami
    url: https://charts.bitnami.com/bitnami

  - name: private
    url: https://charts.example.com
    username: admin
    password: secret
releases:
- name: web
  chart:
    name: bitnami/nginx
  namespace: default
- name: api
  namespace: backend
lifecycle:
  pre_up:
    - echo "hi"
`

func TestLocateKeyTopLevel(t *testing.T) {
	lines := SplitLines(sampleDocument)

	tests := []struct {
		key        string
		line       int
		keyStart   int
		valueStart int
		valueEnd   int
	}{
		{key: "project", line: 0, keyStart: 0, valueStart: 9, valueEnd: 13},
		{key: "version", line: 1, keyStart: 0, valueStart: 9, valueEnd: 19},
		{key: "repositories", line: 3, keyStart: 0, valueStart: 13, valueEnd: 13},
		{key: "releases", line: 11, keyStart: 0, valueStart: 9, valueEnd: 9},
		{key: "lifecycle", line: 18, keyStart: 0, valueStart: 10, valueEnd: 10},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			pos, ok := LocateKey(lines, tt.key)
			if !ok {
				t.Fatalf("expected to find %q", tt.key)
			}
			if pos.Line != tt.line {
				t.Errorf("line = %d, want %d", pos.Line, tt.line)
			}
			if pos.KeyStart != tt.keyStart || pos.KeyEnd != tt.keyStart+len(tt.key) {
				t.Errorf("key span = %d-%d, want %d-%d", pos.KeyStart, pos.KeyEnd, tt.keyStart, tt.keyStart+len(tt.key))
			}
			if pos.ValueStart != tt.valueStart || pos.ValueEnd != tt.valueEnd {
				t.Errorf("value span = %d-%d, want %d-%d", pos.ValueStart, pos.ValueEnd, tt.valueStart, tt.valueEnd)
			}
		})
	}
}

func TestLocateKeyIgnoresNestedKeysWithoutParent(t *testing.T) {
	lines := SplitLines(sampleDocument)

	if _, ok := LocateKey(lines, "namespace"); ok {
		t.Error("nested key must not be found at top level")
	}
	if _, ok := LocateKey(lines, "missing"); ok {
		t.Error("absent key must not be found")
	}
}

func TestLocateKeyWithParent(t *testing.T) {
	lines := SplitLines(sampleDocument)

	pos, ok := LocateKey(lines, "pre_up", "lifecycle")
	if !ok {
		t.Fatal("expected to find pre_up under lifecycle")
	}
	if pos.Line != 19 || pos.KeyStart != 2 {
		t.Errorf("got line %d column %d, want line 19 column 2", pos.Line, pos.KeyStart)
	}

	pos, ok = LocateKey(lines, "username", "repositories")
	if !ok || pos.Line != 9 {
		t.Errorf("expected username on line 9, got %+v (found=%v)", pos, ok)
	}

	// keys after the section ends are invisible to the scoped scan
	if _, ok := LocateKey(lines, "namespace", "repositories"); ok {
		t.Error("namespace belongs to releases, not repositories")
	}
	if _, ok := LocateKey(lines, "name", "missing"); ok {
		t.Error("missing parent must not match")
	}
}

func TestLocateKeyValueSpan(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		valueStart int
		valueEnd   int
	}{
		{"plain", "url: https://example.com", 5, 24},
		{"trailing spaces", "url: value   ", 5, 10},
		{"comment", "url: value # note", 5, 10},
		{"fragment is not a comment", "url: https://example.com/#top", 5, 29},
		{"hash inside quotes", `url: "a # b" # note`, 5, 12},
		{"empty", "url:", 4, 4},
		{"empty with comment", "url:   # nothing", 4, 4},
		{"quoted key", `"url": x`, 7, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, ok := LocateKey([]string{tt.line}, "url")
			if !ok {
				t.Fatalf("expected to find url in %q", tt.line)
			}
			if pos.ValueStart != tt.valueStart || pos.ValueEnd != tt.valueEnd {
				t.Errorf("value span = %d-%d, want %d-%d", pos.ValueStart, pos.ValueEnd, tt.valueStart, tt.valueEnd)
			}
		})
	}
}

func TestLocateKeyRequiresColonBoundary(t *testing.T) {
	lines := []string{"urls: a", "url_x: b", "http://example.com"}
	if _, ok := LocateKey(lines, "url"); ok {
		t.Error("url must not match urls or url_x")
	}
	if _, ok := LocateKey(lines, "http"); ok {
		t.Error("http must not match a bare URL")
	}
}

func TestLocateKeyFirstOccurrence(t *testing.T) {
	lines := SplitLines("project: one\nproject: two\n")
	pos, ok := LocateKey(lines, "project")
	if !ok || pos.Line != 0 {
		t.Errorf("expected first occurrence on line 0, got %+v", pos)
	}
}

func TestLocateKeyRoundTrip(t *testing.T) {
	for indent := 0; indent <= 6; indent += 2 {
		for line := 0; line < 4; line++ {
			t.Run(fmt.Sprintf("indent %d line %d", indent, line), func(t *testing.T) {
				prefix := strings.Repeat(" ", indent)
				lines := make([]string, 0, 5)
				for i := 0; i < 4; i++ {
					if i == line {
						lines = append(lines, prefix+"target: value")
						continue
					}
					lines = append(lines, fmt.Sprintf("%sother%d: x", prefix, i))
				}

				pos, ok := LocateKey(lines, "target")
				if !ok {
					t.Fatal("expected to find target")
				}
				if pos.Line != line || pos.KeyStart != indent {
					t.Errorf("got line %d column %d, want line %d column %d", pos.Line, pos.KeyStart, line, indent)
				}
			})
		}
	}
}

func TestSequenceItems(t *testing.T) {
	lines := SplitLines(sampleDocument)

	header, _ := LocateKey(lines, "repositories")
	items := SequenceItems(lines, header)
	expected := []Span{{StartLine: 4, EndLine: 5}, {StartLine: 7, EndLine: 10}}
	if len(items) != len(expected) {
		t.Fatalf("expected %d repository items, got %d: %+v", len(expected), len(items), items)
	}
	for i := range expected {
		if items[i] != expected[i] {
			t.Errorf("item %d = %+v, want %+v", i, items[i], expected[i])
		}
	}

	// compact sequence at the parent's own indentation
	header, _ = LocateKey(lines, "releases")
	items = SequenceItems(lines, header)
	expected = []Span{{StartLine: 12, EndLine: 15}, {StartLine: 16, EndLine: 17}}
	if len(items) != len(expected) {
		t.Fatalf("expected %d release items, got %d: %+v", len(expected), len(items), items)
	}
	for i := range expected {
		if items[i] != expected[i] {
			t.Errorf("item %d = %+v, want %+v", i, items[i], expected[i])
		}
	}
}

func TestSequenceItemsNonSequence(t *testing.T) {
	tests := map[string]string{
		"flow":    "repositories: [{name: a, url: b}]\n",
		"mapping": "repositories:\n  name: a\n",
		"empty":   "repositories:\nproject: x\n",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			lines := SplitLines(text)
			header, ok := LocateKey(lines, "repositories")
			if !ok {
				t.Fatal("expected header")
			}
			if items := SequenceItems(lines, header); len(items) != 0 {
				t.Errorf("expected no items, got %+v", items)
			}
		})
	}
}

func TestSequenceItemsNestedSequencesDoNotSplitItems(t *testing.T) {
	text := `monitors:
  - name: a
    http:
      expected_codes:
        - 200
        - 201
  - name: b
`
	lines := SplitLines(text)
	header, _ := LocateKey(lines, "monitors")
	items := SequenceItems(lines, header)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %+v", items)
	}
	if items[0] != (Span{StartLine: 1, EndLine: 5}) {
		t.Errorf("first item = %+v", items[0])
	}
}

func TestLocateArrayItem(t *testing.T) {
	lines := SplitLines(sampleDocument)

	pos, ok := LocateArrayItem(lines, "repositories", 1)
	if !ok {
		t.Fatal("expected second repository")
	}
	if pos.Line != 7 || pos.KeyStart != 2 || pos.KeyEnd != 3 {
		t.Errorf("unexpected marker position %+v", pos)
	}
	if pos.ValueStart != 4 || pos.ValueEnd != len(lines[7]) {
		t.Errorf("unexpected item extent %+v", pos)
	}

	if _, ok := LocateArrayItem(lines, "repositories", 2); ok {
		t.Error("index past the end must not be found")
	}
	if _, ok := LocateArrayItem(lines, "registries", 0); ok {
		t.Error("absent section must not be found")
	}
}

func TestLocateKeyInSpan(t *testing.T) {
	lines := SplitLines(sampleDocument)

	span, _ := ItemSpan(lines, "releases", 0)

	pos, ok := LocateKeyInSpan(lines, span, "name")
	if !ok || pos.Line != 12 || pos.KeyStart != 2 {
		t.Errorf("expected release name on line 12 column 2, got %+v (found=%v)", pos, ok)
	}

	pos, ok = LocateKeyInSpan(lines, span, "namespace")
	if !ok || pos.Line != 15 {
		t.Errorf("expected namespace on line 15, got %+v (found=%v)", pos, ok)
	}

	if _, ok := LocateKeyInSpan(lines, span, "username"); ok {
		t.Error("username is not a release field")
	}
}

func TestLocateKeyInSpanSkipsNestedFields(t *testing.T) {
	text := `releases:
  - chart:
      name: bitnami/nginx
    name: web
`
	lines := SplitLines(text)
	span, _ := ItemSpan(lines, "releases", 0)
	pos, ok := LocateKeyInSpan(lines, span, "name")
	if !ok || pos.Line != 3 {
		t.Errorf("expected the release's own name on line 3, got %+v (found=%v)", pos, ok)
	}
}

func TestLocatePath(t *testing.T) {
	lines := SplitLines(sampleDocument)

	tests := []struct {
		path  []string
		line  int
		found bool
	}{
		{[]string{"releases", "0", "chart", "name"}, 14, true},
		{[]string{"releases", "1", "namespace"}, 17, true},
		{[]string{"repositories", "1"}, 7, true},
		{[]string{"lifecycle", "pre_up", "0"}, 20, true},
		{[]string{"releases", "5"}, 0, false},
		{[]string{"nope"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.path, "/"), func(t *testing.T) {
			pos, ok := LocatePath(lines, tt.path...)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if ok && pos.Line != tt.line {
				t.Errorf("line = %d, want %d", pos.Line, tt.line)
			}
		})
	}
}
