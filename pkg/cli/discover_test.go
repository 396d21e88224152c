package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/helmwave/helmwave-lint/pkg/constants"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestMatchesHelmwaveFile(t *testing.T) {
	tests := []struct {
		path  string
		match bool
	}{
		{"helmwave.yml", true},
		{"deploy/helmwave.yaml", true},
		{"prod_helmwave.yml", true},
		{"staging-helmwave.yaml", true},
		{"helmwave.yml.tpl", false},
		{"values.yml", false},
		{"helmwave.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := MatchesHelmwaveFile(tt.path, constants.HelmwaveFilePatterns); got != tt.match {
				t.Errorf("MatchesHelmwaveFile(%q) = %v, want %v", tt.path, got, tt.match)
			}
		})
	}
}

func TestFindHelmwaveFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"helmwave.yml":                       "project: root\n",
		"envs/prod_helmwave.yml":             "project: prod\n",
		"envs/values.yml":                    "replicas: 2\n",
		"envs/staging/staging-helmwave.yaml": "project: staging\n",
		".cache/helmwave.yml":                "project: hidden\n",
		"node_modules/pkg/helmwave.yml":      "project: vendored\n",
		"custom/deploy.yml":                  "project: custom\n",
	})

	files, err := FindHelmwaveFiles([]string{dir}, constants.HelmwaveFilePatterns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{
		filepath.Join(dir, "envs/prod_helmwave.yml"),
		filepath.Join(dir, "envs/staging/staging-helmwave.yaml"),
		filepath.Join(dir, "helmwave.yml"),
	}
	if !reflect.DeepEqual(files, expected) {
		t.Errorf("got %v, want %v", files, expected)
	}

	// explicit files are always included, and duplicates collapse
	explicit := filepath.Join(dir, "custom/deploy.yml")
	files, err = FindHelmwaveFiles([]string{explicit, explicit, filepath.Join(dir, "envs")}, constants.HelmwaveFilePatterns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected = []string{
		explicit,
		filepath.Join(dir, "envs/prod_helmwave.yml"),
		filepath.Join(dir, "envs/staging/staging-helmwave.yaml"),
	}
	if !reflect.DeepEqual(files, expected) {
		t.Errorf("got %v, want %v", files, expected)
	}
}

func TestFindHelmwaveFilesMissingPath(t *testing.T) {
	if _, err := FindHelmwaveFiles([]string{filepath.Join(t.TempDir(), "nope")}, constants.HelmwaveFilePatterns); err == nil {
		t.Error("expected an error for a missing path")
	}
}
