package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format    string
		expectErr bool
	}{
		{"", false},
		{"text", false},
		{"json", false},
		{"JSON", true},
		{"yaml", true},
		{"text ", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := validateFormat(tt.format)
			if tt.expectErr && err == nil {
				t.Errorf("validateFormat(%q) expected error but got none", tt.format)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("validateFormat(%q) unexpected error: %v", tt.format, err)
			}
			if tt.expectErr && err != nil && !strings.Contains(err.Error(), "invalid format value '"+tt.format+"'") {
				t.Errorf("unexpected error message: %v", err)
			}
		})
	}
}

func TestCommandSetup(t *testing.T) {
	if rootCmd.Use == "" || rootCmd.Short == "" || rootCmd.Long == "" {
		t.Error("root command should have use, short and long descriptions")
	}

	for _, name := range []string{"validate", "outline", "mcp", "version"} {
		t.Run(name, func(t *testing.T) {
			found := false
			for _, cmd := range rootCmd.Commands() {
				if cmd.Name() == name {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("%s command should be available", name)
			}
		})
	}

	if rootCmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("verbose flag should be registered")
	}
	if validateCmd.Flags().Lookup("fail-on-warning") == nil {
		t.Error("fail-on-warning flag should be registered")
	}
}

func TestRootCommandHelp(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"--help"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs([]string{})
	}()

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("root command help failed: %v", err)
	}
	if !strings.Contains(buf.String(), "validate") {
		t.Errorf("help should list the validate command, got:\n%s", buf.String())
	}
}

func TestValidateCommandRejectsBadFormat(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "helmwave.yml")
	if err := os.WriteFile(file, []byte("project: demo\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rootCmd.SetArgs([]string{"validate", file, "--format", "xml"})
	defer rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "invalid format value 'xml'") {
		t.Errorf("expected format error, got %v", err)
	}
}
