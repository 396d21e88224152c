package diagnostic

import (
	"encoding/json"
	"testing"
)

func TestCollectorPreservesOrder(t *testing.T) {
	var c Collector
	c.AddError(NewRange(3, 0, 3, 4), "first")
	c.AddWarning(NewRange(0, 0, 0, 1), "second")
	c.Add(Error(NewRange(1, 0, 1, 1), "third"), Error(NewRange(1, 0, 1, 1), "third"))

	got := c.Diagnostics()
	if len(got) != 4 {
		t.Fatalf("expected 4 diagnostics, got %d", len(got))
	}
	for i, want := range []string{"first", "second", "third", "third"} {
		if got[i].Message != want {
			t.Errorf("diagnostic %d = %q, want %q", i, got[i].Message, want)
		}
	}
	if got[0].Source != "helmwave" {
		t.Errorf("expected helmwave source tag, got %q", got[0].Source)
	}

	// returned slice is a snapshot
	got[0].Message = "changed"
	if c.Diagnostics()[0].Message != "first" {
		t.Error("Diagnostics must return a copy")
	}
}

func TestCountAndHasErrors(t *testing.T) {
	diagnostics := []Diagnostic{
		Warning(Range{}, "w1"),
		Warning(Range{}, "w2"),
	}
	if HasErrors(diagnostics) {
		t.Error("warnings only must not report errors")
	}
	diagnostics = append(diagnostics, Error(Range{}, "e"))
	if !HasErrors(diagnostics) {
		t.Error("expected errors")
	}
	if Count(diagnostics, SeverityWarning) != 2 || Count(diagnostics, SeverityError) != 1 {
		t.Error("unexpected counts")
	}
}

func TestDiagnosticJSON(t *testing.T) {
	d := Warning(NewRange(1, 2, 1, 8), "Invalid repository URL format")

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"range":{"start":{"line":1,"character":2},"end":{"line":1,"character":8}},"message":"Invalid repository URL format","severity":"warning","source":"helmwave"}`
	if string(data) != want {
		t.Errorf("got %s\nwant %s", data, want)
	}

	var decoded Diagnostic
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded != d {
		t.Errorf("decoded %+v, want %+v", decoded, d)
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Error(NewRange(0, 0, 0, 7), "Missing required field: project")
	if got := d.String(); got != "1:1: error: Missing required field: project" {
		t.Errorf("unexpected string %q", got)
	}
}
