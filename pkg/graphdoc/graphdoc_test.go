package graphdoc

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleDoc = `{
  "forms": [
    {"id": "a", "name": "Form A", "fields": [
      {"id": "email", "label": "Email", "type": "email"}
    ]},
    {"id": "b", "name": "Form B", "dependencies": ["a"]}
  ],
  "globals": {
    "action": ["status", "created_at"],
    "organization": ["org_name"]
  }
}`

func TestParse_FullDocument(t *testing.T) {
	graph, snapshot, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(graph.Forms) != 2 {
		t.Errorf("Expected 2 forms, got %d", len(graph.Forms))
	}

	b, ok := graph.Get("b")
	if !ok {
		t.Fatal("Form b missing from graph")
	}
	if len(b.Dependencies) != 1 || b.Dependencies[0] != "a" {
		t.Errorf("Expected b to depend on [a], got %v", b.Dependencies)
	}

	if snapshot == nil {
		t.Fatal("Expected snapshot from globals section")
	}
	if len(snapshot.Groups) != 2 {
		t.Errorf("Expected 2 property groups, got %d", len(snapshot.Groups))
	}
}

func TestParse_NoGlobals(t *testing.T) {
	graph, snapshot, err := Parse([]byte(`{"forms": [{"id": "a", "name": "A"}]}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(graph.Forms) != 1 {
		t.Errorf("Expected 1 form, got %d", len(graph.Forms))
	}
	if snapshot != nil {
		t.Error("Expected nil snapshot when globals section is absent")
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, _, err := Parse([]byte(`{"forms": [`)); err == nil {
		t.Error("Expected error for truncated JSON")
	}
}

func TestParse_DuplicateFormID(t *testing.T) {
	doc := `{"forms": [{"id": "a", "name": "A"}, {"id": "a", "name": "A again"}]}`
	if _, _, err := Parse([]byte(doc)); err == nil {
		t.Error("Expected error for duplicate form id")
	}
}

func TestParse_MissingFormID(t *testing.T) {
	if _, _, err := Parse([]byte(`{"forms": [{"name": "Anonymous"}]}`)); err == nil {
		t.Error("Expected error for form without id")
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	graph, snapshot, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(graph.Forms) != 2 || snapshot == nil {
		t.Errorf("Unexpected load result: %d forms, snapshot=%v", len(graph.Forms), snapshot)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
