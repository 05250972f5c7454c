package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/formsource/prefill/pkg/categorize"
	"github.com/formsource/prefill/pkg/model"
)

func testServer() *Server {
	g := model.NewGraph()
	g.AddForm(&model.Form{ID: "a", Name: "Form A", Fields: []model.Field{
		{ID: "email", Label: "Email", Type: model.FieldTypeEmail},
	}})
	g.AddForm(&model.Form{ID: "b", Name: "Form B", Dependencies: []string{"a"}})
	g.AddForm(&model.Form{ID: "c", Name: "Form C", Dependencies: []string{"b"}})

	s := NewServer()
	s.SetDocument(g, categorize.NewSnapshot([]string{"status"}, nil))
	return s
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleForms(t *testing.T) {
	rec := get(t, testServer(), "/api/forms")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var forms []FormSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &forms); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(forms) != 3 {
		t.Errorf("Expected 3 forms, got %d", len(forms))
	}
}

func TestHandleFormSources(t *testing.T) {
	rec := get(t, testServer(), "/api/forms/c/sources")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp SourcesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(resp.Direct) != 1 || resp.Direct[0].ID != "b" {
		t.Errorf("Expected direct bucket [b], got %+v", resp.Direct)
	}
	if len(resp.Transitive) != 1 || resp.Transitive[0].ID != "a" {
		t.Errorf("Expected transitive bucket [a], got %+v", resp.Transitive)
	}
	if len(resp.Global) != 1 {
		t.Errorf("Expected 1 global source, got %d", len(resp.Global))
	}

	// Transitive source a exposes its field with a qualified path
	if len(resp.Transitive) == 1 {
		fields := resp.Transitive[0].Fields
		if len(fields) != 1 || fields[0].Path != "Form A.Email" {
			t.Errorf("Expected field path Form A.Email, got %+v", fields)
		}
	}
}

func TestHandleFormSources_UnknownForm(t *testing.T) {
	rec := get(t, testServer(), "/api/forms/ghost/sources")

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown form, got %d", rec.Code)
	}
}

func TestHandleFormSources_NoDocument(t *testing.T) {
	rec := get(t, NewServer(), "/api/forms/a/sources")

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 before first document load, got %d", rec.Code)
	}
}

func TestHandleGraph(t *testing.T) {
	rec := get(t, testServer(), "/api/graph")

	var data GraphData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(data.Nodes) != 3 {
		t.Errorf("Expected 3 nodes, got %d", len(data.Nodes))
	}
	if len(data.Edges) != 2 {
		t.Errorf("Expected 2 edges, got %d", len(data.Edges))
	}
}

func TestHandleCycles_NoneInDAG(t *testing.T) {
	rec := get(t, testServer(), "/api/cycles")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("Expected empty cycle list, got %s", body)
	}
}
