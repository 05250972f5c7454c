// Package graphdoc loads form graph documents from disk. A document carries
// the full form graph plus the optional global property snapshot.
package graphdoc

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/formsource/prefill/pkg/categorize"
	"github.com/formsource/prefill/pkg/model"
)

// Document is the on-disk shape of a form graph file
type Document struct {
	Forms   []*model.Form `json:"forms"`
	Globals *Globals      `json:"globals,omitempty"`
}

// Globals holds the global property groups of a document
type Globals struct {
	Action       []string `json:"action,omitempty"`
	Organization []string `json:"organization,omitempty"`
}

// Parse decodes a graph document. Structural errors (invalid JSON, duplicate
// form IDs) fail fast; an absent globals section is not an error and simply
// yields a nil snapshot.
func Parse(data []byte) (*model.Graph, *categorize.Snapshot, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse graph document: %w", err)
	}

	graph := model.NewGraph()
	for _, form := range doc.Forms {
		if form.ID == "" {
			return nil, nil, fmt.Errorf("graph document contains a form without an id")
		}
		if _, exists := graph.Get(form.ID); exists {
			return nil, nil, fmt.Errorf("duplicate form id %q in graph document", form.ID)
		}
		graph.AddForm(form)
	}

	var snapshot *categorize.Snapshot
	if doc.Globals != nil {
		snapshot = categorize.NewSnapshot(doc.Globals.Action, doc.Globals.Organization)
	}

	return graph, snapshot, nil
}

// Load reads and parses a graph document from path
func Load(path string) (*model.Graph, *categorize.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read graph document: %w", err)
	}
	return Parse(data)
}
