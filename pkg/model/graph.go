package model

import "sort"

// Graph represents the full form dependency graph, keyed by form identifier.
// It is constructed once per document load and treated as read-only by every
// consumer; the resolver and categorizer never mutate it.
type Graph struct {
	Forms map[string]*Form `json:"forms"`
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		Forms: make(map[string]*Form),
	}
}

// AddForm adds a form to the graph. If a form with the same ID exists, it is
// replaced.
func (g *Graph) AddForm(form *Form) {
	g.Forms[form.ID] = form
}

// Get returns the form with the given identifier.
func (g *Graph) Get(id string) (*Form, bool) {
	form, ok := g.Forms[id]
	return form, ok
}

// IDs returns all form identifiers in sorted order. Sorting keeps traversal
// roots and API output deterministic across runs.
func (g *Graph) IDs() []string {
	ids := make([]string, 0, len(g.Forms))
	for id := range g.Forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EdgeCount returns the total number of declared dependency edges, including
// edges that point at forms absent from the graph.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, form := range g.Forms {
		n += len(form.Dependencies)
	}
	return n
}
