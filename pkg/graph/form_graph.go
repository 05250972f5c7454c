package graph

import (
	"github.com/formsource/prefill/pkg/model"
	"gonum.org/v1/gonum/graph/simple"
)

// FormNode represents a form in the dependency graph
type FormNode struct {
	ID   string // Form identifier
	Name string // Display name
}

// FormGraph is the gonum-backed view of the form dependency graph. It powers
// cycle enumeration and the web graph endpoint; the resolver works directly
// on the model.Graph and does not need it.
type FormGraph struct {
	graph  *simple.DirectedGraph
	nodes  map[string]*FormNode // Map from form ID to node
	ids    map[string]int64     // Map from form ID to gonum node ID
	byID   map[int64]string     // Reverse map from gonum node ID to form ID
	nextID int64
}

// NewFormGraph creates a new empty form dependency graph
func NewFormGraph() *FormGraph {
	return &FormGraph{
		graph: simple.NewDirectedGraph(),
		nodes: make(map[string]*FormNode),
		ids:   make(map[string]int64),
		byID:  make(map[int64]string),
	}
}

// AddForm adds a form node to the graph. Adding an existing ID is a no-op.
func (fg *FormGraph) AddForm(id, name string) {
	if _, exists := fg.nodes[id]; exists {
		return
	}

	fg.nodes[id] = &FormNode{ID: id, Name: name}
	fg.ids[id] = fg.nextID
	fg.byID[fg.nextID] = id
	fg.graph.AddNode(simple.Node(fg.nextID))
	fg.nextID++
}

// AddDependency adds a dependency edge from source to target, creating nodes
// as needed. Self-edges are skipped because gonum's simple graph rejects
// them; the resolver still tolerates self-references at the model level.
func (fg *FormGraph) AddDependency(source, target string) {
	if source == target {
		return
	}

	fg.AddForm(source, source)
	fg.AddForm(target, target)

	sourceID := fg.ids[source]
	targetID := fg.ids[target]

	if !fg.graph.HasEdgeFromTo(sourceID, targetID) {
		edge := fg.graph.NewEdge(fg.graph.Node(sourceID), fg.graph.Node(targetID))
		fg.graph.SetEdge(edge)
	}
}

// GetNode returns a form node by identifier
func (fg *FormGraph) GetNode(id string) (*FormNode, bool) {
	node, exists := fg.nodes[id]
	return node, exists
}

// GetNodeByID returns a form node by its gonum node ID
func (fg *FormGraph) GetNodeByID(id int64) *FormNode {
	formID, ok := fg.byID[id]
	if !ok {
		return nil
	}
	return fg.nodes[formID]
}

// Graph returns the underlying directed graph
func (fg *FormGraph) Graph() *simple.DirectedGraph {
	return fg.graph
}

// Nodes returns all form nodes in the graph
func (fg *FormGraph) Nodes() []*FormNode {
	nodes := make([]*FormNode, 0, len(fg.nodes))
	for _, node := range fg.nodes {
		nodes = append(nodes, node)
	}
	return nodes
}

// Edges returns all dependency edges as [source, target] form ID pairs
func (fg *FormGraph) Edges() [][2]string {
	var edges [][2]string

	iter := fg.graph.Edges()
	for iter.Next() {
		edge := iter.Edge()
		edges = append(edges, [2]string{
			fg.byID[edge.From().ID()],
			fg.byID[edge.To().ID()],
		})
	}

	return edges
}

// Dependencies returns the IDs of the forms the given form depends on
func (fg *FormGraph) Dependencies(id string) []string {
	nodeID, exists := fg.ids[id]
	if !exists {
		return nil
	}

	var deps []string
	iter := fg.graph.From(nodeID)
	for iter.Next() {
		deps = append(deps, fg.byID[iter.Node().ID()])
	}
	return deps
}

// Build constructs a FormGraph from the model graph. Dependencies on forms
// without a record still become nodes so the edge structure is complete.
func Build(g *model.Graph) *FormGraph {
	fg := NewFormGraph()

	for _, id := range g.IDs() {
		form, _ := g.Get(id)
		fg.AddForm(form.ID, form.Name)
	}
	for _, id := range g.IDs() {
		form, _ := g.Get(id)
		for _, dep := range form.Dependencies {
			fg.AddDependency(form.ID, dep)
		}
	}

	return fg
}
