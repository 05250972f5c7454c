package resolver

import (
	"github.com/formsource/prefill/pkg/model"
)

// HasCycle reports whether the graph contains any dependency cycle. Every
// form is tried as a DFS root because the graph is neither single-rooted nor
// necessarily connected. Dependencies on forms absent from the graph are dead
// ends and never contribute to a cycle.
func HasCycle(graph *model.Graph) bool {
	if graph == nil {
		return false
	}

	visited := make(map[string]bool)
	onPath := make(map[string]bool)

	var visit func(id string) bool
	visit = func(id string) bool {
		visited[id] = true
		onPath[id] = true
		defer delete(onPath, id)

		form, ok := graph.Get(id)
		if !ok {
			return false
		}
		for _, dep := range form.Dependencies {
			if onPath[dep] {
				return true
			}
			if !visited[dep] && visit(dep) {
				return true
			}
		}
		return false
	}

	for _, id := range graph.IDs() {
		if !visited[id] && visit(id) {
			return true
		}
	}
	return false
}
