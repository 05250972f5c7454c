// Package resolver computes which forms a given form depends on by walking
// the dependency graph. All functions are pure: they never mutate the graph
// and hold no state between calls.
package resolver

import (
	"github.com/formsource/prefill/pkg/model"
)

// All returns every form identifier reachable from target via dependency
// edges, in breadth-first discovery order. The target itself is never part of
// the result, even when a cycle leads back to it. Identifiers that point at
// forms absent from the graph are still reported; they simply expand no
// further. Visited-set deduplication guarantees termination on cyclic input.
func All(target string, graph *model.Graph) []string {
	if graph == nil {
		return nil
	}

	var result []string
	seen := make(map[string]bool)

	queue := []string{target}
	visited := map[string]bool{target: true}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		form, ok := graph.Get(current)
		if !ok {
			// Dangling reference, nothing to expand
			continue
		}

		for _, dep := range form.Dependencies {
			if dep != target && !seen[dep] {
				seen[dep] = true
				result = append(result, dep)
			}
			if !visited[dep] {
				visited[dep] = true
				queue = append(queue, dep)
			}
		}
	}

	return result
}

// Direct returns the target form's declared dependencies, deduplicated and in
// declaration order. An absent target yields an empty result.
func Direct(target string, graph *model.Graph) []string {
	if graph == nil {
		return nil
	}

	form, ok := graph.Get(target)
	if !ok {
		return nil
	}

	var result []string
	seen := make(map[string]bool)
	for _, dep := range form.Dependencies {
		if seen[dep] {
			continue
		}
		seen[dep] = true
		result = append(result, dep)
	}
	return result
}

// Transitive returns the forms reachable from target in two or more hops that
// are not also direct dependencies. A form reachable both directly and via a
// longer path counts as direct, never transitive.
func Transitive(target string, graph *model.Graph) []string {
	direct := make(map[string]bool)
	for _, id := range Direct(target, graph) {
		direct[id] = true
	}

	var result []string
	for _, id := range All(target, graph) {
		if !direct[id] {
			result = append(result, id)
		}
	}
	return result
}
