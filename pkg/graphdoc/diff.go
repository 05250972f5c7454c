package graphdoc

import (
	"sort"

	"github.com/formsource/prefill/pkg/model"
)

// GraphDiff describes how a reloaded graph differs from its predecessor. It
// is published to subscribed UI clients so they can refresh incrementally
// instead of refetching the whole graph.
type GraphDiff struct {
	AddedForms   []string    `json:"addedForms"`
	RemovedForms []string    `json:"removedForms"`
	AddedEdges   [][2]string `json:"addedEdges"`   // [from, to] form ID pairs
	RemovedEdges [][2]string `json:"removedEdges"` // [from, to] form ID pairs
	Full         bool        `json:"full"`         // True when there is no predecessor to diff against
}

// Empty reports whether the diff carries no changes
func (d *GraphDiff) Empty() bool {
	return !d.Full &&
		len(d.AddedForms) == 0 && len(d.RemovedForms) == 0 &&
		len(d.AddedEdges) == 0 && len(d.RemovedEdges) == 0
}

// Diff computes the change set between two graphs. A nil old graph produces
// a full diff listing everything in new.
func Diff(old, new *model.Graph) *GraphDiff {
	newEdges := edgeSet(new)

	if old == nil {
		diff := &GraphDiff{Full: true, AddedForms: new.IDs()}
		for edge := range newEdges {
			diff.AddedEdges = append(diff.AddedEdges, edge)
		}
		sortEdges(diff.AddedEdges)
		return diff
	}

	diff := &GraphDiff{}

	for _, id := range new.IDs() {
		if _, exists := old.Get(id); !exists {
			diff.AddedForms = append(diff.AddedForms, id)
		}
	}
	for _, id := range old.IDs() {
		if _, exists := new.Get(id); !exists {
			diff.RemovedForms = append(diff.RemovedForms, id)
		}
	}

	oldEdges := edgeSet(old)
	for edge := range newEdges {
		if !oldEdges[edge] {
			diff.AddedEdges = append(diff.AddedEdges, edge)
		}
	}
	for edge := range oldEdges {
		if !newEdges[edge] {
			diff.RemovedEdges = append(diff.RemovedEdges, edge)
		}
	}
	sortEdges(diff.AddedEdges)
	sortEdges(diff.RemovedEdges)

	return diff
}

func edgeSet(g *model.Graph) map[[2]string]bool {
	edges := make(map[[2]string]bool)
	if g == nil {
		return edges
	}
	for _, form := range g.Forms {
		for _, dep := range form.Dependencies {
			edges[[2]string{form.ID, dep}] = true
		}
	}
	return edges
}

func sortEdges(edges [][2]string) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
}
