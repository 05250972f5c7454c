package cycles

import (
	"github.com/formsource/prefill/pkg/graph"
	"github.com/formsource/prefill/pkg/model"
)

// FormCycle represents a circular dependency between forms
type FormCycle struct {
	Forms []string `json:"forms"` // Form identifiers participating in the cycle
}

// FindFormCycles enumerates all circular dependencies in the form graph. It
// complements resolver.HasCycle, which only answers yes/no: here each cycle's
// membership is reported so the UI can point at the offending forms.
// Self-references are not reported; the resolver already refuses to classify
// a form as its own dependency.
func FindFormCycles(fg *graph.FormGraph) []FormCycle {
	tarjan := NewTarjanSCC(fg.Graph())
	sccs := tarjan.FindSCCs()

	cycles := make([]FormCycle, 0)
	for _, scc := range sccs {
		forms := make([]string, 0, len(scc))
		for _, nodeID := range scc {
			if node := fg.GetNodeByID(nodeID); node != nil {
				forms = append(forms, node.ID)
			}
		}

		if len(forms) > 1 {
			cycles = append(cycles, FormCycle{Forms: forms})
		}
	}

	return cycles
}

// Find builds the gonum view of the model graph and enumerates its cycles
func Find(g *model.Graph) []FormCycle {
	return FindFormCycles(graph.Build(g))
}
