package cycles

import (
	"testing"

	"github.com/formsource/prefill/pkg/graph"
	"github.com/formsource/prefill/pkg/model"
)

func TestFindFormCycles_NoCycles(t *testing.T) {
	fg := graph.NewFormGraph()

	// Simple acyclic chain: a -> b -> c
	fg.AddForm("a", "Form A")
	fg.AddForm("b", "Form B")
	fg.AddForm("c", "Form C")
	fg.AddDependency("a", "b")
	fg.AddDependency("b", "c")

	cycles := FindFormCycles(fg)

	if len(cycles) != 0 {
		t.Errorf("Expected no cycles, but found %d", len(cycles))
	}
}

func TestFindFormCycles_SimpleCycle(t *testing.T) {
	fg := graph.NewFormGraph()

	fg.AddForm("a", "Form A")
	fg.AddForm("b", "Form B")
	fg.AddDependency("a", "b")
	fg.AddDependency("b", "a")

	cycles := FindFormCycles(fg)

	if len(cycles) != 1 {
		t.Fatalf("Expected 1 cycle, but found %d", len(cycles))
	}

	cycle := cycles[0]
	if len(cycle.Forms) != 2 {
		t.Errorf("Expected cycle of length 2, got %d", len(cycle.Forms))
	}

	inCycle := make(map[string]bool)
	for _, id := range cycle.Forms {
		inCycle[id] = true
	}
	if !inCycle["a"] || !inCycle["b"] {
		t.Errorf("Expected cycle to contain a and b, got %v", cycle.Forms)
	}
}

func TestFindFormCycles_ThreeNodeCycle(t *testing.T) {
	fg := graph.NewFormGraph()

	fg.AddForm("a", "Form A")
	fg.AddForm("b", "Form B")
	fg.AddForm("c", "Form C")
	fg.AddDependency("a", "b")
	fg.AddDependency("b", "c")
	fg.AddDependency("c", "a")

	cycles := FindFormCycles(fg)

	if len(cycles) != 1 {
		t.Fatalf("Expected 1 cycle, but found %d", len(cycles))
	}
	if len(cycles[0].Forms) != 3 {
		t.Errorf("Expected cycle of length 3, got %d", len(cycles[0].Forms))
	}
}

func TestFindFormCycles_TwoIndependentCycles(t *testing.T) {
	fg := graph.NewFormGraph()

	fg.AddDependency("a", "b")
	fg.AddDependency("b", "a")
	fg.AddDependency("x", "y")
	fg.AddDependency("y", "x")

	cycles := FindFormCycles(fg)

	if len(cycles) != 2 {
		t.Errorf("Expected 2 independent cycles, found %d", len(cycles))
	}
}

func TestFind_FromModelGraph(t *testing.T) {
	g := model.NewGraph()
	g.AddForm(&model.Form{ID: "a", Name: "Form A", Dependencies: []string{"b"}})
	g.AddForm(&model.Form{ID: "b", Name: "Form B", Dependencies: []string{"a"}})
	g.AddForm(&model.Form{ID: "c", Name: "Form C", Dependencies: []string{"a"}})

	cycles := Find(g)

	if len(cycles) != 1 {
		t.Fatalf("Expected 1 cycle, found %d", len(cycles))
	}

	inCycle := make(map[string]bool)
	for _, id := range cycles[0].Forms {
		inCycle[id] = true
	}
	if inCycle["c"] {
		t.Error("Form c merely points into the cycle and must not be reported as part of it")
	}
}

func TestFind_DanglingReferenceIsNotACycle(t *testing.T) {
	g := model.NewGraph()
	g.AddForm(&model.Form{ID: "a", Name: "Form A", Dependencies: []string{"ghost"}})

	if cycles := Find(g); len(cycles) != 0 {
		t.Errorf("Expected no cycles from dangling reference, found %d", len(cycles))
	}
}
