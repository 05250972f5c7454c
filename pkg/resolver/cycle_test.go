package resolver

import (
	"testing"
)

func TestHasCycle_Acyclic(t *testing.T) {
	if HasCycle(diamondGraph()) {
		t.Error("Expected no cycle in diamond graph")
	}
}

func TestHasCycle_TwoNodeCycle(t *testing.T) {
	g := buildGraph(map[string][]string{
		"A": {"B"},
		"B": {"A"},
	})

	if !HasCycle(g) {
		t.Error("Expected cycle in A<->B graph")
	}
}

func TestHasCycle_ThreeNodeCycle(t *testing.T) {
	g := buildGraph(map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"A"},
	})

	if !HasCycle(g) {
		t.Error("Expected cycle in A->B->C->A graph")
	}
}

func TestHasCycle_SelfReference(t *testing.T) {
	g := buildGraph(map[string][]string{
		"A": {"A"},
	})

	if !HasCycle(g) {
		t.Error("Expected self-reference to count as a cycle")
	}
}

func TestHasCycle_DisconnectedCycle(t *testing.T) {
	// Cycle lives in a component unreachable from the lexically first root
	g := buildGraph(map[string][]string{
		"A": {"B"},
		"B": nil,
		"X": {"Y"},
		"Y": {"X"},
	})

	if !HasCycle(g) {
		t.Error("Expected cycle in disconnected component to be found")
	}
}

func TestHasCycle_DanglingReferenceIsNotACycle(t *testing.T) {
	g := buildGraph(map[string][]string{
		"A": {"ghost"},
	})

	if HasCycle(g) {
		t.Error("Dangling dependency must be treated as a dead end, not a cycle")
	}
}

func TestHasCycle_SharedDependencyIsNotACycle(t *testing.T) {
	// Two paths converging on the same node is a DAG, not a cycle
	if HasCycle(diamondGraph()) {
		t.Error("Diamond-shaped DAG misreported as cyclic")
	}
}

func TestHasCycle_EmptyGraph(t *testing.T) {
	g := buildGraph(nil)

	if HasCycle(g) {
		t.Error("Expected no cycle in empty graph")
	}
}
