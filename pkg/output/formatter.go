package output

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/formsource/prefill/pkg/categorize"
	"github.com/formsource/prefill/pkg/cycles"
	"github.com/formsource/prefill/pkg/model"
	"github.com/formsource/prefill/pkg/source"
)

// PrintSourceReport prints the categorized prefill sources for one target
// form with colors
func PrintSourceReport(target string, graph *model.Graph, result categorize.Result) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	name := target
	if form, ok := graph.Get(target); ok {
		name = form.Name
	}

	bold.Printf("Prefill sources for %s\n", name)
	bold.Println("==============================")

	printBucket("DIRECT DEPENDENCIES", result.Direct)
	printBucket("TRANSITIVE DEPENDENCIES", result.Transitive)
	printBucket("GLOBAL PROPERTIES", result.Global)

	total := len(result.Direct) + len(result.Transitive) + len(result.Global)
	cyan.Printf("Summary: %d source(s) available\n\n", total)
}

func printBucket(title string, sources []source.DataSource) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	green.Printf("%s:\n", title)
	if len(sources) == 0 {
		fmt.Println("  (none)")
		fmt.Println()
		return
	}

	for _, src := range sources {
		yellow.Printf("  %s\n", src.Name())
		for _, field := range src.ListFields() {
			fmt.Printf("    %s (%s)\n", field.Path, field.Type)
		}
	}
	fmt.Println()
}

// PrintCycleWarnings prints any dependency cycles found in the graph
func PrintCycleWarnings(found []cycles.FormCycle) {
	if len(found) == 0 {
		return
	}

	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	red.Printf("WARNING: %d dependency cycle(s) detected:\n", len(found))
	for _, cycle := range found {
		yellow.Printf("  cycle: %v\n", cycle.Forms)
	}
	fmt.Println()
}

// PrintGraphSummary prints an overview of the loaded graph
func PrintGraphSummary(path string, graph *model.Graph) {
	bold := color.New(color.Bold)

	bold.Println("Form Prefill Analyzer")
	bold.Println("=====================")
	fmt.Printf("Document: %s\n", path)
	fmt.Printf("Forms: %d\n", len(graph.Forms))
	fmt.Printf("Dependency edges: %d\n", graph.EdgeCount())
	fmt.Println()
}
