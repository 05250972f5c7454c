package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/spf13/pflag"

	"github.com/formsource/prefill/pkg/categorize"
	"github.com/formsource/prefill/pkg/config"
	"github.com/formsource/prefill/pkg/cycles"
	"github.com/formsource/prefill/pkg/graphdoc"
	"github.com/formsource/prefill/pkg/logging"
	"github.com/formsource/prefill/pkg/model"
	"github.com/formsource/prefill/pkg/output"
	"github.com/formsource/prefill/pkg/resolver"
	"github.com/formsource/prefill/pkg/watcher"
	"github.com/formsource/prefill/pkg/web"
)

func main() {
	flags := pflag.NewFlagSet("prefill-analyzer", pflag.ExitOnError)
	flags.String("graph", "forms.json", "Path to the form graph document")
	flags.String("target", "", "Form to report on (CLI mode; empty = all forms)")
	flags.Bool("web", false, "Start web server instead of printing to console")
	flags.Int("port", 8080, "Port for web server (only used with --web)")
	flags.Bool("watch", false, "Reload the graph document when it changes (web mode)")
	flags.Bool("open", true, "Open the browser when starting web mode")
	flags.CountP("verbose", "v", "Increase logging verbosity")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case cfg.VerboseCnt >= 2 || cfg.Verbosity == "debug":
		logging.SetLevel(slog.LevelDebug)
	case cfg.VerboseCnt == 1:
		logging.SetLevel(slog.LevelInfo)
	}

	graph, snapshot, err := graphdoc.Load(cfg.GraphFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.WebMode {
		runWebMode(cfg, graph, snapshot)
	} else {
		runReport(cfg, graph, snapshot)
	}
}

// runReport prints the categorized source report to the console
func runReport(cfg *config.Config, graph *model.Graph, snapshot *categorize.Snapshot) {
	output.PrintGraphSummary(cfg.GraphFile, graph)
	output.PrintCycleWarnings(cycles.Find(graph))

	targets := graph.IDs()
	if cfg.Target != "" {
		if _, ok := graph.Get(cfg.Target); !ok {
			fmt.Fprintf(os.Stderr, "Error: form %q not found in %s\n", cfg.Target, cfg.GraphFile)
			os.Exit(1)
		}
		targets = []string{cfg.Target}
	}

	for _, target := range targets {
		result := categorize.Categorize(target, graph, snapshot)
		output.PrintSourceReport(target, graph, result)
	}
}

// runWebMode serves the API and optionally watches the document for changes
func runWebMode(cfg *config.Config, graph *model.Graph, snapshot *categorize.Snapshot) {
	if resolver.HasCycle(graph) {
		logging.Warn("graph document contains dependency cycles",
			"cycles", len(cycles.Find(graph)))
	}

	server := web.NewServer()
	server.SetDocument(graph, snapshot)

	go func() {
		if err := server.Start(cfg.Port); err != nil {
			logging.Fatal("web server failed", "error", err)
		}
	}()

	url := fmt.Sprintf("http://localhost:%d", cfg.Port)
	if cfg.OpenBrowser {
		time.Sleep(500 * time.Millisecond)
		openBrowser(url)
	}

	ctx := context.Background()
	if cfg.Watch {
		if err := watchDocument(ctx, cfg.GraphFile, server); err != nil {
			logging.Error("failed to start document watcher", "error", err)
		}
	}

	logging.Info("serving form graph", "url", url,
		"forms", len(graph.Forms), "edges", graph.EdgeCount())

	// Block forever (server runs in goroutine)
	select {}
}

// watchDocument reloads the graph document on change and pushes the update
// to the server
func watchDocument(ctx context.Context, path string, server *web.Server) error {
	dw, err := watcher.NewDocumentWatcher(path)
	if err != nil {
		return err
	}
	if err := dw.Start(ctx); err != nil {
		return err
	}

	debouncer := watcher.NewDebouncer(dw.Events(), 200*time.Millisecond, 2*time.Second)
	debouncer.Start(ctx)

	go func() {
		for range debouncer.Events() {
			graph, snapshot, err := graphdoc.Load(path)
			if err != nil {
				logging.Warn("ignoring unreadable graph document", "error", err)
				continue
			}
			logging.Info("graph document reloaded",
				"forms", len(graph.Forms), "edges", graph.EdgeCount())
			server.SetDocument(graph, snapshot)
		}
	}()

	return nil
}

func openBrowser(url string) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "linux":
		cmd = "xdg-open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		logging.Warn("cannot open browser on platform", "platform", runtime.GOOS)
		return
	}

	if err := exec.Command(cmd, args...).Start(); err != nil {
		logging.Warn("failed to open browser", "error", err)
	}
}
