package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/formsource/prefill/pkg/categorize"
	"github.com/formsource/prefill/pkg/cycles"
	"github.com/formsource/prefill/pkg/graph"
	"github.com/formsource/prefill/pkg/graphdoc"
	"github.com/formsource/prefill/pkg/logging"
	"github.com/formsource/prefill/pkg/model"
	"github.com/formsource/prefill/pkg/pubsub"
	"github.com/formsource/prefill/pkg/source"
)

//go:embed static/*
var staticFiles embed.FS

// GraphNode represents a form in the graph API payload
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// GraphEdge represents a dependency edge in the graph API payload
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// GraphData holds the dependency graph for visualization
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// FormSummary is the list-endpoint view of a form
type FormSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	FieldCount   int      `json:"fieldCount"`
	Dependencies []string `json:"dependencies"`
}

// SourceInfo is the API view of one data source bucket entry
type SourceInfo struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Category string             `json:"category"`
	Fields   []source.DataField `json:"fields"`
}

// SourcesResponse is the three-bucket categorization payload
type SourcesResponse struct {
	Direct     []SourceInfo `json:"direct"`
	Transitive []SourceInfo `json:"transitive"`
	Global     []SourceInfo `json:"global"`
}

// Server serves the form graph API
type Server struct {
	router    *mux.Router
	publisher pubsub.Publisher

	mu       sync.RWMutex
	graph    *model.Graph
	snapshot *categorize.Snapshot
}

// NewServer creates a new web server
func NewServer() *Server {
	ssePublisher := pubsub.NewSSEPublisher()

	// New subscribers only need the current graph state, not its history
	ssePublisher.ConfigureTopic(pubsub.TopicGraph, pubsub.TopicConfig{
		BufferSize: 5,
		ReplayAll:  false,
	})

	s := &Server{
		router:    mux.NewRouter(),
		publisher: ssePublisher,
	}
	s.setupRoutes()
	return s
}

// SetDocument swaps in a newly loaded graph and snapshot, publishing a diff
// against the previous graph to subscribed clients.
func (s *Server) SetDocument(g *model.Graph, snapshot *categorize.Snapshot) {
	s.mu.Lock()
	old := s.graph
	s.graph = g
	s.snapshot = snapshot
	s.mu.Unlock()

	diff := graphdoc.Diff(old, g)
	if diff.Empty() {
		return
	}

	eventType := "reloaded"
	if diff.Full {
		eventType = "loaded"
	}
	if err := s.publisher.Publish(pubsub.TopicGraph, eventType, diff); err != nil {
		logging.Warn("failed to publish graph event", "error", err)
	}
	if err := s.publisher.Publish(pubsub.TopicGraph, "status", s.status(g)); err != nil {
		logging.Warn("failed to publish graph status", "error", err)
	}
}

func (s *Server) status(g *model.Graph) pubsub.GraphStatus {
	return pubsub.GraphStatus{
		Forms:  len(g.Forms),
		Edges:  g.EdgeCount(),
		Cycles: len(cycles.Find(g)),
		Loaded: true,
	}
}

func (s *Server) setupRoutes() {
	// SSE subscription endpoint
	s.router.HandleFunc("/api/subscribe/graph", s.handleSubscribeGraph).Methods("GET")

	// API routes - more specific routes must come first
	s.router.HandleFunc("/api/forms/{id}/sources", s.handleFormSources).Methods("GET")
	s.router.HandleFunc("/api/forms", s.handleForms).Methods("GET")
	s.router.HandleFunc("/api/graph", s.handleGraph).Methods("GET")
	s.router.HandleFunc("/api/cycles", s.handleCycles).Methods("GET")

	// Serve static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logging.Fatal("failed to open embedded static files", "error", err)
	}
	s.router.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))
}

func (s *Server) handleSubscribeGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Initial comment establishes the connection (Safari compatibility)
	fmt.Fprintf(w, ": connected\n\n")
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	sub, err := s.publisher.Subscribe(r.Context(), pubsub.TopicGraph)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer sub.Close()

	for event := range sub.Events() {
		if err := pubsub.WriteSSE(w, event); err != nil {
			logging.Debug("SSE client went away", "error", err)
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

func (s *Server) handleForms(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]FormSummary, 0)
	if s.graph != nil {
		for _, id := range s.graph.IDs() {
			form, _ := s.graph.Get(id)
			summaries = append(summaries, FormSummary{
				ID:           form.ID,
				Name:         form.Name,
				FieldCount:   len(form.Fields),
				Dependencies: form.Dependencies,
			})
		}
	}

	json.NewEncoder(w).Encode(summaries)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	s.mu.RLock()
	defer s.mu.RUnlock()

	data := &GraphData{Nodes: []GraphNode{}, Edges: []GraphEdge{}}
	if s.graph != nil {
		fg := graph.Build(s.graph)
		for _, node := range fg.Nodes() {
			data.Nodes = append(data.Nodes, GraphNode{ID: node.ID, Label: node.Name})
		}
		for _, edge := range fg.Edges() {
			data.Edges = append(data.Edges, GraphEdge{Source: edge[0], Target: edge[1]})
		}
	}

	json.NewEncoder(w).Encode(data)
}

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	s.mu.RLock()
	defer s.mu.RUnlock()

	found := []cycles.FormCycle{}
	if s.graph != nil {
		found = cycles.Find(s.graph)
	}

	json.NewEncoder(w).Encode(found)
}

func (s *Server) handleFormSources(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	formID := mux.Vars(r)["id"]

	s.mu.RLock()
	g := s.graph
	snapshot := s.snapshot
	s.mu.RUnlock()

	if g == nil {
		http.Error(w, "Graph not loaded", http.StatusServiceUnavailable)
		return
	}
	if _, ok := g.Get(formID); !ok {
		http.Error(w, fmt.Sprintf("Form %q not found", formID), http.StatusNotFound)
		return
	}

	result := categorize.Categorize(formID, g, snapshot)

	json.NewEncoder(w).Encode(SourcesResponse{
		Direct:     sourceInfos(result.Direct),
		Transitive: sourceInfos(result.Transitive),
		Global:     sourceInfos(result.Global),
	})
}

// sourceInfos flattens data sources into their API representation. Field
// listings are produced at request time so clients never see stale fields.
func sourceInfos(sources []source.DataSource) []SourceInfo {
	infos := make([]SourceInfo, 0, len(sources))
	for _, src := range sources {
		infos = append(infos, SourceInfo{
			ID:       src.ID(),
			Name:     src.Name(),
			Category: string(src.Category()),
			Fields:   src.ListFields(),
		})
	}
	return infos
}

// Start runs the HTTP server on the given port
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logging.Info("starting web server", "addr", fmt.Sprintf("http://localhost%s", addr))
	return http.ListenAndServe(addr, logging.RequestIDMiddleware(s.router))
}

// Router exposes the mux router, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}
