package source

import "sync"

// Registry stores data sources keyed by identifier while preserving
// registration order. It is pure storage: no validation beyond
// identifier-keyed overwrite. The categorizer builds a fresh registry per
// call, so instances are never shared across categorization requests.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]DataSource
	order   []string // registration order of identifiers
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]DataSource),
	}
}

// Register inserts a source by its ID. Re-registering an identifier replaces
// the source but keeps its original position in the registration order.
func (r *Registry) Register(src DataSource) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := src.ID()
	if _, exists := r.sources[id]; !exists {
		r.order = append(r.order, id)
	}
	r.sources[id] = src
}

// Get retrieves a source by identifier.
func (r *Registry) Get(id string) (DataSource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src, ok := r.sources[id]
	return src, ok
}

// GetAll returns all sources in registration order.
func (r *Registry) GetAll() []DataSource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]DataSource, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.sources[id])
	}
	return all
}

// GetByCategory returns the sources with the given category, preserving
// registration order.
func (r *Registry) GetByCategory(category Category) []DataSource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []DataSource
	for _, id := range r.order {
		if src := r.sources[id]; src.Category() == category {
			filtered = append(filtered, src)
		}
	}
	return filtered
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sources)
}

// Clear drops every registered source.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sources = make(map[string]DataSource)
	r.order = nil
}
