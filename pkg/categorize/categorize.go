// Package categorize produces the three prefill source buckets (direct,
// transitive, global) for a target form. This is the main integration point
// the UI consumes.
package categorize

import (
	"github.com/formsource/prefill/pkg/model"
	"github.com/formsource/prefill/pkg/resolver"
	"github.com/formsource/prefill/pkg/source"
)

// PropertyGroup is one named group of global properties, e.g. the workflow
// action metadata or the organization metadata. Property names are
// snake_case; the path prefix qualifies every field the group exposes.
type PropertyGroup struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	PathPrefix string   `json:"pathPrefix"`
	Properties []string `json:"properties"`
}

// Snapshot is the global property state captured at categorization time.
type Snapshot struct {
	Groups []PropertyGroup `json:"groups"`
}

// NewSnapshot builds a snapshot with the two built-in groups. Empty groups
// are omitted.
func NewSnapshot(actionProperties, orgProperties []string) *Snapshot {
	s := &Snapshot{}
	if len(actionProperties) > 0 {
		s.Groups = append(s.Groups, PropertyGroup{
			ID:         source.ActionPropertiesID,
			Name:       source.ActionPropertiesName,
			PathPrefix: source.ActionPathPrefix,
			Properties: actionProperties,
		})
	}
	if len(orgProperties) > 0 {
		s.Groups = append(s.Groups, PropertyGroup{
			ID:         source.OrgPropertiesID,
			Name:       source.OrgPropertiesName,
			PathPrefix: source.OrgPathPrefix,
			Properties: orgProperties,
		})
	}
	return s
}

// Result holds the categorized sources for one target form. Buckets are
// ordered: direct and transitive follow resolver discovery order, global
// follows snapshot group order.
type Result struct {
	Direct     []source.DataSource
	Transitive []source.DataSource
	Global     []source.DataSource
}

// Categorize computes the source buckets for the target form. An empty
// target yields three empty buckets (the "nothing selected" state). A
// dependency identifier with no form record is silently dropped from the
// direct and transitive buckets. The function is pure and idempotent:
// identical inputs produce value-equal results, and each call works against
// its own registry, so concurrent invocations share no state.
func Categorize(target string, graph *model.Graph, snapshot *Snapshot) Result {
	if target == "" || graph == nil {
		return Result{}
	}

	registry := source.NewRegistry()
	for _, id := range graph.IDs() {
		form, _ := graph.Get(id)
		registry.Register(source.NewFormSource(form.ID, form.Name, form))
	}
	if snapshot != nil {
		for _, group := range snapshot.Groups {
			registry.Register(source.NewGlobalSource(
				group.ID, group.Name, group.PathPrefix, group.Properties))
		}
	}

	return Result{
		Direct:     lookup(registry, resolver.Direct(target, graph)),
		Transitive: lookup(registry, resolver.Transitive(target, graph)),
		Global:     registry.GetByCategory(source.CategoryGlobal),
	}
}

// lookup maps resolved identifiers to registered sources, dropping any
// identifier without a record and preserving the input order.
func lookup(registry *source.Registry, ids []string) []source.DataSource {
	var sources []source.DataSource
	for _, id := range ids {
		if src, ok := registry.Get(id); ok {
			sources = append(sources, src)
		}
	}
	return sources
}
