// Package source provides a uniform field-listing view over forms and global
// property groups, so a prefill UI can treat both interchangeably.
package source

import "github.com/formsource/prefill/pkg/model"

// Category classifies a data source for bucket placement in the UI
type Category string

const (
	CategoryForm   Category = "form"
	CategoryGlobal Category = "global"
	CategoryCustom Category = "custom"
)

// DataField is a single prefill candidate exposed by a data source
type DataField struct {
	ID    string          `json:"id"`
	Label string          `json:"label"`
	Type  model.FieldType `json:"type"`
	Path  string          `json:"path"` // e.g., "Form B.Email" or "Action.Created At"
}

// DataSource is anything that can list prefill candidate fields. Sources are
// cheap value wrappers constructed fresh per categorization request; they
// hold no mutable state.
type DataSource interface {
	// ID returns the stable source identifier
	ID() string

	// Name returns the display name
	Name() string

	// Category returns the bucket classification
	Category() Category

	// ListFields returns the prefill candidates in a stable order
	ListFields() []DataField
}
