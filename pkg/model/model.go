package model

// FieldType represents the input type of a form field
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeDate     FieldType = "date"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeButton   FieldType = "button"
	FieldTypeObject   FieldType = "object"
	FieldTypeNumber   FieldType = "number"
)

// Field represents a single typed, labeled slot within a form
type Field struct {
	ID    string    `json:"id"`    // Unique within the owning form
	Label string    `json:"label"` // Human-readable label (e.g., "Email Address")
	Type  FieldType `json:"type"`  // One of the FieldType constants
}

// Form represents a node in the dependency graph: a named container of fields
// together with the identifiers of the forms it depends on.
type Form struct {
	ID           string   `json:"id"`                     // Unique form identifier
	Name         string   `json:"name"`                   // Display name (e.g., "Form B")
	Fields       []Field  `json:"fields,omitempty"`       // Ordered field list
	Dependencies []string `json:"dependencies,omitempty"` // IDs of forms this form depends on
}

// HasDependency reports whether the form declares a direct dependency on id
func (f *Form) HasDependency(id string) bool {
	for _, dep := range f.Dependencies {
		if dep == id {
			return true
		}
	}
	return false
}

// FieldByID returns the field with the given identifier, or nil if absent
func (f *Form) FieldByID(id string) *Field {
	for i := range f.Fields {
		if f.Fields[i].ID == id {
			return &f.Fields[i]
		}
	}
	return nil
}
