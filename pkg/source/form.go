package source

import "github.com/formsource/prefill/pkg/model"

// FormSource exposes a form's own fields as prefill candidates. Field paths
// are qualified with the form's display name.
type FormSource struct {
	id   string
	name string
	form *model.Form
}

// NewFormSource wraps a form behind the DataSource interface.
func NewFormSource(id, name string, form *model.Form) *FormSource {
	return &FormSource{
		id:   id,
		name: name,
		form: form,
	}
}

func (s *FormSource) ID() string         { return s.id }
func (s *FormSource) Name() string       { return s.name }
func (s *FormSource) Category() Category { return CategoryForm }

// ListFields maps the form's fields 1:1 in declaration order. No filtering
// and no deduplication is applied.
func (s *FormSource) ListFields() []DataField {
	if s.form == nil {
		return nil
	}

	fields := make([]DataField, 0, len(s.form.Fields))
	for _, f := range s.form.Fields {
		fields = append(fields, DataField{
			ID:    f.ID,
			Label: f.Label,
			Type:  f.Type,
			Path:  s.name + "." + f.Label,
		})
	}
	return fields
}
