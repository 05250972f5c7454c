package source

import "github.com/formsource/prefill/pkg/model"

// Identifiers and path prefixes for the built-in global property groups
const (
	ActionPropertiesID   = "global-action-properties"
	ActionPropertiesName = "Action Properties"
	ActionPathPrefix     = "Action"
	OrgPropertiesID      = "global-organization-properties"
	OrgPropertiesName    = "Organization Properties"
	OrgPathPrefix        = "Organization"
)

// GlobalSource exposes a flat group of named string properties (workflow
// metadata, organization metadata) as prefill candidates. Property names
// arrive in snake_case and are rendered as Title Case labels; every field is
// typed text because the underlying values carry no type information.
type GlobalSource struct {
	id         string
	name       string
	pathPrefix string
	properties []string
}

// NewGlobalSource creates a global source for one property group.
func NewGlobalSource(id, name, pathPrefix string, properties []string) *GlobalSource {
	return &GlobalSource{
		id:         id,
		name:       name,
		pathPrefix: pathPrefix,
		properties: properties,
	}
}

// NewActionProperties wraps the workflow/action property group.
func NewActionProperties(properties []string) *GlobalSource {
	return NewGlobalSource(ActionPropertiesID, ActionPropertiesName, ActionPathPrefix, properties)
}

// NewOrganizationProperties wraps the organization property group.
func NewOrganizationProperties(properties []string) *GlobalSource {
	return NewGlobalSource(OrgPropertiesID, OrgPropertiesName, OrgPathPrefix, properties)
}

func (s *GlobalSource) ID() string         { return s.id }
func (s *GlobalSource) Name() string       { return s.name }
func (s *GlobalSource) Category() Category { return CategoryGlobal }

// ListFields maps each property name to a text field in group order.
func (s *GlobalSource) ListFields() []DataField {
	fields := make([]DataField, 0, len(s.properties))
	for _, prop := range s.properties {
		label := TitleLabel(prop)
		fields = append(fields, DataField{
			ID:    prop,
			Label: label,
			Type:  model.FieldTypeText,
			Path:  s.pathPrefix + "." + label,
		})
	}
	return fields
}
