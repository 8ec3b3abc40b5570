// Package schema defines declarative configuration schemas used to render
// provider forms and to validate submitted configuration.
package schema

import "strings"

// Kind is the input kind of a schema field.
type Kind string

const (
	KindText     Kind = "text"
	KindPassword Kind = "password"
	KindTextarea Kind = "textarea"
	KindNumber   Kind = "number"
	KindSelect   Kind = "select"
	KindCheckbox Kind = "checkbox"
)

// Sensitive reports whether values of this kind must be masked for display.
func (k Kind) Sensitive() bool {
	return k == KindPassword || k == KindTextarea
}

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field describes a single configuration input.
type Field struct {
	Name        string         `json:"name"`
	Label       string         `json:"label"`
	Kind        Kind           `json:"type"`
	Required    bool           `json:"required"`
	Default     any            `json:"default,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`
	Description string         `json:"description,omitempty"`
	Options     []Option       `json:"options,omitempty"`
	Min         *float64       `json:"min,omitempty"`
	Max         *float64       `json:"max,omitempty"`
	ShowIf      map[string]any `json:"showIf,omitempty"`
}

// Schema is an ordered list of fields.
type Schema struct {
	Fields []Field `json:"fields"`
}

// Empty returns a schema with no fields. Its Fields slice encodes as [] not null.
func Empty() Schema {
	return Schema{Fields: []Field{}}
}

// Key builds the composite registry key "{provider}:{auth}".
func Key(provider, auth string) string {
	return strings.ToLower(strings.TrimSpace(provider)) + ":" + strings.ToLower(strings.TrimSpace(auth))
}

// Bound returns a pointer to v for use as a Min or Max bound.
func Bound(v float64) *float64 { return &v }

// Field returns the named field.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Sensitive returns the names of password and textarea fields.
func (s Schema) Sensitive() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Kind.Sensitive() {
			names = append(names, f.Name)
		}
	}
	return names
}

// DanglingShowIf returns "field->ref" pairs whose visibility predicate
// references a field that is not part of the schema.
func (s Schema) DanglingShowIf() []string {
	var out []string
	for _, f := range s.Fields {
		for ref := range f.ShowIf {
			if _, ok := s.Field(ref); !ok {
				out = append(out, f.Name+"->"+ref)
			}
		}
	}
	return out
}

// Visible reports whether f is relevant for config given its visibility predicate.
func (f Field) Visible(config map[string]any) bool {
	for ref, want := range f.ShowIf {
		if config[ref] != want {
			return false
		}
	}
	return true
}
