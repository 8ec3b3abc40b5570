package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
)

const numericPattern = `^-?[0-9]+(\.[0-9]+)?$`

// JSONSchema renders the schema as a draft-07 JSON Schema document for the
// given configuration. Fields hidden by their visibility predicate are not required.
func (s Schema) JSONSchema(config map[string]any) map[string]any {
	props := make(map[string]any, len(s.Fields))
	required := []string{}

	for _, f := range s.Fields {
		props[f.Name] = fieldSchema(f)
		if f.Required && f.Visible(config) {
			required = append(required, f.Name)
		}
	}

	return map[string]any{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func fieldSchema(f Field) map[string]any {
	p := map[string]any{}
	switch f.Kind {
	case KindNumber:
		// Form inputs may submit numbers as strings.
		p["type"] = []string{"number", "string", "null"}
		p["pattern"] = numericPattern
		if f.Min != nil {
			p["minimum"] = *f.Min
		}
		if f.Max != nil {
			p["maximum"] = *f.Max
		}
	case KindCheckbox:
		p["type"] = []string{"boolean", "null"}
	case KindSelect:
		enum := make([]any, 0, len(f.Options)+2)
		for _, o := range f.Options {
			enum = append(enum, o.Value)
		}
		if !f.Required {
			enum = append(enum, "", nil)
		}
		p["enum"] = enum
	default:
		if f.Required {
			p["type"] = "string"
			p["minLength"] = 1
		} else {
			p["type"] = []string{"string", "null"}
		}
	}
	return p
}

// Validate checks config against the schema's shape: required fields are
// present and non-empty, numbers are numeric and within bounds, select values
// are among the declared options. An empty schema accepts any config.
func (s Schema) Validate(config map[string]any) error {
	if len(s.Fields) == 0 {
		return nil
	}
	if config == nil {
		config = map[string]any{}
	}

	doc, err := json.Marshal(config)
	if err != nil {
		return domain.Validationf("Configuration is not valid JSON: %v", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(s.JSONSchema(config)),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	return domain.Validationf("%s", describe(result.Errors()))
}

// describe turns gojsonschema results into a stable, human-readable reason.
func describe(errs []gojsonschema.ResultError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.Type() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("Missing required field: %v", e.Details()["property"]))
		case "string_gte":
			msgs = append(msgs, "Missing required field: "+e.Field())
		case "enum":
			msgs = append(msgs, fmt.Sprintf("Invalid value for field: %s", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
		}
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}
