// Package form implements the multi-step registration form: one generic
// state machine parameterized by a per-category schema. The four person
// categories supply only data (section order, field table, validation
// kinds), never their own logic.
package form

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed schemas.yaml
var schemasYAML []byte

// Category identifies one registration flow.
type Category string

const (
	CategoryMan      Category = "man"
	CategoryWoman    Category = "woman"
	CategoryChild    Category = "child"
	CategoryDisabled Category = "disabled"
)

// FieldKind selects the validation predicate for a field.
type FieldKind string

const (
	KindText   FieldKind = "text"
	KindDate   FieldKind = "date"
	KindPhone  FieldKind = "phone"
	KindEmail  FieldKind = "email"
	KindBool   FieldKind = "bool"
	KindSelect FieldKind = "select"
)

// Field describes one form field.
type Field struct {
	Name     string    `yaml:"name" json:"name"`
	Kind     FieldKind `yaml:"kind" json:"kind"`
	Required bool      `yaml:"required" json:"required"`
	Options  []string  `yaml:"options" json:"options,omitempty"`
}

// Section is one page of the multi-step form. A photo section additionally
// requires an image to be present.
type Section struct {
	Name   string  `yaml:"name" json:"name"`
	Title  string  `yaml:"title" json:"title"`
	Photo  bool    `yaml:"photo" json:"photo"`
	Fields []Field `yaml:"fields" json:"fields"`
}

// Schema is the full section list for one category.
type Schema struct {
	Category Category  `yaml:"-" json:"category"`
	FormType string    `yaml:"form_type" json:"form_type"`
	Sections []Section `yaml:"sections" json:"sections"`
}

type schemaFile struct {
	Categories map[Category]*Schema `yaml:"categories"`
}

var schemas map[Category]*Schema

func init() {
	var parsed schemaFile
	if err := yaml.Unmarshal(schemasYAML, &parsed); err != nil {
		// Embedded file, so this can only fail on a bad edit to schemas.yaml
		panic("failed to unmarshal embedded schemas.yaml: " + err.Error())
	}
	for category, schema := range parsed.Categories {
		schema.Category = category
	}
	schemas = parsed.Categories
}

// Lookup returns the schema for a category.
func Lookup(category Category) (*Schema, error) {
	schema, ok := schemas[category]
	if !ok {
		return nil, fmt.Errorf("unknown registration category %q", category)
	}
	return schema, nil
}

// Categories returns all known categories in stable order.
func Categories() []Category {
	categories := make([]Category, 0, len(schemas))
	for category := range schemas {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}

// FieldNames returns every field name across all sections, in section order.
// The submission payload must carry all of them, even when empty.
func (s *Schema) FieldNames() []string {
	var names []string
	for _, section := range s.Sections {
		for _, field := range section.Fields {
			names = append(names, field.Name)
		}
	}
	return names
}

// FieldByName looks up a field definition across all sections.
func (s *Schema) FieldByName(name string) (Field, bool) {
	for _, section := range s.Sections {
		for _, field := range section.Fields {
			if field.Name == name {
				return field, true
			}
		}
	}
	return Field{}, false
}
