package form

import (
	"faceconsole/internal/capture"
)

// Draft is one in-progress registration. It moves through the schema's
// sections in order; advancing is gated on the current section's required
// fields only. Navigation never mutates field values.
type Draft struct {
	schema  *Schema
	fields  map[string]string
	image   *capture.Acquisition
	section int
	errs    []string
}

// NewDraft creates an empty draft for the given schema.
func NewDraft(schema *Schema) *Draft {
	return &Draft{
		schema: schema,
		fields: make(map[string]string),
		image:  capture.NewAcquisition(),
	}
}

// Schema returns the category schema this draft follows.
func (d *Draft) Schema() *Schema {
	return d.schema
}

// SetField replaces one field value. It has no validation side effect;
// validation happens on GoNext and on final submission.
func (d *Draft) SetField(name, value string) {
	d.fields[name] = value
}

// SetBool stores a boolean field in its wire form ("1"/"0").
func (d *Draft) SetBool(name string, value bool) {
	if value {
		d.fields[name] = "1"
	} else {
		d.fields[name] = "0"
	}
}

// Field returns one field value, empty when unset.
func (d *Draft) Field(name string) string {
	return d.fields[name]
}

// Fields returns a copy of all set field values.
func (d *Draft) Fields() map[string]string {
	out := make(map[string]string, len(d.fields))
	for name, value := range d.fields {
		out[name] = value
	}
	return out
}

// Image returns the draft's photo acquisition state.
func (d *Draft) Image() *capture.Acquisition {
	return d.image
}

// Section returns the current 0-based section index.
func (d *Draft) Section() int {
	return d.section
}

// CurrentSection returns the schema section the draft is on.
func (d *Draft) CurrentSection() Section {
	return d.schema.Sections[d.section]
}

// OnLastSection reports whether the draft is on the final (photo) section.
// The last section has no next action; it exposes submission instead.
func (d *Draft) OnLastSection() bool {
	return d.section == len(d.schema.Sections)-1
}

// Errors returns the validation messages for the current section, one per
// missing or malformed required field.
func (d *Draft) Errors() []string {
	return d.errs
}

// GoNext validates the current section and advances on success. On failure
// the index stays put and Errors is populated. Returns whether the draft
// advanced. Calling GoNext on the last section is a no-op.
func (d *Draft) GoNext() bool {
	if d.OnLastSection() {
		return false
	}

	errs := d.ValidateSection(d.section)
	if len(errs) > 0 {
		d.errs = errs
		return false
	}

	d.section++
	d.errs = nil
	return true
}

// GoPrev retreats one section and clears errors. Returns false when already
// on the first section.
func (d *Draft) GoPrev() bool {
	if d.section == 0 {
		return false
	}
	d.section--
	d.errs = nil
	return true
}

// Reset returns the draft to its initial empty state regardless of position.
func (d *Draft) Reset() {
	d.fields = make(map[string]string)
	d.image = capture.NewAcquisition()
	d.section = 0
	d.errs = nil
}

// ValidateSection runs the validation table for one section and returns the
// messages, one per failing field. The photo section additionally checks the
// image presence, size, and format.
func (d *Draft) ValidateSection(index int) []string {
	section := d.schema.Sections[index]

	var errs []string
	for _, field := range section.Fields {
		if msg := validateField(field, d.fields[field.Name]); msg != "" {
			errs = append(errs, msg)
		}
	}
	if section.Photo {
		if msg := validateImage(d.image); msg != "" {
			errs = append(errs, msg)
		}
	}
	return errs
}

// ValidateFinal re-validates the last section. The submission pipeline calls
// this as defense in depth even though the UI gates navigation.
func (d *Draft) ValidateFinal() []string {
	return d.ValidateSection(len(d.schema.Sections) - 1)
}
