package form

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"faceconsole/internal/capture"
	"faceconsole/internal/constants"
)

var (
	phoneRe = regexp.MustCompile(`^[0-9]{10}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// fieldLabel turns a field name into a human-readable label for messages.
func fieldLabel(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// validateField returns an error message for one field value, or empty when
// the value passes. Required fields must be non-empty; format kinds (phone,
// email, select) are checked whenever a value is present.
func validateField(field Field, value string) string {
	value = strings.TrimSpace(value)

	if value == "" {
		if field.Required {
			return fmt.Sprintf("%s is required", fieldLabel(field.Name))
		}
		return ""
	}

	switch field.Kind {
	case KindPhone:
		if !phoneRe.MatchString(value) {
			return fmt.Sprintf("%s must be exactly %d digits", fieldLabel(field.Name), constants.PhoneDigits)
		}
	case KindEmail:
		if !emailRe.MatchString(value) {
			return fmt.Sprintf("%s is not a valid email address", fieldLabel(field.Name))
		}
	case KindSelect:
		if !slices.Contains(field.Options, value) {
			return fmt.Sprintf("%s must be one of: %s", fieldLabel(field.Name), strings.Join(field.Options, ", "))
		}
	case KindBool:
		if value != "1" && value != "0" {
			return fmt.Sprintf("%s must be set or unset", fieldLabel(field.Name))
		}
	}

	return ""
}

// validateImage checks the photo section requirements: an image must be
// present in exactly one acquisition mode, within the size bound, and in an
// accepted format.
func validateImage(image *capture.Acquisition) string {
	if image == nil || !image.HasImage() {
		return "photo is required"
	}
	if image.Size() > constants.MaxImageBytes {
		return fmt.Sprintf("photo exceeds the %d MiB limit", constants.MaxImageBytes>>20)
	}
	if !slices.Contains(constants.AllowedImageMIMEs, image.MIME()) {
		return "photo must be a JPEG or PNG image"
	}
	return ""
}
