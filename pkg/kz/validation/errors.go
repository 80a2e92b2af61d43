package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error for a form field.
type ValidationError struct {
	Field   string // Field name (for UI mapping)
	Rule    string // Rule that was violated (e.g., "min", "email")
	Message string // Human-readable message
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsZero reports whether e carries no error.
func (e ValidationError) IsZero() bool {
	return e.Message == ""
}

// ValidationErrors is a collection of validation errors that can be accumulated.
type ValidationErrors []ValidationError

// Error implements the error interface, combining all error messages.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Add appends a validation error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	*e = append(*e, ValidationError{Field: field, Message: message})
}

// AddError appends err unless it is the zero value.
func (e *ValidationErrors) AddError(err ValidationError) {
	if err.IsZero() {
		return
	}
	*e = append(*e, err)
}

// ByField returns the first error message for a specific field, or empty string.
func (e ValidationErrors) ByField(field string) string {
	for _, err := range e {
		if err.Field == field {
			return err.Message
		}
	}
	return ""
}

// Fields returns all unique field names that have errors.
func (e ValidationErrors) Fields() []string {
	seen := make(map[string]bool)
	var fields []string
	for _, err := range e {
		if err.Field != "" && !seen[err.Field] {
			seen[err.Field] = true
			fields = append(fields, err.Field)
		}
	}
	return fields
}

// AsMap returns the first message per field, the shape JSON clients expect.
func (e ValidationErrors) AsMap() map[string]string {
	result := make(map[string]string, len(e))
	for _, err := range e {
		if _, ok := result[err.Field]; !ok {
			result[err.Field] = err.Message
		}
	}
	return result
}

// NewSingleError creates a ValidationErrors with a single error.
func NewSingleError(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}

// --- Predicate functions ---

var validate = validator.New()

// IsRequired checks if a string is not blank.
func IsRequired(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MinLength checks if the trimmed string has at least min characters.
func MinLength(value string, min int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) >= min
}

// MaxLength checks if the trimmed string has at most max characters.
func MaxLength(value string, max int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) <= max
}

// IsEmail checks standard email-address syntax.
func IsEmail(value string) bool {
	return validate.Var(strings.TrimSpace(value), "required,email") == nil
}

// --- Validator functions ---

// StringMinLength validates that a string has at least the minimum length.
// An empty message selects the default wording.
func StringMinLength(field, value string, min int, message string) ValidationError {
	if MinLength(value, min) {
		return ValidationError{}
	}
	if message == "" {
		message = fmt.Sprintf("must be at least %d characters", min)
	}
	return ValidationError{Field: field, Rule: "min", Message: message}
}

// StringMaxLength validates that a string does not exceed the maximum length.
func StringMaxLength(field, value string, max int) ValidationError {
	if MaxLength(value, max) {
		return ValidationError{}
	}
	return ValidationError{Field: field, Rule: "max", Message: fmt.Sprintf("must be at most %d characters", max)}
}

// Email validates email syntax. An empty message selects the default wording.
func Email(field, value, message string) ValidationError {
	if IsEmail(value) {
		return ValidationError{}
	}
	if message == "" {
		message = "must be a valid email address"
	}
	return ValidationError{Field: field, Rule: "email", Message: message}
}
