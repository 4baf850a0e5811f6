package contact

import "strings"

// FieldError is a single field violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every failing field of a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}

	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	return e.Message(field) != ""
}

// Message returns the violation message for field or "" if the field passed.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}

	return ""
}

// ByField returns the violations keyed by field name.
func (e *ValidationError) ByField() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Message
	}

	return out
}
