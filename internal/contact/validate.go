package contact

import (
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Submission field names as they appear in request bodies and error lists.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// Length bounds, counted in characters after trimming.
const (
	NameMinLen    = 2
	NameMaxLen    = 100
	EmailMaxLen   = 255
	MessageMinLen = 10
	MessageMaxLen = 1000
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})

	return validateInst
}

// fieldCheck normalizes a trimmed value and returns a violation message, or ""
// when the value is acceptable.
type fieldCheck func(v string) (string, string)

var fields = []struct {
	key   string
	label string
	check fieldCheck
}{
	{FieldName, "Name", checkName},
	{FieldEmail, "Email", checkEmail},
	{FieldMessage, "Message", checkMessage},
}

func checkName(v string) (string, string) {
	return v, checkLength(v, "Name", NameMinLen, NameMaxLen)
}

func checkEmail(v string) (string, string) {
	if utf8.RuneCountInString(v) > EmailMaxLen {
		return v, "Email must be less than 255 characters"
	}

	if err := validatorInstance().Var(v, "required,email"); err != nil {
		return v, "Invalid email address"
	}

	return strings.ToLower(v), ""
}

func checkMessage(v string) (string, string) {
	return v, checkLength(v, "Message", MessageMinLen, MessageMaxLen)
}

func checkLength(v, label string, minLen, maxLen int) string {
	n := utf8.RuneCountInString(v)

	switch {
	case n < minLen:
		return label + " must be at least " + strconv.Itoa(minLen) + " characters"
	case n > maxLen:
		return label + " must be less than " + strconv.Itoa(maxLen) + " characters"
	default:
		return ""
	}
}

// Validate checks a raw submission. Each field is trimmed, length checked and,
// for the email, shape checked and lowercased. The first violation of a field
// stops that field; all fields are always checked so every violation is
// reported together.
func Validate(raw map[string]any) (Submission, error) {
	var (
		values     = make(map[string]string, len(fields))
		violations []FieldError
	)

	for _, f := range fields {
		v, msg := stringField(raw, f.key, f.label)
		if msg == "" {
			v, msg = f.check(strings.TrimSpace(v))
		}

		if msg != "" {
			violations = append(violations, FieldError{Field: f.key, Message: msg})
			continue
		}

		values[f.key] = v
	}

	if len(violations) > 0 {
		return Submission{}, &ValidationError{Fields: violations}
	}

	return Submission{
		Name:    values[FieldName],
		Email:   values[FieldEmail],
		Message: values[FieldMessage],
	}, nil
}

// ValidateSubmission validates an already typed submission.
func ValidateSubmission(s Submission) (Submission, error) {
	return Validate(s.Map())
}

// Map returns the submission as a raw field map.
func (s Submission) Map() map[string]any {
	return map[string]any{
		FieldName:    s.Name,
		FieldEmail:   s.Email,
		FieldMessage: s.Message,
	}
}

func stringField(raw map[string]any, key, label string) (string, string) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", label + " is required"
	}

	s, ok := v.(string)
	if !ok {
		return "", label + " must be a string"
	}

	return s, ""
}
