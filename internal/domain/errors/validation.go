package errors

import (
	"net/http"
	"slices"
	"strings"

	"handly/internal/errors"
)

// Rule codes reported by the validation pipeline. Each code names the field
// family it guards; the category tells which check failed.
const (
	CodeName       = "RN0001"
	CodeEmail      = "RN0002"
	CodePassword   = "RN0003"
	CodeIdentifier = "RN0004"
	CodeRole       = "RN0005"
)

// Category classifies a validation failure. Values are ordered: missing
// failures sort before format failures, which sort before conflicts.
type Category int

const (
	CategoryMissing Category = iota
	CategoryFormat
	CategoryConflict
)

var categoryNames = map[Category]string{
	CategoryMissing:  "missing",
	CategoryFormat:   "format",
	CategoryConflict: "conflict",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}

	return "unknown"
}

// MarshalText renders the category by name in JSON payloads.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a category name written by MarshalText.
func (c *Category) UnmarshalText(text []byte) error {
	for category, name := range categoryNames {
		if name == string(text) {
			*c = category

			return nil
		}
	}

	return errors.Errorf("unknown validation category %q", text)
}

// User-facing messages, shared by every rule of a category.
const (
	MessageMissing            = "Preencha todos os campos obrigatórios."
	MessageMalformed          = "Um campo não foi preenchido corretamente."
	MessageEmailTaken         = "E-mail já está cadastrado no sistema."
	MessageIdentifierTaken    = "CPF/CNPJ já está cadastrado no sistema."
	MessageInvalidCredentials = "Credenciais inválidas."
)

// ValidationError is one field-level rule violation.
type ValidationError struct {
	Field    string   `json:"field"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Category Category `json:"category"`
}

// ValidationErrors is the ordered result of a failed validation. It is an
// AppError so it can travel through the usual error path to the HTTP layer.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Field+":"+e.Code+":"+e.Category.String())
	}

	return "validation failed: " + strings.Join(parts, ", ")
}

// HTTPCode returns 400.
func (v ValidationErrors) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code.
func (v ValidationErrors) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Message returns the message of the first violation.
func (v ValidationErrors) Message() string {
	if len(v) == 0 {
		return MessageMalformed
	}

	return v[0].Message
}

// Details returns the violations themselves.
func (v ValidationErrors) Details() any {
	return []ValidationError(v)
}

// Codes lists the rule codes in order, mostly useful for assertions and logs.
func (v ValidationErrors) Codes() []string {
	codes := make([]string, len(v))
	for i, e := range v {
		codes[i] = e.Code
	}

	return codes
}

// Sorted returns a copy grouped by category. The order inside a category is
// the order in which the rules fired.
func (v ValidationErrors) Sorted() ValidationErrors {
	out := slices.Clone(v)
	slices.SortStableFunc(out, func(a, b ValidationError) int {
		return int(a.Category) - int(b.Category)
	})

	return out
}

// HasField reports whether any violation concerns field.
func (v ValidationErrors) HasField(field string) bool {
	return slices.ContainsFunc(v, func(e ValidationError) bool { return e.Field == field })
}
