package validation

import (
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"handly/internal/domain/entity"
)

const minPasswordLength = 8

var (
	personNamePattern = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ\s]+$`)
	mailAddrPattern   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.(com|br)$`)
	// Short form is a CPF, long form a CNPJ. Punctuation is not stripped.
	taxIDPattern = regexp.MustCompile(`^\d{11}$|^\d{14}$`)
)

// newPresenceValidator builds the validator for the fail-fast phase. The
// "identifier" tag applies notblank when requireIdentifier is set or when the
// sibling Role field names a role that must carry an identifier.
func newPresenceValidator(requireIdentifier bool) *validator.Validate {
	v := newValidator("presence")
	mustRegister(v, "notblank", notBlank)
	mustRegister(v, "identifier", func(fl validator.FieldLevel) bool {
		if !requireIdentifier && !siblingRole(fl).RequiresIdentifier() {
			return true
		}

		return notBlank(fl)
	})

	return v
}

func siblingRole(fl validator.FieldLevel) entity.Role {
	parent := fl.Parent()
	if parent.Kind() == reflect.Pointer {
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return ""
	}

	field := parent.FieldByName("Role")
	if !field.IsValid() || field.Kind() != reflect.String {
		return ""
	}

	return entity.Role(field.String())
}

func newFormatValidator() *validator.Validate {
	v := newValidator("format")
	mustRegister(v, "personname", matches(personNamePattern))
	mustRegister(v, "mailaddr", matches(mailAddrPattern))
	mustRegister(v, "taxid", matches(taxIDPattern))
	mustRegister(v, "password", password)
	mustRegister(v, "role", role)

	return v
}

func newValidator(tagName string) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName(tagName)
	// Report fields by their wire name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn, true); err != nil {
		panic(err)
	}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// password requires at least eight characters that are not all ASCII digits.
func password(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if utf8.RuneCountInString(s) < minPasswordLength {
		return false
	}

	return strings.ContainsFunc(s, func(r rune) bool { return r < '0' || r > '9' })
}

func role(fl validator.FieldLevel) bool {
	_, ok := entity.ParseRole(fl.Field().String())

	return ok
}
