// Package validation holds the shared validator used for request payloads and
// entity patches.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/northbeam-studio/studio-admin/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// Struct validates dest and returns a VALIDATION_ERROR whose details map each
// failing field to a human message.
func Struct(dest any) error {
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	return messageFor(ruleName(fe.Tag()), fe.Param())
}

// ruleName reduces a failed tag to the rule worth reporting. Optional fields
// are tagged "eq=|rule", which validator reports as "eq|rule=param"; the empty
// alternative says nothing useful, so the remaining rule is used.
func ruleName(tag string) string {
	var rules []string
	for _, alt := range strings.Split(tag, "|") {
		name, _, _ := strings.Cut(alt, "=")
		if name != "eq" {
			rules = append(rules, name)
		}
	}
	if len(rules) != 1 {
		return tag
	}
	return rules[0]
}

func messageFor(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", param)
	case "max":
		return fmt.Sprintf("must be at most %s", param)
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", param)
	case "email":
		return "must be a valid email"
	case "url", "uri":
		return "must be a valid URL"
	case "semver":
		return "must be a semantic version"
	}
	return "is invalid"
}
