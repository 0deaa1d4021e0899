// internal/app/system/inputval/inputval.go

// Package inputval validates request input structs using struct tags.
//
// Fields declare rules with the standard `validate` tag and a friendly
// display name with a `label` tag:
//
//	type createGroupInput struct {
//	    Title string `validate:"required,max=200" label:"Title"`
//	}
//
// Validate returns a Result whose First() message is safe to return to
// the caller verbatim.
package inputval

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report errors under the label tag name when present.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})
	return v
}

// Result collects validation failures for one input struct.
type Result struct {
	messages []string
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool { return len(r.messages) > 0 }

// First returns the first failure message, or "" when valid.
func (r Result) First() string {
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[0]
}

// All returns every failure message in field order.
func (r Result) All() []string { return r.messages }

// Validate checks input against its struct tags.
func Validate(input any) Result {
	err := validate.Struct(input)
	if err == nil {
		return Result{}
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Result{messages: []string{"Invalid input."}}
	}
	var res Result
	for _, fe := range verrs {
		res.messages = append(res.messages, message(fe))
	}
	return res
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s.", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}
