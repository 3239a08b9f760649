package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wuwenbin0122/persona-studio/internal/models"
)

const (
	ReasonRequired  = "is required"
	ReasonNotString = "must be a string"
	ReasonNotObject = "must be a JSON object"
	reasonMaxFormat = "must be at most %s characters"
	reasonBadFormat = "is invalid"
	bodyField       = "body"
)

// FieldError names one offending field and why it was rejected.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error is returned when a persona request does not match the schema.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type fieldRule struct {
	name     string
	required bool
}

// schema lists the request fields in the order errors are reported.
var schema = []fieldRule{
	{name: "productType", required: true},
	{name: "industry", required: true},
	{name: "primaryUserGoal", required: true},
	{name: "productDescription", required: true},
	{name: "userContext"},
	{name: "challenges"},
	{name: "ethicsConsiderations"},
	{name: "trustFactors"},
	{name: "additionalNotes"},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParsePersonaRequest decodes a raw JSON body and validates it.
func ParsePersonaRequest(body []byte) (models.PersonaRequestInput, error) {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return models.PersonaRequestInput{}, &Error{Fields: []FieldError{{Field: bodyField, Reason: ReasonNotObject}}}
	}
	return ValidatePersonaRequest(fields)
}

// ValidatePersonaRequest checks an already-decoded object against the request schema.
// Optional fields that are absent, null or blank come back as nil.
func ValidatePersonaRequest(fields map[string]any) (models.PersonaRequestInput, error) {
	problems := make(map[string]string)
	values := make(map[string]*string, len(schema))

	for _, rule := range schema {
		raw, present := fields[rule.name]
		if !present || raw == nil {
			if rule.required {
				problems[rule.name] = ReasonRequired
			}
			continue
		}

		text, ok := raw.(string)
		if !ok {
			problems[rule.name] = ReasonNotString
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			if rule.required {
				problems[rule.name] = ReasonRequired
			}
			continue
		}
		values[rule.name] = &text
	}

	input := models.PersonaRequestInput{
		ProductType:          deref(values["productType"]),
		Industry:             deref(values["industry"]),
		PrimaryUserGoal:      deref(values["primaryUserGoal"]),
		ProductDescription:   deref(values["productDescription"]),
		UserContext:          values["userContext"],
		Challenges:           values["challenges"],
		EthicsConsiderations: values["ethicsConsiderations"],
		TrustFactors:         values["trustFactors"],
		AdditionalNotes:      values["additionalNotes"],
	}

	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.PersonaRequestInput{}, fmt.Errorf("validate persona request: %w", err)
		}
		for _, fe := range verrs {
			if _, seen := problems[fe.Field()]; seen {
				continue
			}
			problems[fe.Field()] = reasonFor(fe)
		}
	}

	if len(problems) > 0 {
		out := &Error{Fields: make([]FieldError, 0, len(problems))}
		for _, rule := range schema {
			if reason, ok := problems[rule.name]; ok {
				out.Fields = append(out.Fields, FieldError{Field: rule.name, Reason: reason})
			}
		}
		return models.PersonaRequestInput{}, out
	}

	return input, nil
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf(reasonMaxFormat, fe.Param())
	default:
		return reasonBadFormat
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
