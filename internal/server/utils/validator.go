package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// queryValidator checks bound query structs. Field names in errors come from
// the form tag, so they match the query parameter the caller sent.
var queryValidator = newQueryValidator()

// coordinateRanges bounds the custom coordinate tags, in degrees.
var coordinateRanges = map[string][2]float64{
	"latitude":  {-90, 90},
	"longitude": {-180, 180},
}

func newQueryValidator() *validator.Validate {
	v := validator.New()

	for tag, bounds := range coordinateRanges {
		lo, hi := bounds[0], bounds[1]
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			deg := fl.Field().Float()
			return deg >= lo && deg <= hi
		})
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// ValidationError describes one rejected query parameter.
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value"`
	Tag     string      `json:"tag"`
	Message string      `json:"message"`
}

// ValidateStruct returns one entry per failed rule, or nil when s is valid.
func ValidateStruct(s interface{}) []ValidationError {
	err := queryValidator.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{Tag: "invalid", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Value:   fe.Value(),
			Tag:     fe.Tag(),
			Message: describe(fe),
		})
	}
	return out
}

func describe(fe validator.FieldError) string {
	if bounds, ok := coordinateRanges[fe.Tag()]; ok {
		return fmt.Sprintf("%s must be a %s between %g and %g degrees", fe.Field(), fe.Tag(), bounds[0], bounds[1])
	}

	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters long"
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", fe.Field(), fe.Param(), unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", fe.Field(), fe.Param(), unit)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
