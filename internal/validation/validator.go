// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrorCode is the API error code for failed request validation.
const ErrorCode = "VALIDATION_FAILED"

// FieldError is one failed rule. Field is the JSON name.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Value   interface{}
	Message string
}

// Errors collects every failed rule for one request.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return strings.Join(e.messages(), "; ")
}

func (e Errors) messages() []string {
	out := make([]string, len(e))
	for i := range e {
		out[i] = e[i].Message
	}
	return out
}

// APIError is the error body handed to the HTTP layer. It mirrors the api
// package's error object to avoid an import cycle.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts the failures to a VALIDATION_FAILED error. A single
// failure is reported flat; several are listed under "fields".
func (e Errors) ToAPIError() *APIError {
	apiErr := &APIError{Code: ErrorCode, Message: e.Error()}
	switch len(e) {
	case 0:
		apiErr.Message = "Validation failed"
	case 1:
		apiErr.Details = map[string]interface{}{
			"field": e[0].Field,
			"tag":   e[0].Tag,
			"value": e[0].Value,
		}
	default:
		fields := make([]map[string]interface{}, len(e))
		for i, fe := range e {
			fields[i] = map[string]interface{}{"field": fe.Field, "tag": fe.Tag, "message": fe.Message}
		}
		apiErr.Details = map[string]interface{}{"fields": fields}
	}
	return apiErr
}

var (
	shared     *validator.Validate
	sharedOnce sync.Once
)

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	sharedOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		// Registration only fails for an empty tag or nil func.
		_ = v.RegisterValidation("obstime", isObservationTime)
		shared = v
	})
	return shared
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// isObservationTime accepts RFC 3339 with optional fractional seconds.
func isObservationTime(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.RFC3339Nano, fl.Field().String())
	return err == nil
}

// ValidateStruct validates s and returns nil or the collected failures.
func ValidateStruct(s interface{}) Errors {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Field: "unknown", Tag: "unknown", Message: err.Error()}}
	}

	out := make(Errors, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: describe(fe),
		}
	}
	return out
}

// messages are keyed by tag; %[1]s is the field, %[2]s the rule parameter.
var messages = map[string]string{
	"required":  "%[1]s is required",
	"obstime":   "%[1]s must be an RFC3339 timestamp",
	"latitude":  "%[1]s must be a valid latitude (-90 to 90)",
	"longitude": "%[1]s must be a valid longitude (-180 to 180)",
	"oneof":     "%[1]s must be one of: %[2]s",
	"gte":       "%[1]s must be greater than or equal to %[2]s",
	"lte":       "%[1]s must be less than or equal to %[2]s",
	"gt":        "%[1]s must be greater than %[2]s",
	"lt":        "%[1]s must be less than %[2]s",
}

func describe(fe validator.FieldError) string {
	if msg, ok := messages[fe.Tag()]; ok {
		if !strings.Contains(msg, "%[2]s") {
			return fmt.Sprintf(msg, fe.Field())
		}
		return fmt.Sprintf(msg, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
