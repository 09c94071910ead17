package handler

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator builds the validator shared by all handlers. The
// composition root creates one instance and injects it into each
// handler — a *validator.Validate caches struct metadata, so sharing it
// is both cheaper and safe (it's concurrency-safe by design).
//
// RegisterTagNameFunc makes validation errors report the JSON field name
// from the struct tag instead of the Go field name, so a failed rule on
// EmailAddress surfaces to the client as "emailAddress".
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
