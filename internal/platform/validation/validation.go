// Package validation registers the custom binding rules used by request DTOs.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// TagNotBlank rejects strings that are empty after trimming whitespace.
const TagNotBlank = "notblank"

var (
	once        sync.Once
	registerErr error
)

// Register installs the custom rules on gin's validator engine.
// It is safe to call more than once.
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("validation: gin binding engine is not go-playground/validator")
			return
		}
		registerErr = v.RegisterValidation(TagNotBlank, notBlank)
	})
	return registerErr
}

// MustRegister is like Register but panics on failure.
func MustRegister() {
	if err := Register(); err != nil {
		panic(err)
	}
}

// IsValidationError reports whether err came from a failed binding rule
// rather than from malformed JSON.
func IsValidationError(err error) bool {
	var ve validator.ValidationErrors
	return errors.As(err, &ve)
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Pointer:
		if field.IsNil() {
			return false
		}
		elem := field.Elem()
		if elem.Kind() == reflect.String {
			return strings.TrimSpace(elem.String()) != ""
		}
		return !elem.IsZero()
	default:
		return !field.IsZero()
	}
}
