package entities

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

var notBlank = validation.Match(regexp.MustCompile(`\S`)).Error("must not be blank")

// ValidationError lists the offending fields of a rejected input, keyed by
// their JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// wrapValidation converts ozzo validation errors into a ValidationError.
// Other errors are returned unchanged.
func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	fields := make(map[string]string, len(errs))
	for name, fieldErr := range errs {
		if fieldErr != nil {
			fields[name] = fieldErr.Error()
		}
	}
	return &ValidationError{Fields: fields}
}
