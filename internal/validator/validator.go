package validator

import (
	"fmt"
	"strings"

	"github.com/garrettladley/moodly/internal/xerrors"
)

type Validator interface {
	// Validate validates the fields of the struct and returns a map of errors.
	// returns nil if no errors are found
	Validate() map[string]string
}

func Validate(v Validator) *xerrors.Error {
	if err := v.Validate(); err != nil {
		return xerrors.Validation(err)
	}
	return nil
}

// Fields accumulates field errors. The first error recorded for a field wins.
type Fields map[string]string

func (f Fields) Check(ok bool, field string, msg string) {
	if ok {
		return
	}
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

func (f Fields) Required(field string, value string) {
	f.Check(strings.TrimSpace(value) != "", field, field+" is required")
}

func (f Fields) IntRange(field string, value int, lo int, hi int) {
	f.Check(value >= lo && value <= hi, field, fmt.Sprintf("%s must be between %d and %d", field, lo, hi))
}

func (f Fields) FloatRange(field string, value float64, lo float64, hi float64) {
	f.Check(value >= lo && value <= hi, field, fmt.Sprintf("%s must be between %g and %g", field, lo, hi))
}

func (f Fields) OneOf(field string, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	f.Check(false, field, fmt.Sprintf("%s must be one of %s", field, strings.Join(allowed, ", ")))
}

// Map returns nil when no errors were recorded so it can be returned from Validate directly.
func (f Fields) Map() map[string]string {
	if len(f) == 0 {
		return nil
	}
	return f
}
