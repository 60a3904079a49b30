package validation

import (
	"fmt"
	"strings"
)

// Kind is a machine-readable violation category, stable across the API.
type Kind string

const (
	KindMissing    Kind = "missing"
	KindNotInEnum  Kind = "not_in_enum"
	KindOutOfRange Kind = "out_of_range"
	KindTooShort   Kind = "too_short"
	KindTooLong    Kind = "too_long"
	KindNotUnique  Kind = "not_unique"
	KindNotFound   Kind = "not_found"
)

// Violation is a single failed rule on a single field.
type Violation struct {
	Field string `json:"field"`
	Kind  Kind   `json:"kind"`
}

// Errors aggregates every violation found on a candidate record.
// Callers surface violations field by field; nothing stops at the first.
type Errors struct {
	Violations []Violation
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Kind))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *Errors) add(field string, kind Kind) {
	e.Violations = append(e.Violations, Violation{Field: field, Kind: kind})
}

// orNil returns the aggregate as an error, or nil when nothing failed.
func (e *Errors) orNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

// NewConflict builds a validation-shaped failure for a uniqueness conflict
// reported by the storage layer.
func NewConflict(field string) *Errors {
	return &Errors{Violations: []Violation{{Field: field, Kind: KindNotUnique}}}
}

// NewDanglingReference builds a validation-shaped failure for a foreign key
// that points at a record the storage layer could not find.
func NewDanglingReference(field string) *Errors {
	return &Errors{Violations: []Violation{{Field: field, Kind: KindNotFound}}}
}
