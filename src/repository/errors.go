package repository

import (
	"errors"

	"gorm.io/gorm"

	"agentcore/src/validation"
)

// ErrNotFound is returned by mutating operations aimed at a record that
// does not exist. Finders keep the (nil, nil) convention instead.
var ErrNotFound = errors.New("record not found")

// translateCreateError maps storage-level constraint failures onto the
// validation failure shape, so callers see uniqueness and referential
// violations the same way as field-rule violations. Requires gorm's
// TranslateError option on the connection.
func translateCreateError(err error, uniqueField, refField string) error {
	if err == nil {
		return nil
	}
	if uniqueField != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
		return validation.NewConflict(uniqueField)
	}
	if refField != "" && errors.Is(err, gorm.ErrForeignKeyViolated) {
		return validation.NewDanglingReference(refField)
	}
	return err
}

// IsConflict reports whether err is a uniqueness conflict surfaced as a
// validation failure.
func IsConflict(err error) bool {
	var verr *validation.Errors
	if !errors.As(err, &verr) {
		return false
	}
	for _, v := range verr.Violations {
		if v.Kind == validation.KindNotUnique {
			return true
		}
	}
	return false
}

// IsDanglingReference reports whether err is a referential-integrity
// failure surfaced as a validation failure.
func IsDanglingReference(err error) bool {
	var verr *validation.Errors
	if !errors.As(err, &verr) {
		return false
	}
	for _, v := range verr.Violations {
		if v.Kind == validation.KindNotFound {
			return true
		}
	}
	return false
}
