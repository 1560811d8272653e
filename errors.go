// FILE: lixenwraith/params/errors.go
package params

import (
	"errors"
	"fmt"
)

var (
	// ErrDeclaration marks a field declaration that cannot be resolved.
	// It is reported before any resolution stage runs.
	ErrDeclaration = errors.New("invalid parameter declaration")
	// ErrDuplicateAlias is returned when two fields declare the same alias.
	ErrDuplicateAlias = errors.New("duplicate alias")
	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrCoercion marks a raw string that could not be converted to its field type.
	ErrCoercion = errors.New("cannot coerce value")
	// ErrUnknownMember is wrapped by enumeration coercion failures.
	ErrUnknownMember = errors.New("unknown enumeration member")

	// ErrTrustedSource marks a malformed entry in an operator controlled store.
	ErrTrustedSource = errors.New("malformed external configuration")
	// ErrValidation wraps the error returned by the validation hook.
	ErrValidation = errors.New("parameter validation failed")
)

// CoercionError describes a failed conversion of raw text into a field's type.
type CoercionError struct {
	Field string
	Raw   string
	Type  string
	Err   error
}

func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("field %s: cannot coerce %q to %s: %v", e.Field, e.Raw, e.Type, e.Err)
	}
	return fmt.Sprintf("field %s: cannot coerce %q to %s", e.Field, e.Raw, e.Type)
}

// Unwrap exposes both the ErrCoercion sentinel and the underlying parse error.
func (e *CoercionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCoercion}
	}
	return []error{ErrCoercion, e.Err}
}

// TrustedSourceError reports a fatal failure while reading an external configuration entry.
type TrustedSourceError struct {
	Field  string
	Source ExternalSource
	Key    string
	Err    error
}

func (e *TrustedSourceError) Error() string {
	return fmt.Sprintf("%s[%s] for field %s: %v", e.Source, e.Key, e.Field, e.Err)
}

func (e *TrustedSourceError) Unwrap() []error {
	return []error{ErrTrustedSource, e.Err}
}

// declarationError builds an ErrDeclaration scoped to a single field.
func declarationError(field string, format string, args ...any) error {
	return fmt.Errorf("%w: field %s: %s", ErrDeclaration, field, fmt.Sprintf(format, args...))
}
