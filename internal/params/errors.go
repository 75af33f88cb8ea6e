package params

import "errors"

var (
	// ErrArity is returned when a value array has the wrong number of entries.
	ErrArity = errors.New("parameter value has wrong arity")

	// ErrValueType is returned when a value entry has the wrong JSON type.
	ErrValueType = errors.New("parameter value has wrong type")

	// ErrMalformed is returned when a parameter file is not valid JSON.
	ErrMalformed = errors.New("malformed parameter document")

	// ErrDuplicateName is returned by Validate for names registered twice.
	ErrDuplicateName = errors.New("duplicate parameter name")

	// ErrInvalidBinding is returned by Validate for unnamed or targetless bindings.
	ErrInvalidBinding = errors.New("invalid parameter binding")
)
