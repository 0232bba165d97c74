package exposure

import "errors"

// Declaration errors. They are programmer mistakes and surface when a type is declared,
// never while serializing.
var (
	ErrNoAttributes        = errors.New("exposure: no attribute names given")
	ErrMultiAttributeAs    = errors.New("exposure: the As option may not be used on multi-attribute exposures")
	ErrMultiAttributeBlock = errors.New("exposure: a computed value may not be used on multi-attribute exposures")
	ErrBlockWithFormatter  = errors.New("exposure: a computed value may not be combined with FormatWith")
	ErrConditionConflict   = errors.New("exposure: If and Unless are mutually exclusive")
	ErrTypeSealed          = errors.New("exposure: type is already in use and can no longer be changed")
	ErrDuplicateType       = errors.New("exposure: type already registered")
	ErrEmptyTypeName       = errors.New("exposure: type name must not be empty")
)
