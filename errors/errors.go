// Package errors defines all exported error sentinels for the hamtrie library.
//
// This is the single source of truth for error values. Both the top-level
// hamtrie package and internal packages import from here, ensuring
// errors.Is checks work across package boundaries.
package errors

import "errors"

// Hash construction errors
var (
	ErrInvalidResolution = errors.New("hamtrie: bit resolution must be at least 1")
	ErrNegativeValue     = errors.New("hamtrie: hash value must be non-negative")
	ErrHashOverflow      = errors.New("hamtrie: hash value does not fit the declared bit resolution")
)

// Comparison errors
var (
	ErrResolutionMismatch = errors.New("hamtrie: hashes have different bit resolutions")
)

// Tree errors
var (
	ErrIncompatibleHash    = errors.New("hamtrie: hash algorithm differs from the tree's established algorithm")
	ErrNegativeMaxDistance = errors.New("hamtrie: max distance must be non-negative")
)
