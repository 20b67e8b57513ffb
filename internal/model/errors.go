package model

import (
	"errors"
	"fmt"
)

// Load-time errors for configuration values outside the closed enumerations.
var (
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrUnknownElement   = errors.New("unknown element")
	ErrUnknownClass     = errors.New("unknown class")
	ErrUnknownRace      = errors.New("unknown race")
	ErrUnknownSubclass  = errors.New("unknown subclass")
	ErrUnknownBuffKind  = errors.New("unknown buff kind")
	ErrUnknownItemType  = errors.New("unknown item type")
	ErrUnknownReaction  = errors.New("unknown reaction kind")
)

// parseName returns the index of name in names as T.
func parseName[T ~int8](names []string, name string, kind error) (T, error) {
	for i, n := range names {
		if n == name {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", kind, name)
}

// nameOf returns names[v] or a fallback for out-of-range values.
func nameOf[T ~int8](names []string, v T) string {
	if v < 0 || int(v) >= len(names) {
		return "unknown"
	}
	return names[v]
}
