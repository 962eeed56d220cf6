package services

import "fmt"

// UnknownItemError is returned by catalog lookups for an id that is not in
// the category (or, with an empty Category, not in the extras set).
type UnknownItemError struct {
	Category Category
	ID       string
}

func (e *UnknownItemError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("unknown extra %q", e.ID)
	}
	return fmt.Sprintf("unknown %s item %q", e.Category, e.ID)
}

// InvalidConfigurationError reports the first selection or extra that makes
// a Configuration unpriceable.
type InvalidConfigurationError struct {
	Category Category // empty for extras
	ID       string
	Reason   string
}

func (e *InvalidConfigurationError) Error() string {
	switch {
	case e.Category == "" && e.ID != "":
		return fmt.Sprintf("invalid configuration: %s %q", e.Reason, e.ID)
	case e.ID == "":
		return fmt.Sprintf("invalid configuration: %s: %s", e.Category, e.Reason)
	default:
		return fmt.Sprintf("invalid configuration: %s %q: %s", e.Category, e.ID, e.Reason)
	}
}

// UnknownPresetError is returned when resolving an id outside the preset book.
type UnknownPresetError struct {
	ID string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown preset %q", e.ID)
}

// SerializationError wraps failures to encode or decode a structured export.
type SerializationError struct {
	Op  string // "encode" or "decode"
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("quote export %s: %v", e.Op, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
