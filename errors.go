package vstools

import (
	"fmt"
)

// RangeError reports a value or bit depth outside the supported bounds.
type RangeError struct {
	Name   string
	Value  any
	Reason string
}

func (e RangeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s(%v) out of range: %s", e.Name, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s(%v) out of range", e.Name, e.Value)
}

// UndefinedMetadataError reports that a strict metadata lookup found the
// field absent or set to its "unspecified" sentinel.
type UndefinedMetadataError struct {
	Field  string
	Reason string
}

func (e UndefinedMetadataError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s is undefined: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s is undefined", e.Field)
}

// UnsupportedValueError reports an enum code the host framework may emit but
// this library does not accept. Reserved is set when the code point is
// reserved by the governing standard rather than merely unknown.
type UnsupportedValueError struct {
	Name     string
	Value    any
	Reserved bool
	Reason   string
}

func (e UnsupportedValueError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("%s(%v) is unsupported: %s", e.Name, e.Value, e.Reason)
	case e.Reserved:
		return fmt.Sprintf("%s(%v) is reserved", e.Name, e.Value)
	}
	return fmt.Sprintf("%s(%v) is unsupported", e.Name, e.Value)
}

// FramePropError reports a missing or wrongly-typed frame property.
type FramePropError struct {
	Key    string
	Detail string
}

func (e FramePropError) Error() string {
	return fmt.Sprintf("frame prop %q: %s", e.Key, e.Detail)
}
