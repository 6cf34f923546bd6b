package vstools

import (
	"fmt"
)

// GetProp reads a frame property with the expected type. Missing keys and
// wrongly-typed values both yield a FramePropError. Integer props stored as
// int64 (the host framework's native width) coerce to int and vice versa,
// and byte-string props coerce to string.
func GetProp[T any](obj PropsHolder, key string) (T, error) {
	var zero T

	raw, ok := obj.FrameProps()[key]
	if !ok {
		return zero, FramePropError{Key: key, Detail: "not present in props"}
	}

	if v, ok := raw.(T); ok {
		return v, nil
	}

	switch out := any(&zero).(type) {
	case *int:
		switch n := raw.(type) {
		case int64:
			*out = int(n)
			return zero, nil
		}
	case *int64:
		switch n := raw.(type) {
		case int:
			*out = int64(n)
			return zero, nil
		}
	case *float64:
		switch n := raw.(type) {
		case int:
			*out = float64(n)
			return zero, nil
		case int64:
			*out = float64(n)
			return zero, nil
		}
	case *string:
		if b, ok := raw.([]byte); ok {
			*out = string(b)
			return zero, nil
		}
	}

	return zero, FramePropError{
		Key:    key,
		Detail: fmt.Sprintf("expected type %T, got %T", zero, raw),
	}
}

// GetPropDefault is GetProp with a fallback for missing or mistyped values.
func GetPropDefault[T any](obj PropsHolder, key string, def T) T {
	if v, err := GetProp[T](obj, key); err == nil {
		return v
	}
	return def
}

// GetPropCast reads a property and passes it through a conversion. The
// conversion's error is surfaced as-is so enum validation stays typed.
func GetPropCast[T, R any](obj PropsHolder, key string, conv func(T) (R, error)) (R, error) {
	v, err := GetProp[T](obj, key)
	if err != nil {
		var zero R
		return zero, err
	}
	return conv(v)
}

// MergeProps merges the properties of all given holders into a fresh map.
// Later holders win on conflicting keys; no input is mutated.
func MergeProps(holders ...PropsHolder) FrameProps {
	out := FrameProps{}
	for _, h := range holders {
		for k, v := range h.FrameProps() {
			out[k] = v
		}
	}
	return out
}
