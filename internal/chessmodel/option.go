// Package chessmodel holds the immutable value types shared across every
// ChessBuddy subsystem: players, games, positions, FENs, batches, and
// pattern detections. Nothing in this package touches I/O.
package chessmodel

import "encoding/json"

// Option is a sum type for a value that may be absent, used for every
// optional field in the data model (§3) instead of a bare pointer so that
// zero values can't be silently mistaken for "present but empty".
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] { return Option[T]{value: v, ok: true} }

// None represents an absent value.
func None[T any]() Option[T] { return Option[T]{} }

// IsSome reports whether the option carries a value.
func (o Option[T]) IsSome() bool { return o.ok }

// Get returns the wrapped value and whether it was present.
func (o Option[T]) Get() (T, bool) { return o.value, o.ok }

// GetOr returns the wrapped value, or fallback if absent.
func (o Option[T]) GetOr(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

// MarshalJSON encodes an absent option as JSON null.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON treats JSON null as None and anything else as Some.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
