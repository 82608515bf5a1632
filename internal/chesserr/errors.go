// Package chesserr defines the closed error taxonomy used across
// ChessBuddy (spec §7): every fallible operation returns either success or
// one of these types, and callers use errors.As to branch on it.
package chesserr

import "fmt"

// ParseError is a malformed PGN structure, missing required header, or bad
// FEN string. Fatal to the enclosing game; ingestion continues with the
// next game.
type ParseError struct {
	GameIndex int
	Reason    string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in game %d: %s", e.GameIndex, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// InvalidMoveError is a SAN token the engine cannot resolve. Fatal to the
// enclosing game.
type InvalidMoveError struct {
	Ply    int
	SAN    string
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move at ply %d (%q): %s", e.Ply, e.SAN, e.Reason)
}

// DatabaseError wraps a failure from the persistence layer. Retriable at
// the batch level when Transient is true.
type DatabaseError struct {
	Op        string
	Err       error
	Transient bool
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error during %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// EmbedderError is raised by a position or text embedder call. Transient
// errors (timeout, rate limit) leave the position persisted without an
// embedding; permanent errors omit the embedding with a warning.
type EmbedderError struct {
	FEN       string
	Err       error
	Transient bool
}

func (e *EmbedderError) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}
	return fmt.Sprintf("%s embedder error for fen %q: %v", kind, e.FEN, e.Err)
}

func (e *EmbedderError) Unwrap() error { return e.Err }

// ValidationError covers invariant violations caught before they reach
// storage (wrong embedding dimension, confidence outside [0,1], ...).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Reason)
}

// ConfigError is a missing or invalid configuration value. Fatal to the
// process.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error on %s: %s", e.Field, e.Reason)
}
