// Package logging wires the zap structured logger used throughout
// ChessBuddy. The component that logs, the ingestion orchestrator, takes a
// *zap.Logger (never the global one) so tests can inject zap.NewNop() and
// production wiring can choose
// encoding/level once, in cmd/chessbuddy.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-style JSON logger at the given level name
// ("debug", "info", "warn", "error"). An unrecognized level falls back to
// info.
func New(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(level)); err == nil {
		// accepted
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	return cfg.Build()
}

// Nop returns a logger that discards everything, for tests and library
// callers that don't want ChessBuddy's logs.
func Nop() *zap.Logger { return zap.NewNop() }
