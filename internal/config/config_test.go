package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultHasDocumentedDefaults(t *testing.T) {
	cfg := Default()
	require.Equal(t, "manual", cfg.BatchLabel)
	require.Equal(t, 10, cfg.MaxPoolSize)
	require.False(t, cfg.RequireDBTests)
}

func TestValidateRequiresDBURIOnlyWhenNeeded(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate(false, false))
	require.Error(t, cfg.Validate(true, false))
}

func TestValidateRequiresPGNPathOnlyWhenNeeded(t *testing.T) {
	cfg := Default()
	require.Error(t, cfg.Validate(false, true))
	cfg.PGNPath = "games.pgn"
	require.NoError(t, cfg.Validate(false, true))
}

// TestRequireDBTestsIsIgnoredByValidate documents that RequireDBTests is a
// test-only gate (see internal/store's integration-tagged suite): it must
// never cause Validate to fail or succeed differently, since production
// code paths never read it.
func TestRequireDBTestsIsIgnoredByValidate(t *testing.T) {
	cfg := Default()
	cfg.DBURI = "postgres://localhost/chessbuddy"
	cfg.RequireDBTests = true
	require.NoError(t, cfg.Validate(true, false))
}

func TestValidateRejectsNonPositivePoolSize(t *testing.T) {
	cfg := Default()
	cfg.MaxPoolSize = 0
	require.Error(t, cfg.Validate(false, false))
}
