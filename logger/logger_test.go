package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNopLoggerBeforeInitialize(t *testing.T) {
	require.NotNil(t, Logger, "package init should install a no-op logger")
	// Must not panic
	Debugf("reload trace %d", 1)
	Infow("fetch", "path", "/library/sections")
}

func TestInitializeJSON(t *testing.T) {
	err := Initialize(true)
	require.NoError(t, err)
	assert.True(t, JSONOutput)
	assert.NotNil(t, Logger)
	Cleanup()
}

func TestInitializeConsoleAtDebug(t *testing.T) {
	err := InitializeAtLevel(false, zapcore.DebugLevel)
	require.NoError(t, err)
	assert.False(t, JSONOutput)
	Debugw("reloading for attr", "variant", "Movie", "attr", "summary")
	Cleanup()
}

func TestNamed(t *testing.T) {
	require.NoError(t, Initialize(true))
	sub := Named("object.fetch")
	assert.NotNil(t, sub)
	Cleanup()
}
