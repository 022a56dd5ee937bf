package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_SetsLevel(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	l, err := New("warn")
	require.NoError(t, err)
	assert.Same(t, l, Log)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	_, err := New("loud")
	assert.Error(t, err)
	assert.Equal(t, prev, Log)
}
