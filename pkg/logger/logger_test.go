package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("json格式", func(t *testing.T) {
		l, err := New(Options{Level: "warn", Format: "json", Output: "stderr"})
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("默认console格式", func(t *testing.T) {
		l, err := New(Options{})
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("无效配置", func(t *testing.T) {
		_, err := New(Options{Level: "verbose"})
		assert.Error(t, err)

		_, err = New(Options{Format: "xml"})
		assert.Error(t, err)
	})
}

func TestInit(t *testing.T) {
	before := zap.L()

	flush, err := Init(Options{Level: "debug", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	assert.NotSame(t, before, zap.L())

	flush()
	assert.Same(t, before, zap.L())
}
