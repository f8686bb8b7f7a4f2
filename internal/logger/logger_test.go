// SPDX-License-Identifier: MIT

package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConfig(t *testing.T) {
	prod := config("production")
	require.Equal(t, "json", prod.Encoding)
	require.Equal(t, zapcore.InfoLevel, prod.Level.Level())
	require.Equal(t, "timestamp", prod.EncoderConfig.TimeKey)
	require.Equal(t, []string{"stderr"}, prod.OutputPaths)

	dev := config("development")
	require.Equal(t, "console", dev.Encoding)
	require.Equal(t, zapcore.DebugLevel, dev.Level.Level())
}

func TestNew(t *testing.T) {
	l, err := New("production")
	require.NoError(t, err)
	require.NotNil(t, l)
	Sync(l)
	Sync(nil)
}
