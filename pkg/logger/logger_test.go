package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLoggerWritesToFile(t *testing.T) {
	t.Cleanup(func() { Logger = zap.NewNop() })

	path := filepath.Join(t.TempDir(), "api.log")
	require.NoError(t, InitLogger(Options{File: path, Level: "debug"}))

	Logger.Debug("hello", zap.String("k", "v"))
	require.NoError(t, Logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"hello"`)
	require.Contains(t, string(data), `"k":"v"`)
}

func TestInitLoggerRejectsUnknownLevel(t *testing.T) {
	t.Cleanup(func() { Logger = zap.NewNop() })

	require.Error(t, InitLogger(Options{Level: "chatty"}))
}
