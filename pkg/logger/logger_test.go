package logger

import (
	"testing"

	"github.com/SankarGaneshb/Virtuoso/pkg/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewInstallsGlobalLogger(t *testing.T) {
	zap.ReplaceGlobals(zap.NewNop())
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	cfg := &config.Config{AppEnv: "development", AppName: "virtuoso"}
	log := New(Params{Cfg: cfg})
	require.NotNil(t, log)

	// Everything below the constructors logs through the global.
	require.True(t, zap.L().Core().Enabled(zapcore.WarnLevel))
	require.True(t, zap.L().Core().Enabled(zapcore.ErrorLevel))
}

func TestBuildProductionConfig(t *testing.T) {
	log, err := build("production")
	require.NoError(t, err)
	require.False(t, log.Core().Enabled(zapcore.DebugLevel))
	require.True(t, log.Core().Enabled(zapcore.InfoLevel))
}
