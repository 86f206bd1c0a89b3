package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestAppConstructionInstallsGlobalLogger(t *testing.T) {
	zap.ReplaceGlobals(zap.NewNop())
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	t.Setenv("DATABASE_DSN", "file:apptest?mode=memory&cache=shared")

	opts := appOptions()
	require.NoError(t, fx.ValidateApp(opts...))

	app := fx.New(opts...)
	require.NoError(t, app.Err())

	// Without the fx.WithLogger hook nothing consumes *zap.Logger, the
	// provider never runs, and every Warn/Error in the services would go
	// to zap's no-op default.
	require.True(t, zap.L().Core().Enabled(zapcore.WarnLevel))
	require.True(t, zap.L().Core().Enabled(zapcore.ErrorLevel))
}
