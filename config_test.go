package timeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/timeline"
	"github.com/dmitrymomot/timeline/core/config"
)

// Tests in this file use t.Setenv and cannot run in parallel.

func TestLoadConfig_Defaults(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	cfg, err := timeline.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, timeline.DefaultConfig(), cfg)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("TIMELINE_NAME", "orders")
	t.Setenv("TIMELINE_LOG_LEVEL", "warning")
	t.Setenv("TIMELINE_DISABLE_PANIC_RECOVERY", "true")

	cfg, err := timeline.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "orders", cfg.Name)
	assert.Equal(t, timeline.LevelWarning, cfg.LogLevel)
	assert.True(t, cfg.DisablePanicRecovery)
}

func TestLoadConfig_InvalidLevel(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("TIMELINE_LOG_LEVEL", "shouting")

	_, err := timeline.LoadConfig()
	assert.ErrorIs(t, err, timeline.ErrInvalidLevel)
	assert.Contains(t, err.Error(), "LogLevel")
}

func TestWithConfig(t *testing.T) {
	tl, emit := timeline.New(nil, timeline.WithConfig(timeline.Config{
		Name:                 "billing",
		LogLevel:             timeline.LevelError,
		DisablePanicRecovery: true,
	}))
	assert.Equal(t, "billing", tl.Name())

	var got timeline.Level
	_, err := tl.On().Log(timeline.LogFunc(func(ctx context.Context, message string, level timeline.Level) error {
		got = level
		return nil
	}))
	require.NoError(t, err)
	require.NoError(t, emit.Log(context.Background(), "hi"))
	assert.Equal(t, timeline.LevelError, got)

	_, err = tl.On().Moment("boom")(func(ctx context.Context, args ...any) (any, error) {
		panic("not recovered")
	})
	require.NoError(t, err)
	assert.Panics(t, func() {
		_, _ = emit.Emit(context.Background(), "boom")
	})
}

func TestWithConfig_ZeroValueKeepsDefaults(t *testing.T) {
	tl, emit := timeline.New(timeline.Moments{"boom": nil}, timeline.WithConfig(timeline.Config{Name: "partial"}))
	assert.Equal(t, "partial", tl.Name())
	assert.Equal(t, timeline.DefaultConfig(), timeline.Config{})

	var level timeline.Level
	_, err := tl.On().Log(timeline.LogFunc(func(ctx context.Context, message string, l timeline.Level) error {
		level = l
		return nil
	}))
	require.NoError(t, err)
	require.NoError(t, emit.Log(context.Background(), "hi"))
	assert.Equal(t, timeline.LevelInfo, level)

	var failure error
	_, err = tl.On().Error(timeline.ErrorFunc(func(ctx context.Context, err error) error {
		failure = err
		return nil
	}))
	require.NoError(t, err)
	_, err = tl.On().Moment("boom")(func(ctx context.Context, args ...any) (any, error) {
		panic("recovered")
	})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		_, err = emit.Emit(context.Background(), "boom")
	})
	require.NoError(t, err)
	var panicErr *timeline.PanicError
	require.ErrorAs(t, failure, &panicErr)
	assert.Equal(t, "recovered", panicErr.Value)
}
