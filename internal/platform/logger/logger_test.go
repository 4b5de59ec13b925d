package logger

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craigmharris/TKDojang-sub007/internal/config"
)

func TestSetupValidLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: level})
		require.NoError(t, err, "level %q", level)
		assert.NotNil(t, logger)
	}
}

func TestSetupInvalidLevelFallsBack(t *testing.T) {
	logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: "verbose"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	// Info records pass at the fallback level.
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	stored := slog.New(slog.NewTextHandler(os.Stderr, nil))
	fallback := slog.New(slog.NewTextHandler(os.Stderr, nil))

	testCases := []struct {
		name string
		ctx  context.Context
		want *slog.Logger
	}{
		{
			name: "logger present in context",
			ctx:  WithLogger(context.Background(), stored),
			want: stored,
		},
		{
			name: "empty context uses fallback",
			ctx:  context.Background(),
			want: fallback,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FromContextOrDefault(tc.ctx, fallback)
			assert.Same(t, tc.want, got)
		})
	}
}

func TestFromContextOrDefaultNilFallback(t *testing.T) {
	t.Parallel()

	got := FromContextOrDefault(context.Background(), nil)
	assert.NotNil(t, got, "nil fallback resolves to the process default")
}
