package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/placemap/pkg/logging"
)

func TestLoggerFunctions(t *testing.T) {
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	t.Run("Default returns global logger", func(t *testing.T) {
		assert.NotNil(t, logging.Default())
	})

	t.Run("SetDefault sets global logger", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetDefault(zerolog.New(&buf).Level(zerolog.InfoLevel))

		logging.Default().Info().Msg("test with new default")
		assert.Contains(t, buf.String(), "test with new default")

		logging.FromContext(context.Background()).Warn().Msg("through context")
		assert.Contains(t, buf.String(), "through context")
	})
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Logger.Info().Msg("message 1")
	tl.Logger.Warn().Msg("message 2")

	tl.AssertContains(t, "message 1")
	tl.AssertNotContains(t, "message 3")
	assert.Equal(t, 2, tl.Count())
	assert.Equal(t, 1, tl.CountContaining(`"level":"warn"`))

	tl.Clear()
	assert.Equal(t, 0, tl.Count())
	assert.Empty(t, tl.Lines())
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)

	logging.Default().Warn().Str("feature_key", "F1").Msg("captured")
	tl.AssertContains(t, "captured")
	tl.AssertContains(t, `"feature_key":"F1"`)

	ctx := context.Background()
	logging.FromContext(ctx).Info().Msg("through context default")
	tl.AssertContains(t, "through context default")
}
