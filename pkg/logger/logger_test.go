package logger_test

import (
	"context"
	"errors"
	"testing"

	"golang-inflection-analyzer/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logger.New("loud", "json")
	require.Error(t, err)
}

func TestNew_ContextVariants(t *testing.T) {
	log, err := logger.New("debug", "console")
	require.NoError(t, err)

	ctx := context.Background()
	log.DebugContext(ctx, "debug message")
	log.InfoContext(ctx, "info message", logger.StringField("k", "v"))
	log.ErrorContext(ctx, "error message", logger.ErrorField(errors.New("boom")))
}

func TestFieldHelpers(t *testing.T) {
	assert.Equal(t, zap.String("code", "005930"), logger.StringField("code", "005930"))
	assert.Equal(t, zap.Int("bars", 88), logger.IntField("bars", 88))
	assert.Equal(t, zap.Float64("score", 42.5), logger.Float64Field("score", 42.5))
	assert.Equal(t, zap.Any("id", 7), logger.Field("id", 7))

	err := errors.New("boom")
	assert.Equal(t, zap.Error(err), logger.ErrorField(err))
}
