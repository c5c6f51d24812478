package logx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEnrich_AddsIDsFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := WithTraceID(WithRequestID(context.Background(), "rid-1"), "tid-1")

	Enrich(ctx, zap.New(core)).Info("hello")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	require.Equal(t, "rid-1", fields["request_id"])
	require.Equal(t, "tid-1", fields["trace_id"])
}

func TestEnrich_NoIDs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Enrich(context.Background(), zap.New(core)).Info("hello")
	require.Empty(t, logs.All()[0].ContextMap())
	require.NotNil(t, L())
}
