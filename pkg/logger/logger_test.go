package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContextFields(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))
	_, ok := GetSimulatedTime(ctx)
	assert.False(t, ok)

	simTime := time.Date(2024, 11, 15, 21, 30, 0, 0, time.UTC)
	ctx = WithTraceID(ctx, "trace-1")
	ctx = WithSimulatedTime(ctx, simTime)

	assert.Equal(t, "trace-1", GetTraceID(ctx))
	got, ok := GetSimulatedTime(ctx)
	assert.True(t, ok)
	assert.Equal(t, simTime, got)
}

func TestBuildFields(t *testing.T) {
	l := NewNop()
	ctx := WithSimulatedTime(WithTraceID(context.Background(), "trace-1"), time.Unix(0, 0))

	fields := l.buildFields(ctx, "key", "value", 42, "skipped", "dangling")

	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"trace_id", "sim_time", "key"}, keys)
}
