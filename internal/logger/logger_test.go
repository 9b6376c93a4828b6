package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs_RedactsCredentialKeys(t *testing.T) {
	out := sanitizeKVs([]any{"user_id", "u-1", "access_token", "abc", "Authorization", "Bearer x", "facet", "matches"})

	assert.Equal(t, []any{"user_id", "u-1", "access_token", redacted, "Authorization", redacted, "facet", "matches"}, out)
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	out := sanitizeKVs([]any{"facet", "matches", "dangling"})

	assert.Equal(t, []any{"facet", "matches", "dangling"}, out)
}

func TestLogger_WarnWritesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "test").Warn("facet unavailable", "facet", "matches", "secret", "s3cr3t")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "facet unavailable", entries[0].Message)
		assert.Equal(t, "test", ctx["component"])
		assert.Equal(t, "matches", ctx["facet"])
		assert.Equal(t, redacted, ctx["secret"])
	}
}
