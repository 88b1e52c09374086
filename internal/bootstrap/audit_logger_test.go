package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLoggerWritesStructuredEntry(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	logger := NewStdoutAuditLogger()
	logger.Log(context.Background(), AuditLog{
		Action:  "SERVER_SHUTDOWN",
		Message: "Server is shutting down",
		Meta:    map[string]any{"signal": "terminated"},
	})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "audit event", entries[0].Message)
		assert.Equal(t, "audit", entries[0].LoggerName)

		fields := entries[0].ContextMap()
		assert.Equal(t, "SERVER_SHUTDOWN", fields["action"])
		assert.Equal(t, map[string]any{"signal": "terminated"}, fields["meta"])
	}
}
