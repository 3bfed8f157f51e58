package log

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/smbprecheck/pkg/status"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_entry",
			op: func(t *testing.T, logger *Logger) {
				logger.LogEntry(context.Background(), EntryOperation{
					Name:    "a.xlsx",
					Status:  status.StatusSuccess,
					Message: "ids renumbered",
				})
			},
			wantLogs: []string{
				"✓ a.xlsx                              Success  ids renumbered",
			},
		},
		{
			name: "start_batch",
			op: func(t *testing.T, logger *Logger) {
				logger.StartBatch(context.Background(), BatchOperation{
					Task:   "update-ids",
					Folder: "/data/cases",
					Total:  3,
				})
			},
			wantLogs: []string{
				"[update-ids /data/cases]",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("renumbering case ids")
			},
			wantLogs: []string{
				"smbprecheck • renumbering case ids",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerBatchCollectsEntries(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())
	ctx := context.Background()

	assert.Nil(t, logger.EndBatch(ctx), "no batch should yield nothing")

	logger.StartBatch(ctx, BatchOperation{Task: "io-change", Total: 2})
	logger.LogEntry(ctx, EntryOperation{Name: "a.xlsx", Status: status.StatusSuccess, Message: "ok"})
	logger.LogEntry(ctx, EntryOperation{Name: "b.xlsx", Status: status.StatusFail, Message: "bad"})

	ops := logger.EndBatch(ctx)
	require.Len(t, ops, 2, "both entries should be collected")
	assert.Equal(t, "b.xlsx", ops[1].Name)
	assert.Nil(t, logger.EndBatch(ctx), "batch should be reset")
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx), "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestSession(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "vba", "log")
	clock := time.Date(2025, 3, 1, 9, 30, 5, 0, time.Local)
	session := NewSession(dir).WithClock(func() time.Time { return clock })

	assert.NotEmpty(t, session.ID, "session should have an id")
	assert.Empty(t, session.Path(), "no log file before the first error")
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "log directory should be created lazily")

	require.NoError(t, session.Record("/data/a.xlsx", "sheet missing"))
	first := session.Path()
	assert.Equal(t, "SMB_20250301_093005.log", filepath.Base(first), "file name should carry the session timestamp")

	clock = clock.Add(2 * time.Second)
	require.NoError(t, session.Record("/data/b.xlsx", "bad id"))
	assert.Equal(t, first, session.Path(), "later errors should reuse the file")
	assert.Equal(t, 2, session.Count())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "one log file per session")

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t,
		"2025-03-01 09:30:05 | /data/a.xlsx | sheet missing\n"+
			"2025-03-01 09:30:07 | /data/b.xlsx | bad id\n",
		string(data))
}
