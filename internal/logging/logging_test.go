package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LevelWarn, FormatJSON, &buf)

	l.Info("dropped")
	l.Warn("accent conflict", "reading", "いく", "first", 0, "other", 1)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "accent conflict", rec["msg"])
	assert.Equal(t, "いく", rec["reading"])
	assert.Equal(t, "WARN", rec["level"])
	assert.NotEmpty(t, rec["time"])
}

func TestInitLoggerReplacesGlobal(t *testing.T) {
	old := Logger()
	defer defaultLogger.Store(old)

	var buf bytes.Buffer
	InitLogger(LevelDebug, FormatText, &buf)
	Logger().Debug("unknown accent", "word", "食べ物[たべもの]")

	assert.Contains(t, buf.String(), "unknown accent")
	assert.Same(t, Logger(), Or(nil))
}
