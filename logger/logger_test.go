package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"short_key_fully_masked", "sk-12", "***"},
		{"empty_key", "", "***"},
		{"long_key_keeps_edges", "sk-abcdefgh1234", "sk-a...1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskKey(tt.key))
		})
	}
}

func TestFileLoggerWritesJSONL(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	fl, err := NewFileLogger(logDir)
	require.NoError(t, err)

	fl.Info(ComponentAnnotator, CategoryTransformation, "req_1", "annotation completed",
		map[string]interface{}{"call_sites": 2})
	require.NoError(t, fl.Close())

	data, err := os.ReadFile(filepath.Join(logDir, "custom-api-config.jsonl"))
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "annotation completed", entry["message"])
	assert.Equal(t, ComponentAnnotator, entry["component"])
	assert.Equal(t, "req_1", entry["request_id"])
	assert.Equal(t, float64(2), entry["call_sites"])
}
