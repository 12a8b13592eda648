package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rag.log")
	l := NewIsolatedLogger(path)

	l.Info("Retriever", "Candidates filtered", map[string]interface{}{"kept": 2})
	l.Warn("Retriever", "No details", nil)
	_ = l.Sync()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}
	require.Len(t, lines, 2)

	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "Candidates filtered", lines[0]["message"])
	assert.Equal(t, "Retriever", lines[0]["module"])
	assert.Equal(t, float64(2), lines[0]["details"].(map[string]interface{})["kept"])
	assert.Equal(t, "WARN", lines[1]["level"])
}

func TestNopLogger(t *testing.T) {
	var l ILogger = NewNopLogger()
	l.Error("x", "y", map[string]interface{}{"error": "boom"})
	assert.NoError(t, l.Sync())
}
