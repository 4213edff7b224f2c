package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"annotation-pipeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExport_OneRecordPerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.jsonl")
	exp := NewJSONLExporter(path, zap.NewNop())

	err := exp.Export([]models.AgreedPair{
		{Text: "hi", Label: "greet"},
		{Text: "bye", Label: "farewell"},
	})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"{\"text\":\"hi\",\"label\":\"greet\"}\n{\"text\":\"bye\",\"label\":\"farewell\"}\n",
		string(content))
}

func TestExport_NonASCIIUnescaped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.jsonl")

	err := NewJSONLExporter(path, zap.NewNop()).Export([]models.AgreedPair{
		{Text: "привет <мир>", Label: "greet"},
	})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"text\":\"привет <мир>\",\"label\":\"greet\"}\n", string(content))
}

func TestExport_OverwritesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.jsonl")
	exp := NewJSONLExporter(path, zap.NewNop())

	pairs := []models.AgreedPair{{Text: "hi", Label: "greet"}}
	require.NoError(t, exp.Export(pairs))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	// Same input twice: byte-identical output, not doubled.
	require.NoError(t, exp.Export(pairs))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExport_EmptySetCreatesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.jsonl")
	exp := NewJSONLExporter(path, zap.NewNop())

	require.NoError(t, exp.Export([]models.AgreedPair{{Text: "stale", Label: "x"}}))
	require.NoError(t, exp.Export(nil))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestExport_CreatesOutputDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "processed", "clean.jsonl")

	err := NewJSONLExporter(path, zap.NewNop()).Export([]models.AgreedPair{{Text: "hi", Label: "greet"}})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestExport_UnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	// The destination's parent is a file, so the directory cannot be created.
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := NewJSONLExporter(filepath.Join(blocker, "clean.jsonl"), zap.NewNop()).Export(nil)
	require.Error(t, err)
}
