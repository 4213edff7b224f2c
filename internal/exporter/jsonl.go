package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"annotation-pipeline/internal/models"

	"go.uber.org/zap"
)

// JSONLExporter writes agreed pairs as line-delimited JSON, one
// {"text":...,"label":...} object per line with non-ASCII characters
// preserved literally. Each run overwrites the previous export, so repeat
// runs over the same input are byte-identical.
type JSONLExporter struct {
	path   string
	logger *zap.Logger
}

// NewJSONLExporter creates an exporter targeting the given path.
func NewJSONLExporter(path string, logger *zap.Logger) *JSONLExporter {
	return &JSONLExporter{path: path, logger: logger}
}

// Export persists the agreed set. An empty set still truncates the
// destination, leaving a valid zero-line export.
func (e *JSONLExporter) Export(pairs []models.AgreedPair) error {
	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	for _, pair := range pairs {
		if err := enc.Encode(pair); err != nil {
			file.Close()
			return fmt.Errorf("failed to write export record: %w", err)
		}
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}

	e.logger.Info("Export written",
		zap.String("path", e.path),
		zap.Int("records", len(pairs)))

	return nil
}
