package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"annotation-pipeline/internal/models"

	"go.uber.org/zap"
)

// Sink consumes the ordered disagreement records produced by one pipeline
// run. Sinks are purely observational and never alter the pipeline outcome.
type Sink interface {
	Report(records []models.DisagreementRecord) error
}

// Tee fans records out to several sinks in order, stopping at the first
// failure.
type Tee []Sink

// Report implements Sink.
func (t Tee) Report(records []models.DisagreementRecord) error {
	for _, sink := range t {
		if err := sink.Report(records); err != nil {
			return err
		}
	}
	return nil
}

// LogSink writes one audit entry per disagreement record to a logger. An
// empty sequence still produces a "Disagreed samples: 0" marker so the log
// is unambiguous about whether detection ran.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a log-backed audit sink.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Report implements Sink.
func (s *LogSink) Report(records []models.DisagreementRecord) error {
	if len(records) == 0 {
		s.logger.Info("Disagreed samples: 0")
		return nil
	}

	s.logger.Info("Disagreed samples:")
	for _, rec := range records {
		line, err := EncodeRecord(rec)
		if err != nil {
			return fmt.Errorf("failed to encode disagreement record: %w", err)
		}
		s.logger.Info(line)
	}
	return nil
}

// EncodeRecord marshals a disagreement record as a single JSON line with
// stable field order (text, labels, annotators, confidence_scores) and
// non-ASCII characters preserved literally.
func EncodeRecord(rec models.DisagreementRecord) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
