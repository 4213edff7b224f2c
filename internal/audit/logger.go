package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Loggers bundles the two logging capabilities of a pipeline run: Progress
// mirrors stage status to the console and the audit file, while Audit writes
// to the file only, so detailed disagreement payloads never reach the
// console.
type Loggers struct {
	Progress *zap.Logger
	Audit    *zap.Logger
	Path     string

	file *os.File
}

// NewLoggers opens the date-partitioned audit log under dir
// (dir/YYYY-MM-DD/disagreements_YYYYMMDD.log, appended across runs within a
// day) and builds the two loggers. Lines carry a timestamp, level, and
// message separated by " | ".
func NewLoggers(dir string, now time.Time) (*Loggers, error) {
	dayDir := filepath.Join(dir, now.Format("2006-01-02"))
	if err := os.MkdirAll(dayDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dayDir, fmt.Sprintf("disagreements_%s.log", now.Format("20060102")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	fileCore := zapcore.NewCore(newEncoder(), zapcore.AddSync(file), zapcore.InfoLevel)
	consoleCore := zapcore.NewCore(newEncoder(), zapcore.Lock(os.Stdout), zapcore.InfoLevel)

	return &Loggers{
		Progress: zap.New(zapcore.NewTee(consoleCore, fileCore)),
		Audit:    zap.New(fileCore),
		Path:     path,
		file:     file,
	}, nil
}

// Close flushes both loggers and closes the audit file.
func (l *Loggers) Close() error {
	l.Progress.Sync()
	l.Audit.Sync()
	return l.file.Close()
}

func newEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.ConsoleSeparator = " | "
	return zapcore.NewConsoleEncoder(cfg)
}
