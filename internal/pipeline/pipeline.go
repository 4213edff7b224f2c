package pipeline

import (
	"fmt"

	"annotation-pipeline/internal/audit"
	"annotation-pipeline/internal/models"

	"go.uber.org/zap"
)

// Loader reads the raw annotation table from its source.
type Loader interface {
	Load() (models.AnnotationTable, error)
}

// Exporter persists the agreed pairs.
type Exporter interface {
	Export(pairs []models.AgreedPair) error
}

// Runner wires the pipeline stages to their collaborators. The audit sink
// and progress logger are injected so tests can substitute in-memory ones.
type Runner struct {
	loader    Loader
	sink      audit.Sink
	exporter  Exporter
	threshold float64
	logger    *zap.Logger
}

// NewRunner creates a pipeline runner.
func NewRunner(loader Loader, sink audit.Sink, exporter Exporter, threshold float64, logger *zap.Logger) *Runner {
	return &Runner{
		loader:    loader,
		sink:      sink,
		exporter:  exporter,
		threshold: threshold,
		logger:    logger,
	}
}

// Result summarises one pipeline run.
type Result struct {
	RawRows       int
	FilteredRows  int
	Disagreements int
	AgreedPairs   int
}

// Run executes the linear Load → Filter → Analyze → Report → Extract →
// Export sequence exactly once. The first failing stage aborts the
// remainder. Empty intermediate results are valid and complete normally.
func (r *Runner) Run() (*Result, error) {
	r.logger.Info("Reading raw annotations...")
	table, err := r.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load stage failed: %w", err)
	}

	r.logger.Info("Filtering by confidence...", zap.Float64("threshold", r.threshold))
	filtered := FilterByConfidence(table, r.threshold)
	r.logger.Info(fmt.Sprintf("After confidence filter: %d rows", len(filtered)))

	r.logger.Info("Checking agreement...")
	analysis := Analyze(filtered)
	if err := r.sink.Report(analysis.Disagreements); err != nil {
		return nil, fmt.Errorf("report stage failed: %w", err)
	}

	clean := ExtractAgreed(filtered, analysis.AgreedTexts)
	r.logger.Info(fmt.Sprintf("Agreed samples: %d", len(clean)))

	r.logger.Info("Exporting JSONL...")
	if err := r.exporter.Export(clean); err != nil {
		return nil, fmt.Errorf("export stage failed: %w", err)
	}

	r.logger.Info("Done.")

	return &Result{
		RawRows:       len(table),
		FilteredRows:  len(filtered),
		Disagreements: len(analysis.Disagreements),
		AgreedPairs:   len(clean),
	}, nil
}
