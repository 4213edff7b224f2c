package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"annotation-pipeline/internal/audit"
	"annotation-pipeline/internal/config"
	"annotation-pipeline/internal/exporter"
	"annotation-pipeline/internal/loader"
	"annotation-pipeline/internal/pipeline"
	"annotation-pipeline/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config file")
		inputPath  = flag.String("input", "", "annotation table to read (overrides config)")
		outputPath = flag.String("output", "", "JSONL destination (overrides config)")
		logDir     = flag.String("log-dir", "", "audit log directory (overrides config)")
		threshold  = flag.Float64("threshold", -1, "confidence threshold in [0,1] (overrides config)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if *inputPath != "" {
		cfg.Input.Path = *inputPath
	}
	if *outputPath != "" {
		cfg.Output.Path = *outputPath
	}
	if *logDir != "" {
		cfg.Logging.Dir = *logDir
	}
	if *threshold >= 0 {
		cfg.Pipeline.ConfidenceThreshold = *threshold
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	loggers, err := audit.NewLoggers(cfg.Logging.Dir, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open audit log: %v\n", err)
		os.Exit(1)
	}
	defer loggers.Close()

	runID := uuid.New().String()
	loggers.Progress.Info("Starting annotation pipeline",
		zap.String("run_id", runID),
		zap.String("input", cfg.Input.Path),
		zap.String("output", cfg.Output.Path),
		zap.Float64("threshold", cfg.Pipeline.ConfidenceThreshold))

	sink := audit.Tee{audit.NewLogSink(loggers.Audit)}
	if cfg.Review.Database != "" {
		repo, err := repository.NewReviewRepository(cfg.Review.Database, runID, loggers.Progress)
		if err != nil {
			loggers.Progress.Fatal("Failed to initialize review repository", zap.Error(err))
		}
		defer repo.Close()
		sink = append(sink, repo)
	}

	runner := pipeline.NewRunner(
		loader.NewFileLoader(cfg.Input.Path, loggers.Progress),
		sink,
		exporter.NewJSONLExporter(cfg.Output.Path, loggers.Progress),
		cfg.Pipeline.ConfidenceThreshold,
		loggers.Progress,
	)

	result, err := runner.Run()
	if err != nil {
		loggers.Progress.Fatal("Pipeline failed", zap.Error(err))
	}

	loggers.Progress.Info("Pipeline finished",
		zap.String("run_id", runID),
		zap.Int("raw_rows", result.RawRows),
		zap.Int("filtered_rows", result.FilteredRows),
		zap.Int("disagreements", result.Disagreements),
		zap.Int("agreed_pairs", result.AgreedPairs))
}
