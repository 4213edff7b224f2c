package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"annotation-pipeline/internal/models"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// ReviewRepository persists disagreement records to SQLite so human
// reviewers can work through them outside the pipeline run. It implements
// audit.Sink; writes here never alter the pipeline outcome.
type ReviewRepository struct {
	db     *sql.DB
	runID  string
	logger *zap.Logger
}

// NewReviewRepository opens (or creates) the review database.
func NewReviewRepository(dbPath, runID string, logger *zap.Logger) (*ReviewRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &ReviewRepository{
		db:     db,
		runID:  runID,
		logger: logger,
	}

	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Review repository initialized", zap.String("db_path", dbPath))

	return repo, nil
}

// migrate creates tables
func (r *ReviewRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS disagreements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		text TEXT NOT NULL,
		labels TEXT NOT NULL,
		annotators TEXT NOT NULL,
		confidence_scores TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_run_id ON disagreements(run_id);
	CREATE INDEX IF NOT EXISTS idx_created_at ON disagreements(created_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Report implements audit.Sink by inserting every record under this run's ID.
func (r *ReviewRepository) Report(records []models.DisagreementRecord) error {
	for _, rec := range records {
		if err := r.save(rec); err != nil {
			return err
		}
	}

	r.logger.Info("Disagreements queued for review",
		zap.String("run_id", r.runID),
		zap.Int("count", len(records)))

	return nil
}

// save inserts a single disagreement row.
func (r *ReviewRepository) save(rec models.DisagreementRecord) error {
	labels, err := json.Marshal(rec.Labels)
	if err != nil {
		return fmt.Errorf("failed to encode labels: %w", err)
	}
	annotators, err := json.Marshal(rec.Annotators)
	if err != nil {
		return fmt.Errorf("failed to encode annotators: %w", err)
	}
	scores, err := json.Marshal(rec.ConfidenceScores)
	if err != nil {
		return fmt.Errorf("failed to encode confidence scores: %w", err)
	}

	query := `
		INSERT INTO disagreements (run_id, text, labels, annotators, confidence_scores, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query, r.runID, rec.Text, string(labels), string(annotators), string(scores), time.Now()); err != nil {
		return fmt.Errorf("failed to save disagreement: %w", err)
	}

	return nil
}

// ByRun retrieves all disagreement records stored for a run, in insertion
// order.
func (r *ReviewRepository) ByRun(runID string) ([]models.DisagreementRecord, error) {
	query := `
		SELECT text, labels, annotators, confidence_scores
		FROM disagreements
		WHERE run_id = ?
		ORDER BY id
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query disagreements: %w", err)
	}
	defer rows.Close()

	var records []models.DisagreementRecord
	for rows.Next() {
		var rec models.DisagreementRecord
		var labels, annotators, scores string
		if err := rows.Scan(&rec.Text, &labels, &annotators, &scores); err != nil {
			return nil, fmt.Errorf("failed to scan disagreement: %w", err)
		}
		if err := json.Unmarshal([]byte(labels), &rec.Labels); err != nil {
			return nil, fmt.Errorf("failed to decode labels: %w", err)
		}
		if err := json.Unmarshal([]byte(annotators), &rec.Annotators); err != nil {
			return nil, fmt.Errorf("failed to decode annotators: %w", err)
		}
		if err := json.Unmarshal([]byte(scores), &rec.ConfidenceScores); err != nil {
			return nil, fmt.Errorf("failed to decode confidence scores: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Close closes the database connection
func (r *ReviewRepository) Close() error {
	return r.db.Close()
}
