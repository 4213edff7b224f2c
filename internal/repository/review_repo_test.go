package repository

import (
	"path/filepath"
	"testing"

	"annotation-pipeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepo(t *testing.T, runID string) *ReviewRepository {
	t.Helper()
	repo, err := NewReviewRepository(filepath.Join(t.TempDir(), "review.db"), runID, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestReviewRepository_RoundTrip(t *testing.T) {
	repo := newTestRepo(t, "run-1")

	records := []models.DisagreementRecord{
		{
			Text:             "bye",
			Labels:           []string{"farewell", "greet"},
			Annotators:       []string{"A1", "A2"},
			ConfidenceScores: []float64{0.95, 0.92},
		},
		{
			Text:             "привет",
			Labels:           []string{"greet", "other"},
			Annotators:       []string{"A1", "A3"},
			ConfidenceScores: []float64{0.9, 0.88},
		},
	}

	require.NoError(t, repo.Report(records))

	stored, err := repo.ByRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, records, stored)
}

func TestReviewRepository_EmptyRunStoresNothing(t *testing.T) {
	repo := newTestRepo(t, "run-2")

	require.NoError(t, repo.Report(nil))

	stored, err := repo.ByRun("run-2")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestReviewRepository_RunsAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "review.db")

	first, err := NewReviewRepository(path, "run-a", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, first.Report([]models.DisagreementRecord{{
		Text: "t", Labels: []string{"a", "b"}, Annotators: []string{"A1", "A2"}, ConfidenceScores: []float64{0.9, 0.9},
	}}))
	require.NoError(t, first.Close())

	second, err := NewReviewRepository(path, "run-b", zap.NewNop())
	require.NoError(t, err)
	defer second.Close()

	stored, err := second.ByRun("run-a")
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	stored, err = second.ByRun("run-b")
	require.NoError(t, err)
	assert.Empty(t, stored)
}
