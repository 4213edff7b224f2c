package pipeline

import (
	"testing"

	"annotation-pipeline/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFilterByConfidence_InclusiveBoundary(t *testing.T) {
	table := models.AnnotationTable{
		{Text: "at threshold", Label: "a", AnnotatorID: "A1", ConfidenceScore: 0.8},
		{Text: "just below", Label: "a", AnnotatorID: "A1", ConfidenceScore: 0.7999999},
		{Text: "above", Label: "a", AnnotatorID: "A1", ConfidenceScore: 0.95},
	}

	filtered := FilterByConfidence(table, 0.8)

	assert.Len(t, filtered, 2)
	assert.Equal(t, "at threshold", filtered[0].Text)
	assert.Equal(t, "above", filtered[1].Text)
}

func TestFilterByConfidence_PreservesOrderAndInput(t *testing.T) {
	table := models.AnnotationTable{
		{Text: "c", ConfidenceScore: 0.9},
		{Text: "a", ConfidenceScore: 0.1},
		{Text: "b", ConfidenceScore: 0.85},
	}

	filtered := FilterByConfidence(table, 0.5)

	assert.Equal(t, models.AnnotationTable{
		{Text: "c", ConfidenceScore: 0.9},
		{Text: "b", ConfidenceScore: 0.85},
	}, filtered)

	// Input table untouched.
	assert.Len(t, table, 3)
	assert.Equal(t, "a", table[1].Text)
}

func TestFilterByConfidence_EmptyResult(t *testing.T) {
	table := models.AnnotationTable{
		{Text: "low", ConfidenceScore: 0.2},
	}

	filtered := FilterByConfidence(table, 0.8)

	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestFilterByConfidence_EmptyTable(t *testing.T) {
	assert.Empty(t, FilterByConfidence(nil, 0.8))
}
