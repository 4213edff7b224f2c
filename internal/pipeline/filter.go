package pipeline

import "annotation-pipeline/internal/models"

// FilterByConfidence keeps rows whose confidence score meets the threshold.
// The boundary is inclusive: a row scoring exactly threshold survives.
// Surviving rows keep their relative order and the input table is never
// mutated. An empty result is valid and flows through the rest of the
// pipeline.
func FilterByConfidence(table models.AnnotationTable, threshold float64) models.AnnotationTable {
	filtered := make(models.AnnotationTable, 0, len(table))
	for _, row := range table {
		if row.ConfidenceScore >= threshold {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
