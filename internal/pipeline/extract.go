package pipeline

import "annotation-pipeline/internal/models"

// ExtractAgreed returns one deduplicated (text, label) pair per agreed text.
// All rows for an agreed text carry the same label, so the first row seen
// supplies the pair. Output order is stable under the filtered table's row
// order.
func ExtractAgreed(table models.AnnotationTable, agreed map[string]struct{}) []models.AgreedPair {
	pairs := make([]models.AgreedPair, 0, len(agreed))
	seen := make(map[string]struct{}, len(agreed))

	for _, row := range table {
		if _, ok := agreed[row.Text]; !ok {
			continue
		}
		if _, dup := seen[row.Text]; dup {
			continue
		}
		seen[row.Text] = struct{}{}
		pairs = append(pairs, models.AgreedPair{Text: row.Text, Label: row.Label})
	}

	return pairs
}
