package pipeline

import (
	"sort"

	"annotation-pipeline/internal/models"
)

// Analysis is the outcome of the agreement check over a confidence-filtered
// table. Every distinct text lands in exactly one of the two outputs:
// AgreedTexts holds texts whose rows all carry the same label, and
// Disagreements lists the rest.
type Analysis struct {
	AgreedTexts   map[string]struct{}
	Disagreements []models.DisagreementRecord
}

// Analyze groups rows by exact text equality (no normalization; texts
// differing in case or whitespace are distinct) and computes the set of
// distinct labels each text received. Disagreement records are ordered by
// the first appearance of their text in the table, and their annotator and
// score slices follow table row order.
func Analyze(table models.AnnotationTable) Analysis {
	labelSets := make(map[string]map[string]struct{})
	rowsByText := make(map[string][]models.AnnotationRow)
	var order []string // distinct texts in first-appearance order

	for _, row := range table {
		if _, seen := labelSets[row.Text]; !seen {
			labelSets[row.Text] = make(map[string]struct{})
			order = append(order, row.Text)
		}
		labelSets[row.Text][row.Label] = struct{}{}
		rowsByText[row.Text] = append(rowsByText[row.Text], row)
	}

	analysis := Analysis{AgreedTexts: make(map[string]struct{})}
	for _, text := range order {
		labels := labelSets[text]
		if len(labels) == 1 {
			analysis.AgreedTexts[text] = struct{}{}
			continue
		}

		rec := models.DisagreementRecord{
			Text:   text,
			Labels: make([]string, 0, len(labels)),
		}
		for label := range labels {
			rec.Labels = append(rec.Labels, label)
		}
		sort.Strings(rec.Labels)

		rows := rowsByText[text]
		rec.Annotators = make([]string, 0, len(rows))
		rec.ConfidenceScores = make([]float64, 0, len(rows))
		for _, row := range rows {
			rec.Annotators = append(rec.Annotators, row.AnnotatorID)
			rec.ConfidenceScores = append(rec.ConfidenceScores, row.ConfidenceScore)
		}

		analysis.Disagreements = append(analysis.Disagreements, rec)
	}

	return analysis
}
