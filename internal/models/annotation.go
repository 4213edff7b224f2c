package models

// AnnotationRow is a single (text, annotator) labelling observation loaded
// from the raw annotation table. Rows are immutable once loaded; a text may
// carry rows from several annotators.
type AnnotationRow struct {
	Text            string  `json:"text"`
	Label           string  `json:"label"`
	AnnotatorID     string  `json:"annotator_id"`
	ConfidenceScore float64 `json:"confidence_score"` // annotator-reported certainty in [0,1]
}

// AnnotationTable is an ordered sequence of annotation rows. It is not
// required to be sorted or deduplicated; insertion order does not affect
// correctness.
type AnnotationTable []AnnotationRow

// DisagreementRecord describes a text that received two or more distinct
// labels after confidence filtering. Annotators and ConfidenceScores are
// parallel slices (same index = same source row) and preserve the relative
// row order of the filtered table. Labels is sorted lexicographically so
// audit output is deterministic; consumers treat it as a set.
type DisagreementRecord struct {
	Text             string    `json:"text"`
	Labels           []string  `json:"labels"`
	Annotators       []string  `json:"annotators"`
	ConfidenceScores []float64 `json:"confidence_scores"`
}

// AgreedPair is the deduplicated (text, label) result for a fully agreed
// text. Each agreed text yields exactly one pair regardless of how many
// annotators produced the identical label.
type AgreedPair struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}
