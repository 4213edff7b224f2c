package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"annotation-pipeline/internal/models"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Required source columns. Extra columns are ignored.
const (
	ColumnText       = "text"
	ColumnLabel      = "label"
	ColumnAnnotator  = "annotator_id"
	ColumnConfidence = "confidence_score"
)

// ErrMissingColumn reports a source table without one of the required
// columns. This is a fatal configuration error.
var ErrMissingColumn = errors.New("missing required column")

// RowError reports a row whose confidence score is non-numeric or outside
// [0,1]. Such rows fail the whole run rather than being dropped or coerced.
type RowError struct {
	Line  int
	Value string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: invalid confidence_score %q: %v", e.Line, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// FileLoader reads an annotation table from a delimited (.csv, .tsv) or
// Excel (.xlsx, .xls) file with a header row.
type FileLoader struct {
	path   string
	logger *zap.Logger
}

// NewFileLoader creates a loader for the given source file.
func NewFileLoader(path string, logger *zap.Logger) *FileLoader {
	return &FileLoader{path: path, logger: logger}
}

// Load reads the source file into an annotation table.
func (l *FileLoader) Load() (models.AnnotationTable, error) {
	var (
		headers []string
		rows    [][]string
		err     error
	)

	switch ext := strings.ToLower(filepath.Ext(l.path)); ext {
	case ".csv":
		headers, rows, err = l.readDelimited(',')
	case ".tsv":
		headers, rows, err = l.readDelimited('\t')
	case ".xlsx", ".xls":
		headers, rows, err = l.readExcel()
	default:
		return nil, fmt.Errorf("unsupported source file type: %s", ext)
	}
	if err != nil {
		return nil, err
	}

	table, err := mapRows(headers, rows)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Annotations loaded",
		zap.String("path", l.path),
		zap.Int("rows", len(table)))

	return table, nil
}

// readDelimited parses a CSV or TSV file. The first record is the header.
func (l *FileLoader) readDelimited(comma rune) ([]string, [][]string, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open annotation file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse annotation file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("annotation file %s has no header row", l.path)
	}

	return records[0], records[1:], nil
}

// readExcel parses the first non-metadata sheet of an Excel workbook.
func (l *FileLoader) readExcel() ([]string, [][]string, error) {
	book, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("no sheets in Excel file %s", l.path)
	}

	skip := map[string]bool{"info": true, "metadata": true, "about": true, "readme": true, "notes": true}
	sheet := sheets[len(sheets)-1]
	for _, name := range sheets {
		if !skip[strings.ToLower(name)] {
			sheet = name
			break
		}
	}

	records, err := book.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("annotation file %s has no header row", l.path)
	}

	headers := records[0]
	rows := records[1:]

	// Excel rows may come back ragged; pad short rows so column lookups
	// stay in bounds.
	for i := range rows {
		for len(rows[i]) < len(headers) {
			rows[i] = append(rows[i], "")
		}
	}

	return headers, rows, nil
}

// mapRows converts raw records into annotation rows using the header to
// locate the required columns.
func mapRows(headers []string, rows [][]string) (models.AnnotationTable, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}

	for _, required := range []string{ColumnText, ColumnLabel, ColumnAnnotator, ColumnConfidence} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	table := make(models.AnnotationTable, 0, len(rows))
	for i, row := range rows {
		line := i + 2 // header occupies line 1

		raw := cell(row, index[ColumnConfidence])
		score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, &RowError{Line: line, Value: raw, Err: err}
		}
		if score < 0 || score > 1 {
			return nil, &RowError{Line: line, Value: raw, Err: errors.New("confidence score outside [0,1]")}
		}

		table = append(table, models.AnnotationRow{
			Text:            cell(row, index[ColumnText]),
			Label:           cell(row, index[ColumnLabel]),
			AnnotatorID:     cell(row, index[ColumnAnnotator]),
			ConfidenceScore: score,
		})
	}

	return table, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
