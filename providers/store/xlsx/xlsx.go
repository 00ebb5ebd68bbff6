package xlsx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/XayHanmonty/id-verification-poc/core/record"
	"github.com/XayHanmonty/id-verification-poc/providers/observability"
	"github.com/XayHanmonty/id-verification-poc/providers/store"
)

const (
	// DefaultFileName is the workbook name inside the output directory.
	DefaultFileName = "extraction_results.xlsx"
	// SheetName is the sheet holding one row per image.
	SheetName = "Extractions"

	imageColumn      = "image"
	additionalPrefix = "additional_info."
)

// Columns are the fixed record fields, in sheet order, after the image name.
var Columns = []string{
	record.KeyDocumentType,
	record.KeyIssuingCountry,
	record.KeyFullName,
	record.KeyFirstName,
	record.KeyLastName,
	record.KeyAddress,
	record.KeyDateOfBirth,
	record.KeyExpirationDate,
	record.KeyIssueDate,
	record.KeyGender,
	record.KeyDocumentNumber,
}

// Writer writes results to an XLSX workbook.
type Writer struct {
	path string
}

var _ store.Writer = (*Writer)(nil)

// New returns a Writer for dir/extraction_results.xlsx.
func New(dir string) *Writer {
	return &Writer{path: filepath.Join(dir, DefaultFileName)}
}

// NewFile returns a Writer for an explicit file path.
func NewFile(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the file the writer targets.
func (w *Writer) Path() string {
	return w.path
}

// Write lays out one row per image, sorted by name. After the fixed columns
// come one column per additional_info key seen in any record, then raw_text.
func (w *Writer) Write(ctx context.Context, results store.Results) error {
	if observer := observability.ObserverFromContext(ctx); observer != nil {
		var span observability.Span
		_, span = observer.StartSpan(ctx, observability.SpanStoreWrite,
			observability.String(observability.AttrStorePath, w.path),
			observability.String(observability.AttrStoreFormat, "xlsx"),
			observability.Int(observability.AttrStoreRecords, len(results)),
		)
		defer span.End()
	}

	f, err := Build(results)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// Headers returns the header row for results.
func Headers(results store.Results) []string {
	headers := append([]string{imageColumn}, Columns...)
	for _, key := range additionalKeys(results) {
		headers = append(headers, additionalPrefix+key)
	}
	return append(headers, record.KeyRawText)
}

// Build renders results into a new workbook. The caller closes it.
func Build(results store.Results) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	index, _ := f.GetSheetIndex(SheetName)
	f.SetActiveSheet(index)

	headers := Headers(results)
	extra := additionalKeys(results)

	rows := [][]any{toRow(headers)}
	for _, name := range results.Names() {
		rows = append(rows, recordRow(name, results[name], extra))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	last, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetColWidth(SheetName, "A", last, 20)
	return f, nil
}

func recordRow(name string, rec record.Record, extra []string) []any {
	row := []any{name}
	for _, key := range Columns {
		row = append(row, cellValue(rec[key]))
	}
	info := rec.AdditionalInfo()
	for _, key := range extra {
		row = append(row, cellValue(info[key]))
	}
	return append(row, cellValue(rec[record.KeyRawText]))
}

func cellValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func additionalKeys(results store.Results) []string {
	seen := map[string]bool{}
	for _, rec := range results {
		for key := range rec.AdditionalInfo() {
			seen[key] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func toRow(values []string) []any {
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
