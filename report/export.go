package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const SheetName = "추출결과"

var header = []string{"ID", "계정명", "카테고리", "값", "출처", "상태", "신뢰도"}

// Display labels of the 상태 column.
const (
	statusFound   = "추출완료"
	statusMissing = "N/A"
)

func record(r Row) []string {
	status := statusMissing
	if r.Resolved() {
		status = statusFound
	}
	return []string{
		strconv.Itoa(r.ID),
		r.Name,
		string(r.Category),
		r.Value,
		r.Source,
		status,
		strconv.FormatFloat(r.Confidence, 'f', 2, 64),
	}
}

// WriteCSV writes rows as UTF-8 CSV with a byte order mark so spreadsheet
// applications detect the encoding.
func WriteCSV(w io.Writer, rows []Row) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(record(r)); err != nil {
			return fmt.Errorf("write row %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes rows to a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		cells := []any{r.ID, r.Name, string(r.Category), r.Value, r.Source, record(r)[5], r.Confidence}
		if err := f.SetSheetRow(SheetName, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return fmt.Errorf("write row %d: %w", r.ID, err)
		}
	}
	if err := f.SetColWidth(SheetName, "B", "B", 28); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ExportFileName names an export after the uploaded document, e.g.
// "report_추출결과_20240131_150405.xlsx".
func ExportFileName(source string, at time.Time, ext string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "document"
	}
	return fmt.Sprintf("%s_%s_%s.%s", base, SheetName, at.Format("20060102_150405"), strings.TrimPrefix(ext, "."))
}
