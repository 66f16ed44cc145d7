// Package export writes the films-per-character dataset to an xlsx workbook.
package export

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chardash/internal/chart"
	"chardash/internal/errors"
	"chardash/internal/log"

	"github.com/xuri/excelize/v2"
)

// SheetName is the only sheet in an exported workbook.
const SheetName = chart.Title

var (
	headers = []string{"Character", "Number of Films", "Films", "Percentage"}
	widths  = []float64{25, 15, 50, 12}
)

// FileName is the workbook name for day t.
func FileName(t time.Time) string {
	return "disney-characters-films-" + t.UTC().Format("2006-01-02") + ".xlsx"
}

// WriteFilms writes ds as a workbook to w.
func WriteFilms(w io.Writer, ds chart.Dataset) error {
	if ds.Empty() {
		return errors.ErrEmptyDataset
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return errors.NewExportError("failed to name sheet", "", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return errors.NewExportError("failed to write header", "", err)
	}
	for i, s := range ds.Slices {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.NewExportError("failed to address row", "", err)
		}
		row := []interface{}{s.Name, s.Films, strings.Join(s.Titles, ", "), s.FormatPercentage(ds.Total)}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return errors.NewExportError("failed to write row", "", err)
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return errors.NewExportError("failed to address column", "", err)
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return errors.NewExportError("failed to size column", "", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.NewExportError("failed to write workbook", "", err)
	}
	return nil
}

// Exporter writes workbooks into a directory.
type Exporter struct {
	dir string
	now func() time.Time
}

// NewExporter creates an exporter writing into dir.
func NewExporter(dir string) *Exporter {
	if dir == "" {
		dir = "."
	}
	return &Exporter{dir: dir, now: time.Now}
}

// Export writes ds to today's file and returns its path.
func (e *Exporter) Export(ds chart.Dataset) (string, error) {
	if ds.Empty() {
		return "", errors.ErrEmptyDataset
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", errors.NewExportError("failed to create export directory", e.dir, err)
	}

	path := filepath.Join(e.dir, FileName(e.now()))
	file, err := os.Create(path)
	if err != nil {
		return "", errors.NewExportError("failed to create file", path, err)
	}

	if err := WriteFilms(file, ds); err != nil {
		file.Close()
		os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", errors.NewExportError("failed to close file", path, err)
	}

	log.LogWithFields(log.F("path", path), log.F("rows", len(ds.Slices))).Info("exported films per character")
	return path, nil
}
