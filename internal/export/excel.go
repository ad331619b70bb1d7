// Package export renders the completion activity log as an Excel
// workbook for family record-keeping and care reviews.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/carebell/carebell/internal/model"
)

// sheetNameLimit is Excel's hard cap on sheet names.
const sheetNameLimit = 31

// Workbook wraps excelize with a row cursor so callers never deal
// with cell coordinates.
type Workbook struct {
	file       *excelize.File
	sheet      string
	currentRow int
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{file: excelize.NewFile()}
}

// AddSheet starts a new sheet and makes it current.
func (w *Workbook) AddSheet(name string) error {
	if len(name) > sheetNameLimit {
		name = name[:sheetNameLimit]
	}

	if w.sheet == "" {
		// The default Sheet1 becomes the first sheet.
		w.file.SetSheetName("Sheet1", name)
	} else {
		if _, err := w.file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	w.sheet = name
	w.currentRow = 1
	return nil
}

// WriteHeader writes a bold header row to the current sheet.
func (w *Workbook) WriteHeader(columns []string) error {
	if w.sheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, column := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.sheet, cell, column); err != nil {
			return err
		}
	}

	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, w.currentRow)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), w.currentRow)
		_ = w.file.SetCellStyle(w.sheet, startCell, endCell, style)
	}

	w.currentRow++
	return nil
}

// WriteRow appends one data row to the current sheet.
func (w *Workbook) WriteRow(values []any) error {
	if w.sheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.sheet, cell, value); err != nil {
			return err
		}
	}

	w.currentRow++
	return nil
}

// Save writes the workbook to out.
func (w *Workbook) Save(out io.Writer) error {
	return w.file.Write(out)
}

// Close releases the underlying file resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// WriteActivity renders the activity log, one row per completed block,
// in the order given.
func WriteActivity(out io.Writer, entries []model.ActivityEntry) error {
	wb := NewWorkbook()
	defer wb.Close()

	if err := wb.AddSheet("Activity"); err != nil {
		return err
	}
	if err := wb.WriteHeader([]string{"Date", "Completed At", "Block"}); err != nil {
		return err
	}
	for _, entry := range entries {
		row := []any{entry.DateKey, entry.CompletedAt.Format("15:04"), entry.Title}
		if err := wb.WriteRow(row); err != nil {
			return err
		}
	}
	return wb.Save(out)
}
