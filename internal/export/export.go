// Package export renders contact result sets as downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"contactdb/internal/models"
)

const xlsxSheet = "Contacts"

// WriteCSV writes the selected fields of each contact as CSV with a header
// row, in the order given.
func WriteCSV(w io.Writer, fields []string, contacts []models.Contact) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(fields); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(fields))
	for i := range contacts {
		for j, f := range fields {
			row[j] = contacts[i].Field(f)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the selected fields of each contact as a single-sheet
// XLSX workbook with a header row.
func WriteXLSX(w io.Writer, fields []string, contacts []models.Contact) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	header := make([]any, len(fields))
	for i, field := range fields {
		header[i] = field
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	row := make([]any, len(fields))
	for i := range contacts {
		for j, field := range fields {
			row[j] = contacts[i].Field(field)
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// ContentType returns the response content type for an export format.
func ContentType(format string) string {
	if format == models.FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Filename returns the attachment filename for an export format.
func Filename(format string) string {
	return "contacts." + format
}
