package export

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"contactdb/internal/models"
)

func sampleContacts() []models.Contact {
	return []models.Contact{
		{Email: "ada@example.com", FirstName: "Ada", Company: "Analytical"},
		{Email: "grace@example.com", FirstName: "Grace", Company: "Navy"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	fields := []string{"email", "first_name", "company"}

	if err := WriteCSV(&buf, fields, sampleContacts()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	want := [][]string{
		{"email", "first_name", "company"},
		{"ada@example.com", "Ada", "Analytical"},
		{"grace@example.com", "Grace", "Navy"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("csv = %v, want %v", records, want)
	}
}

func TestWriteCSV_EmptyResultStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []string{"email"}, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if got := buf.String(); got != "email\n" {
		t.Errorf("csv = %q, want header row only", got)
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	fields := []string{"email", "first_name"}

	if err := WriteXLSX(&buf, fields, sampleContacts()); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	want := [][]string{
		{"email", "first_name"},
		{"ada@example.com", "Ada"},
		{"grace@example.com", "Grace"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestContentType(t *testing.T) {
	if got := ContentType(models.FormatCSV); got != "text/csv" {
		t.Errorf("ContentType(csv) = %q", got)
	}
	if got := ContentType(models.FormatXLSX); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("ContentType(xlsx) = %q", got)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(models.FormatCSV); got != "contacts.csv" {
		t.Errorf("Filename(csv) = %q", got)
	}
	if got := Filename(models.FormatXLSX); got != "contacts.xlsx" {
		t.Errorf("Filename(xlsx) = %q", got)
	}
}
