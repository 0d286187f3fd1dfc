package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/poku-e/culinart/internal/restaurant"
)

var sample = []restaurant.Restaurant{
	{ID: "a", Name: "Melting Pot", City: "Medan", Rating: 4.2, Description: "cheese, fondue", PictureID: "14"},
	{ID: "b", Name: "Kafe Kita", City: "Gorontalo", Rating: 4, Description: "coffee"},
}

func pic(id string) string {
	if id == "" {
		return ""
	}
	return "https://img.test/" + id
}

func TestRows(t *testing.T) {
	rows := Rows(sample, pic)
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	want := []string{"a", "Melting Pot", "Medan", "4.2", "cheese, fondue", "https://img.test/14"}
	for i := range want {
		if rows[0][i] != want[i] {
			t.Fatalf("row[0] = %v", rows[0])
		}
	}
	if rows[1][3] != "4.0" || rows[1][5] != "" {
		t.Fatalf("row[1] = %v", rows[1])
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, Rows(sample, pic)); err != nil {
		t.Fatal(err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 || recs[0][0] != "id" || recs[1][4] != "cheese, fondue" {
		t.Fatalf("csv = %v", recs)
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteFile(path, Rows(sample, pic)); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows(Sheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[0][1] != "name" || rows[2][1] != "Kafe Kita" {
		t.Fatalf("xlsx rows = %v", rows)
	}
	if v, _ := f.GetCellValue(Sheet, "D2"); v != "4.2" {
		t.Fatalf("rating = %q", v)
	}
}

func TestWriteFileFormat(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "out.txt"), nil)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v", err)
	}
}
