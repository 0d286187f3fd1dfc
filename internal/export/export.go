// Package export writes restaurant lists as CSV or XLSX tables.
package export

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/poku-e/culinart/internal/restaurant"
)

// ErrFormat is returned for output paths that are neither .csv nor .xlsx.
var ErrFormat = errors.New("out must end with .csv or .xlsx")

// Header is the first row of every export.
var Header = []string{"id", "name", "city", "rating", "description", "picture_url"}

// PictureFunc maps a picture id to an absolute URL.
type PictureFunc func(pictureID string) string

// Rows flattens list into table rows in Header order.
func Rows(list []restaurant.Restaurant, picture PictureFunc) [][]string {
	rows := make([][]string, 0, len(list))
	for _, r := range list {
		pic := ""
		if picture != nil {
			pic = picture(r.PictureID)
		}
		rows = append(rows, []string{
			r.ID,
			r.Name,
			r.City,
			strconv.FormatFloat(r.Rating, 'f', 1, 64),
			r.Description,
			pic,
		})
	}
	return rows
}

// WriteFile picks the format from the extension of path.
func WriteFile(path string, rows [][]string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := WriteCSV(f, rows); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case ".xlsx":
		return WriteXLSX(path, rows)
	default:
		return ErrFormat
	}
}

func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// Sheet is the name of the worksheet holding the table.
const Sheet = "Restaurants"

func WriteXLSX(path string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", Sheet); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(Sheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", cells(Header)); err != nil {
		return err
	}
	for i, r := range rows {
		row := cells(r)
		// rating is stored as a number so spreadsheets can sort on it
		if v, err := strconv.ParseFloat(r[3], 64); err == nil {
			row[3] = v
		}
		addr, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(addr, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func cells(rec []string) []interface{} {
	out := make([]interface{}, len(rec))
	for i, v := range rec {
		out[i] = v
	}
	return out
}
