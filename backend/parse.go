package backend

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrNoHeadings = errors.New("no heading row")
	ErrNoSeries   = errors.New("heading row names no series")
)

// ParseCSV reads a dataset whose first row holds the label heading followed
// by one heading per series, and whose other rows hold a label followed by
// one value per series. A trailing line without a newline is ignored, so a
// file that is still being written can be read.
func ParseCSV(r io.Reader) (*Dataset, error) {
	csvReader := csv.NewReader(NewLineReader(r))
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed reading CSV data: %w", err)
	}
	return fromRecords(records)
}

// ParseXLSX reads a dataset laid out like ParseCSV's from the named sheet
// of a workbook, or from its first sheet if sheet is empty.
func ParseXLSX(r io.Reader, sheet string) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed opening workbook: %w", err)
	}
	defer f.Close()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed reading sheet %q: %w", sheet, err)
	}
	return fromRecords(rows)
}

// WriteXLSX saves d to path as a single-sheet workbook.
func WriteXLSX(path string, d *Dataset) error {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"
	for i, record := range d.Records() {
		for col, cell := range record {
			name, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil {
				return err
			}
			var value any = cell
			if i > 0 && col > 0 {
				value = d.Values[col-1][i-1]
			}
			if err := f.SetCellValue(sheet, name, value); err != nil {
				return fmt.Errorf("failed setting cell %s: %w", name, err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed saving workbook: %w", err)
	}
	return nil
}

func fromRecords(records [][]string) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrNoHeadings
	}
	headings := records[0]
	if len(headings) < 2 {
		return nil, ErrNoSeries
	}
	d := &Dataset{
		LabelHeading: strings.TrimSpace(headings[0]),
		Names:        make([]string, 0, len(headings)-1),
		Values:       make([][]float64, len(headings)-1),
	}
	for _, heading := range headings[1:] {
		d.Names = append(d.Names, strings.TrimSpace(heading))
	}
	for row, rec := range records[1:] {
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		d.Labels = append(d.Labels, strings.TrimSpace(rec[0]))
		for s := range d.Values {
			var v float64
			if cell := cellAt(rec, s+1); cell != "" {
				parsed, err := strconv.ParseFloat(cell, 64)
				switch {
				case err != nil:
					log.Printf("failed parsing row %d series %q: %v", row+2, d.Names[s], err)
				case math.IsNaN(parsed) || math.IsInf(parsed, 0):
					log.Printf("ignoring non-finite value %q in row %d series %q", cell, row+2, d.Names[s])
				default:
					v = parsed
				}
			}
			d.Values[s] = append(d.Values[s], v)
		}
	}
	return d, nil
}

func cellAt(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
