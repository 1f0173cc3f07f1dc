package prices

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is the first worksheet of an uploaded file: the header row and the
// data rows below it, as raw cell text.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

var errNoSheets = errors.New("workbook has no sheets")

// ErrUnsupportedFormat is returned for spreadsheet formats that are
// recognized by extension but cannot be read.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

var unreadableExts = map[string]struct{}{
	".xls":  {},
	".xlsb": {},
	".ods":  {},
}

// ReadSheet parses data as a spreadsheet and returns its first sheet. Files
// named *.csv are read as comma separated text, legacy binary and
// OpenDocument files fail with ErrUnsupportedFormat, everything else is read
// as an OOXML workbook.
func ReadSheet(filename string, data []byte) (*Sheet, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".csv" {
		return readCSV(filename, data)
	}
	if _, ok := unreadableExts[ext]; ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return readWorkbook(data)
}

func readWorkbook(data []byte) (*Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, errNoSheets
	}
	name := names[0]

	// Raw values keep numeric cells as plain decimal text instead of their
	// display format.
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return newSheet(name, rows), nil
}

func readCSV(filename string, data []byte) (*Sheet, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return newSheet(name, rows), nil
}

// newSheet takes the first non-blank row as the header.
func newSheet(name string, rows [][]string) *Sheet {
	s := &Sheet{Name: name}
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		s.Header = row
		s.Rows = rows[i+1:]
		break
	}
	return s
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
