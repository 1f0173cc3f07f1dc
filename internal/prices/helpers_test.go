package prices

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// xlsx builds a single-sheet workbook whose rows start at A1.
func xlsx(t *testing.T, rows ...[]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	writeRows(t, f, "Sheet1", rows)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func writeRows(t *testing.T, f *excelize.File, sheet string, rows [][]any) {
	t.Helper()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
}

func f64(v float64) *float64 { return &v }

// record runs header/value pairs through Sheet.Records as a one-row sheet.
func record(t *testing.T, pairs ...string) Record {
	t.Helper()
	require.Zero(t, len(pairs)%2, "pairs must be header/value")
	s := &Sheet{}
	var row []string
	for i := 0; i < len(pairs); i += 2 {
		s.Header = append(s.Header, pairs[i])
		row = append(row, pairs[i+1])
	}
	s.Rows = [][]string{row}
	recs := s.Records()
	require.Len(t, recs, 1)
	return recs[0]
}
