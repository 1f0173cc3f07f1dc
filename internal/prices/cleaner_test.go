package prices

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bher20/pricelookup/internal/storage"
)

func TestSheetRecords_NormalizesAndProjects(t *testing.T) {
	s := &Sheet{
		Header: []string{" grade", "Remarks", "STD ", "5Kg", "Price", " PRICE "},
		Rows: [][]string{
			{"BOPF", "ignored", "STD1", "10", "1", "2"},
			{"OP", "", "S"},
			{"", " ", ""},
		},
	}

	recs := s.Records()
	require.Len(t, recs, 2, "blank rows are skipped")

	assert.Equal(t, "BOPF", recs[0][ColGrade])
	assert.Equal(t, "STD1", recs[0][ColStd])
	assert.Equal(t, "10", recs[0][ColKg5])
	assert.Equal(t, "1", recs[0][ColPrice], "left-most duplicate column wins")
	_, hasRemarks := recs[0]["REMARKS"]
	assert.False(t, hasRemarks)

	// every known column is present, missing cells default to ""
	for key := range knownColumns {
		v, ok := recs[1][key]
		assert.True(t, ok, key)
		if key != ColGrade && key != ColStd {
			assert.Equal(t, "", v, key)
		}
	}
}

func TestCleanRecord(t *testing.T) {
	row, ok := CleanRecord(record(t,
		"Grade", " BOPF ",
		"STD", "STD1",
		"price", "1,200",
		"10kg", "50",
		"BULK", "",
		"100g Carton", "junk",
		" 1KG CARTON ", "0",
	))
	require.True(t, ok)
	assert.Equal(t, "BOPF", row.Grade)
	assert.Equal(t, "STD1", row.Std)
	assert.Equal(t, f64(1200), row.Price)
	assert.Equal(t, f64(50), row.Kg10)
	assert.Nil(t, row.Bulk)
	assert.Nil(t, row.Carton100g)
	assert.Equal(t, f64(0), row.Carton1kg)
	assert.Zero(t, row.ID)
}

func TestCleanRecords_FiltersAndKeepsOrder(t *testing.T) {
	recs := []Record{
		record(t, "GRADE", "B", "STD", "2"),
		record(t, "GRADE", "", "STD", "STD2", "PRICE", "900"),
		record(t, "GRADE", "A", "STD", "  "),
		record(t, "GRADE", "A", "STD", "1"),
	}

	rows, skipped := CleanRecords(recs)
	assert.Equal(t, 2, skipped)
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[0].Grade)
	assert.Equal(t, "A", rows[1].Grade)
}

func TestCleanRecords_Empty(t *testing.T) {
	rows, skipped := CleanRecords(nil)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.Zero(t, skipped)
}

func TestCleanRecords_SheetRoundTrip(t *testing.T) {
	s := &Sheet{
		Header: []string{"GRADE", "STD", "BULK", "1kg carton"},
		Rows: [][]string{
			{"BOPF", "STD1", "1,050.25", ""},
			{"BOPF", "", "9"},
			{"OP", "STD2", "abc", "12"},
		},
	}

	rows, skipped := CleanRecords(s.Records())
	want := []storage.PriceRow{
		{Grade: "BOPF", Std: "STD1", Bulk: f64(1050.25)},
		{Grade: "OP", Std: "STD2", Carton1kg: f64(12)},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("CleanRecords mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, skipped)
}
