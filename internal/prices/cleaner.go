package prices

import "github.com/bher20/pricelookup/internal/storage"

// Record maps canonical column keys to raw cell text. Every known column is
// present; cells missing from the sheet are "".
type Record map[string]string

// Records projects the sheet's data rows onto the canonical columns. Headers
// are normalized, unknown columns are dropped and, when two headers normalize
// to the same key, the left-most column wins. Blank rows are skipped.
func (s *Sheet) Records() []Record {
	index := make(map[string]int)
	for i, h := range s.Header {
		key := NormalizeHeader(h)
		if !IsKnownColumn(key) {
			continue
		}
		if _, dup := index[key]; dup {
			continue
		}
		index[key] = i
	}

	out := make([]Record, 0, len(s.Rows))
	for _, row := range s.Rows {
		if isBlankRow(row) {
			continue
		}
		rec := make(Record, len(knownColumns))
		for key := range knownColumns {
			rec[key] = ""
		}
		for key, i := range index {
			if i < len(row) {
				rec[key] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out
}

// CleanRecord coerces a record into a PriceRow. ok is false when grade or std
// is empty after trimming.
func CleanRecord(rec Record) (row storage.PriceRow, ok bool) {
	row = storage.PriceRow{
		Grade: CoerceString(rec[ColGrade]),
		Std:   CoerceString(rec[ColStd]),
		Price: CoerceNumber(rec[ColPrice]),

		Bulk: CoerceNumber(rec[ColBulk]),
		Kg10: CoerceNumber(rec[ColKg10]),
		Kg5:  CoerceNumber(rec[ColKg5]),

		Carton1kg:  CoerceNumber(rec[ColCarton1kg]),
		Carton500g: CoerceNumber(rec[ColCarton500g]),
		Carton250g: CoerceNumber(rec[ColCarton250g]),
		Carton100g: CoerceNumber(rec[ColCarton100g]),
	}
	return row, row.Grade != "" && row.Std != ""
}

// CleanRecords keeps, in order, the records that carry both grade and std.
// skipped counts the records that were dropped.
func CleanRecords(recs []Record) (rows []storage.PriceRow, skipped int) {
	rows = make([]storage.PriceRow, 0, len(recs))
	for _, rec := range recs {
		row, ok := CleanRecord(rec)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped
}
