package prices

import (
	"context"

	"github.com/bher20/pricelookup/internal/storage"
)

func price(v float64) *float64 { return &v }

// DemoRows is a small snapshot for trying the UI without a spreadsheet.
func DemoRows() []storage.PriceRow {
	return []storage.PriceRow{
		{Grade: "BOPF", Std: "STD1", Price: price(1200)},
		{Grade: "BOPF", Std: "STD2", Price: price(1250)},
		{Grade: "OP", Std: "STD1", Price: price(1500)},
	}
}

// Seed replaces the stored snapshot with DemoRows.
func (s *Service) Seed(ctx context.Context) (int, error) {
	n, err := s.store.ReplaceAll(ctx, DemoRows())
	if err != nil {
		return 0, newError(StorageError, "Failed to seed rows", err)
	}
	return n, nil
}
