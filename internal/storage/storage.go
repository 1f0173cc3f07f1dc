package storage

import "context"

// Storage abstracts persistence for the price snapshot.
type Storage interface {
	// ReplaceAll discards every stored row and inserts rows as the new
	// snapshot in one atomic unit. It returns the number of rows inserted.
	ReplaceAll(ctx context.Context, rows []PriceRow) (int, error)

	// ListGrades returns distinct grades in ascending order. A non-empty query
	// keeps only grades containing it, case-insensitively.
	ListGrades(ctx context.Context, query string) ([]string, error)

	// GetByGrade returns the rows whose grade equals grade, ordered by std.
	GetByGrade(ctx context.Context, grade string) ([]PriceRow, error)

	Ping(ctx context.Context) error

	// Close releases any resources (no-op for in-memory).
	Close() error
}
