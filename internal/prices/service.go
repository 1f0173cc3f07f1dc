package prices

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bher20/pricelookup/internal/metrics"
	"github.com/bher20/pricelookup/internal/storage"
)

// MaxSuggestions caps the grades returned for a search fragment.
const MaxSuggestions = 10

// Service runs spreadsheet imports and answers grade/tier queries against a
// single Storage.
type Service struct {
	store storage.Storage
	log   *zap.Logger
}

// NewService returns a Service backed by st. A nil logger disables logging.
func NewService(st storage.Storage, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, log: log}
}

// Upload is one file handed to Import.
type Upload struct {
	Filename string
	Data     []byte
}

// ImportResult summarizes a successful import.
type ImportResult struct {
	Sheet    string `json:"sheet"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// Import parses the upload, cleans its first sheet and replaces the stored
// snapshot with the result. On any error the previous snapshot is untouched.
func (s *Service) Import(ctx context.Context, up Upload) (*ImportResult, error) {
	started := time.Now()
	res, err := s.runImport(ctx, up)
	metrics.RecordImport(string(KindOf(err)), started, res.imported())
	if err != nil {
		s.log.Warn("import failed",
			zap.String("filename", up.Filename),
			zap.String("kind", string(KindOf(err))),
			zap.Error(err))
		return nil, err
	}
	s.log.Info("import complete",
		zap.String("filename", up.Filename),
		zap.String("sheet", res.Sheet),
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped),
		zap.Duration("took", time.Since(started)))
	return res, nil
}

func (s *Service) runImport(ctx context.Context, up Upload) (*ImportResult, error) {
	if up.Filename == "" || len(up.Data) == 0 {
		return nil, newError(InvalidInput, "No file uploaded", nil)
	}

	sheet, err := ReadSheet(up.Filename, up.Data)
	if errors.Is(err, ErrUnsupportedFormat) {
		return nil, newError(InvalidInput, "Unsupported file format. Save the sheet as .xlsx or .csv.", err)
	}
	if err != nil {
		return nil, newError(ParseError, "Failed to read Excel", err)
	}

	rows, skipped := CleanRecords(sheet.Records())
	if len(rows) == 0 {
		return nil, newError(NoValidRows, "No valid rows found. Need at least GRADE and STD.", nil)
	}

	n, err := s.store.ReplaceAll(ctx, rows)
	if err != nil {
		return nil, newError(StorageError, "Failed to save rows", err)
	}
	return &ImportResult{Sheet: sheet.Name, Imported: n, Skipped: skipped}, nil
}

func (r *ImportResult) imported() int {
	if r == nil {
		return 0
	}
	return r.Imported
}

// SuggestGrades returns grades containing q, at most MaxSuggestions of them.
// An empty q lists every grade.
func (s *Service) SuggestGrades(ctx context.Context, q string) ([]string, error) {
	q = strings.TrimSpace(q)
	grades, err := s.store.ListGrades(ctx, q)
	if err != nil {
		return nil, newError(StorageError, "Failed to list grades", err)
	}
	if grades == nil {
		grades = []string{}
	}
	if q != "" && len(grades) > MaxSuggestions {
		grades = grades[:MaxSuggestions]
	}
	return grades, nil
}

// PriceView is the tier table row served for a grade. Unquoted tiers stay
// as null so clients can show a placeholder.
type PriceView struct {
	Std        string   `json:"std"`
	Bulk       *float64 `json:"bulk"`
	Kg10       *float64 `json:"kg10"`
	Kg5        *float64 `json:"kg5"`
	Carton1kg  *float64 `json:"carton_1kg"`
	Carton500g *float64 `json:"carton_500g"`
	Carton250g *float64 `json:"carton_250g"`
	Carton100g *float64 `json:"carton_100g"`
}

func newPriceView(r storage.PriceRow) PriceView {
	return PriceView{
		Std:        r.Std,
		Bulk:       r.Bulk,
		Kg10:       r.Kg10,
		Kg5:        r.Kg5,
		Carton1kg:  r.Carton1kg,
		Carton500g: r.Carton500g,
		Carton250g: r.Carton250g,
		Carton100g: r.Carton100g,
	}
}

// PricesForGrade returns every tier row stored for grade, ordered by std.
func (s *Service) PricesForGrade(ctx context.Context, grade string) ([]PriceView, error) {
	grade = strings.TrimSpace(grade)
	if grade == "" {
		return nil, newError(MissingParameter, "grade is required", nil)
	}
	rows, err := s.store.GetByGrade(ctx, grade)
	if err != nil {
		return nil, newError(StorageError, "Failed to load prices", err)
	}
	out := make([]PriceView, 0, len(rows))
	for _, r := range rows {
		out = append(out, newPriceView(r))
	}
	return out, nil
}
