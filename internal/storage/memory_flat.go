package storage

import (
	"context"
	"sort"
	"sync"
)

// MemoryStorage is an in-memory Storage implementation, useful for tests and
// simple single-process deployments. Rows live in one slice which is swapped
// wholesale on ReplaceAll, so readers never see a partial snapshot.
type MemoryStorage struct {
	mu     sync.RWMutex
	rows   []PriceRow
	nextID uint
}

// NewMemory returns an empty MemoryStorage.
func NewMemory() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Close() error { return nil }

func (m *MemoryStorage) Ping(ctx context.Context) error { return nil }

func (m *MemoryStorage) ReplaceAll(ctx context.Context, rows []PriceRow) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	next := make([]PriceRow, len(rows))
	for i, r := range rows {
		m.nextID++
		r.ID = m.nextID
		next[i] = r
	}
	m.rows = next
	return len(next), nil
}

func (m *MemoryStorage) ListGrades(ctx context.Context, query string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{})
	all := make([]string, 0)
	for _, r := range m.rows {
		if _, ok := seen[r.Grade]; ok {
			continue
		}
		seen[r.Grade] = struct{}{}
		all = append(all, r.Grade)
	}
	sort.Strings(all)
	return filterGrades(all, query), nil
}

func (m *MemoryStorage) GetByGrade(ctx context.Context, grade string) ([]PriceRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]PriceRow, 0)
	for _, r := range m.rows {
		if r.Grade == grade {
			out = append(out, r)
		}
	}
	// rows are held in id order, so a stable sort keeps insertion order
	// among equal stds.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Std < out[j].Std })
	return out, nil
}
