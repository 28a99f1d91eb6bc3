package sheet

import (
	"context"
	"fmt"
	"sync"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
)

// MemoryStore is an in-process Store for local development and tests.
type MemoryStore struct {
	mu         sync.Mutex
	tables     map[string]Grid
	cellWrites int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string]Grid)}
}

// Seed replaces the named table with a copy of grid, creating it if needed.
func (m *MemoryStore) Seed(name string, grid Grid) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[name] = copyGrid(grid)
}

// CellWrites reports how many WriteCell calls have succeeded.
func (m *MemoryStore) CellWrites() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cellWrites
}

func (m *MemoryStore) ReadTable(_ context.Context, name string) (Grid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTableNotFound, name)
	}
	return copyGrid(g), nil
}

func (m *MemoryStore) AppendRows(_ context.Context, name string, rows Grid) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.tables[name]
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrTableNotFound, name)
	}
	m.tables[name] = append(g, copyGrid(rows)...)
	return nil
}

func (m *MemoryStore) WriteCell(_ context.Context, name string, row, col int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.tables[name]
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrTableNotFound, name)
	}
	if row < 1 || col < 0 {
		return fmt.Errorf("%w: invalid cell %d,%d", apperrors.ErrSchema, row, col)
	}
	for len(g) < row {
		g = append(g, []string{})
	}
	r := g[row-1]
	for len(r) <= col {
		r = append(r, "")
	}
	r[col] = value
	g[row-1] = r
	m.tables[name] = g
	m.cellWrites++
	return nil
}

func copyGrid(g Grid) Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]string(nil), row...)
	}
	return out
}
