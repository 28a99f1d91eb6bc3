package sheet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
)

// PostgresStore keeps tables as rows of text arrays, for deployments that
// self-host the grid instead of using a spreadsheet. It follows the same
// contract as SheetsStore, including the absence of row-level locking for
// single-cell writes.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore { return &PostgresStore{db: db} }

// EnsureTable creates the backing tables if they do not exist (idempotent).
func (p *PostgresStore) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sheet_tables (
  name TEXT PRIMARY KEY,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS sheet_rows (
  sheet TEXT NOT NULL REFERENCES sheet_tables(name) ON DELETE CASCADE,
  row_num INT NOT NULL,
  cells TEXT[] NOT NULL DEFAULT '{}',
  PRIMARY KEY (sheet, row_num)
);
`
	_, err := p.db.ExecContext(ctx, ddl)
	return err
}

// CreateTable provisions name with header as row 1 unless it already exists.
func (p *PostgresStore) CreateTable(ctx context.Context, name string, header []string) error {
	if _, err := p.db.ExecContext(ctx, `INSERT INTO sheet_tables (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
		return unavailable("create", name, err)
	}
	if _, err := p.db.ExecContext(ctx,
		`INSERT INTO sheet_rows (sheet, row_num, cells) VALUES ($1, 1, $2) ON CONFLICT (sheet, row_num) DO NOTHING`,
		name, pq.Array(header)); err != nil {
		return unavailable("create", name, err)
	}
	return nil
}

type pgRow struct {
	RowNum int            `db:"row_num"`
	Cells  pq.StringArray `db:"cells"`
}

func (p *PostgresStore) ReadTable(ctx context.Context, name string) (Grid, error) {
	if err := p.mustExist(ctx, name); err != nil {
		return nil, err
	}
	var rows []pgRow
	const q = `SELECT row_num, array_replace(cells, NULL, '') AS cells FROM sheet_rows WHERE sheet = $1 ORDER BY row_num`
	if err := p.db.SelectContext(ctx, &rows, q, name); err != nil {
		return nil, unavailable("read", name, err)
	}
	grid := make(Grid, 0, len(rows))
	for _, r := range rows {
		// rows created by a single-cell write past the end leave gaps
		for len(grid) < r.RowNum-1 {
			grid = append(grid, []string{})
		}
		grid = append(grid, []string(r.Cells))
	}
	return grid, nil
}

func (p *PostgresStore) AppendRows(ctx context.Context, name string, rows Grid) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return unavailable("append", name, err)
	}
	defer tx.Rollback()

	// serializes appends per table so one call's rows stay contiguous
	var locked string
	if err := tx.GetContext(ctx, &locked, `SELECT name FROM sheet_tables WHERE name = $1 FOR UPDATE`, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", apperrors.ErrTableNotFound, name)
		}
		return unavailable("append", name, err)
	}
	var last int
	if err := tx.GetContext(ctx, &last, `SELECT COALESCE(MAX(row_num), 0) FROM sheet_rows WHERE sheet = $1`, name); err != nil {
		return unavailable("append", name, err)
	}
	for i, row := range rows {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sheet_rows (sheet, row_num, cells) VALUES ($1, $2, $3)`,
			name, last+i+1, pq.Array(row)); err != nil {
			return unavailable("append", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return unavailable("append", name, err)
	}
	return nil
}

// writeCellQuery pads the row with empty strings up to the target column
// before splicing the value in, so cells always keep a lower bound of 1.
const writeCellQuery = `UPDATE sheet_rows AS r
SET cells = p.cells[1:$3 - 1] || $4::text || p.cells[$3 + 1:cardinality(p.cells)]
FROM (
	SELECT CASE WHEN cardinality(cells) >= $3 THEN cells
		ELSE cells || array_fill(''::text, ARRAY[$3 - cardinality(cells)]) END AS cells
	FROM sheet_rows WHERE sheet = $1 AND row_num = $2
) AS p
WHERE r.sheet = $1 AND r.row_num = $2`

func (p *PostgresStore) WriteCell(ctx context.Context, name string, row, col int, value string) error {
	if row < 1 || col < 0 {
		return fmt.Errorf("%w: invalid cell %d,%d", apperrors.ErrSchema, row, col)
	}
	res, err := p.db.ExecContext(ctx, writeCellQuery, name, row, col+1, value)
	if err != nil {
		return unavailable("write", name, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	if err := p.mustExist(ctx, name); err != nil {
		return err
	}
	cells := make([]string, col+1)
	cells[col] = value
	if _, err := p.db.ExecContext(ctx,
		`INSERT INTO sheet_rows (sheet, row_num, cells) VALUES ($1, $2, $3)`,
		name, row, pq.Array(cells)); err != nil {
		return unavailable("write", name, err)
	}
	return nil
}

func (p *PostgresStore) mustExist(ctx context.Context, name string) error {
	var exists bool
	if err := p.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM sheet_tables WHERE name = $1)`, name); err != nil {
		return unavailable("lookup", name, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", apperrors.ErrTableNotFound, name)
	}
	return nil
}

func unavailable(op, table string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", apperrors.ErrRemoteUnavailable, op, table, err)
}
