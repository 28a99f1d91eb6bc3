package sheet

import (
	"context"
	"fmt"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
)

// Cell identifies a written cell.
type Cell struct {
	Table  string
	Row    int
	Column int
	Range  string
}

// UpdateCellByKey is the single row-address-by-rescan write path. It reads
// the whole table, resolves the first target column present in the header,
// finds the first row whose keyColumn cell equals keyValue and writes value
// into that one cell.
//
// The read and the write are separate round trips with no lock between them;
// concurrent updates of the same row are last-writer-wins.
func UpdateCellByKey(ctx context.Context, s Store, table, keyColumn, keyValue, value string, targetColumns ...string) (Cell, error) {
	grid, err := s.ReadTable(ctx, table)
	if err != nil {
		return Cell{}, err
	}
	if len(grid) < 2 {
		return Cell{}, fmt.Errorf("%w: %s has no rows", apperrors.ErrNotFound, table)
	}
	header := grid[0]
	keyIdx := IndexOf(header, keyColumn)
	if keyIdx < 0 {
		return Cell{}, fmt.Errorf("%w: %s has no %q column", apperrors.ErrSchema, table, keyColumn)
	}
	targetIdx := -1
	for _, c := range targetColumns {
		if targetIdx = IndexOf(header, c); targetIdx >= 0 {
			break
		}
	}
	if targetIdx < 0 {
		return Cell{}, fmt.Errorf("%w: %s has none of %v", apperrors.ErrSchema, table, targetColumns)
	}

	for i := 1; i < len(grid); i++ {
		row := grid[i]
		if keyIdx < len(row) && row[keyIdx] == keyValue {
			cell := Cell{Table: table, Row: i + 1, Column: targetIdx, Range: CellRange(table, i+1, targetIdx)}
			if err := s.WriteCell(ctx, table, cell.Row, cell.Column, value); err != nil {
				return Cell{}, err
			}
			return cell, nil
		}
	}
	return Cell{}, fmt.Errorf("%w: %s %s=%q", apperrors.ErrNotFound, table, keyColumn, keyValue)
}
