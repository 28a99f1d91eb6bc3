// Package sheet treats a remote spreadsheet as a set of header-driven tables.
//
// A table is a grid of string cells whose first row is the header. Rows below
// the header are in insertion order and are never reordered.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
)

// Grid is the raw cell layout of a table, header first.
type Grid [][]string

// Store is the remote boundary. Every call is one network round trip; there
// is no caching or batching across calls.
type Store interface {
	// ReadTable returns every row of the named table including the header.
	ReadTable(ctx context.Context, name string) (Grid, error)
	// AppendRows appends rows to the end of the table. Rows of a single call
	// land contiguously; concurrent calls may interleave.
	AppendRows(ctx context.Context, name string, rows Grid) error
	// WriteCell overwrites one cell. row is 1-based and counts the header;
	// col is 0-based.
	WriteCell(ctx context.Context, name string, row, col int, value string) error
}

type timeoutStore struct {
	next    Store
	timeout time.Duration
}

// WithTimeout bounds every call on s. Expired calls fail with
// ErrRemoteUnavailable.
func WithTimeout(s Store, d time.Duration) Store {
	if d <= 0 {
		return s
	}
	return &timeoutStore{next: s, timeout: d}
}

func (t *timeoutStore) ReadTable(ctx context.Context, name string) (Grid, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	g, err := t.next.ReadTable(ctx, name)
	return g, deadline(ctx, name, err)
}

func (t *timeoutStore) AppendRows(ctx context.Context, name string, rows Grid) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return deadline(ctx, name, t.next.AppendRows(ctx, name, rows))
}

func (t *timeoutStore) WriteCell(ctx context.Context, name string, row, col int, value string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return deadline(ctx, name, t.next.WriteCell(ctx, name, row, col, value))
}

func deadline(ctx context.Context, name string, err error) error {
	if err == nil || errors.Is(err, apperrors.ErrRemoteUnavailable) {
		return err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %w", apperrors.ErrRemoteUnavailable, name, err)
	}
	return err
}

// TimestampLayout matches the ISO-8601 millisecond form already stored in the sheets.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp formats t in UTC with TimestampLayout.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
