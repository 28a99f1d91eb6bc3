package sheet

import (
	"fmt"
	"reflect"
)

// Schema binds a struct type to a table. Struct fields tagged `sheet:"col"`
// must be exported strings. Columns is the canonical append order; it is
// fixed per table and never derived from the live header.
type Schema[T any] struct {
	Table   string
	Columns []string
	fields  map[string]int
}

// NewSchema builds a schema for T. It panics on a malformed struct, so
// schemas are declared as package-level variables.
func NewSchema[T any](table string, columns ...string) *Schema[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("sheet: schema %s: %s is not a struct", table, t))
	}
	fields := make(map[string]int)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		col := f.Tag.Get("sheet")
		if col == "" || col == "-" {
			continue
		}
		if !f.IsExported() || f.Type.Kind() != reflect.String {
			panic(fmt.Sprintf("sheet: schema %s: field %s must be an exported string", table, f.Name))
		}
		if _, dup := fields[col]; dup {
			panic(fmt.Sprintf("sheet: schema %s: column %q tagged twice", table, col))
		}
		fields[col] = i
	}
	return &Schema[T]{Table: table, Columns: columns, fields: fields}
}

// FromRecord fills a T from rec; columns rec lacks stay "".
func (s *Schema[T]) FromRecord(rec Record) T {
	var v T
	rv := reflect.ValueOf(&v).Elem()
	for col, i := range s.fields {
		rv.Field(i).SetString(rec[col])
	}
	return v
}

// Record is the inverse of FromRecord.
func (s *Schema[T]) Record(v T) Record {
	rv := reflect.ValueOf(v)
	rec := make(Record, len(s.fields))
	for col, i := range s.fields {
		rec[col] = rv.Field(i).String()
	}
	return rec
}

// Decode maps every data row of grid onto T, keyed by the live header.
func (s *Schema[T]) Decode(grid Grid) []T {
	recs := Decode(grid)
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		out = append(out, s.FromRecord(rec))
	}
	return out
}

// Encode renders v as one row in the canonical column order.
func (s *Schema[T]) Encode(v T) []string {
	return Encode(s.Record(v), s.Columns)
}
