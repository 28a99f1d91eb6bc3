package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	ID     string `sheet:"id"`
	Email  string `sheet:"email"`
	Note   string `sheet:"note"`
	Ignore string
}

var people = NewSchema[person]("People", "id", "legacy", "email")

func TestSchema_DecodeByHeaderName(t *testing.T) {
	grid := Grid{
		{"email", "id", "note"},
		{"a@x.edu", "P1", "hello"},
		{"b@x.edu"},
	}
	got := people.Decode(grid)
	require.Len(t, got, 2)
	assert.Equal(t, person{ID: "P1", Email: "a@x.edu", Note: "hello"}, got[0])
	assert.Equal(t, person{Email: "b@x.edu"}, got[1])
}

func TestSchema_EncodeUsesDeclaredOrder(t *testing.T) {
	row := people.Encode(person{ID: "P1", Email: "a@x.edu", Note: "not in order"})
	assert.Equal(t, []string{"P1", "", "a@x.edu"}, row)
}

func TestNewSchema_PanicsOnNonStringField(t *testing.T) {
	type bad struct {
		Count int `sheet:"count"`
	}
	assert.Panics(t, func() { NewSchema[bad]("Bad", "count") })
}

func TestNewSchema_PanicsOnDuplicateTag(t *testing.T) {
	type dup struct {
		A string `sheet:"x"`
		B string `sheet:"x"`
	}
	assert.Panics(t, func() { NewSchema[dup]("Dup", "x") })
}
