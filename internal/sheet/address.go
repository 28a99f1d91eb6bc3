package sheet

import (
	"strconv"
	"strings"
)

// ColumnLabel converts a 0-based column index to its A1 letter label using
// bijective base-26: 0 -> A, 25 -> Z, 26 -> AA, 701 -> ZZ, 702 -> AAA.
func ColumnLabel(index int) string {
	if index < 0 {
		return ""
	}
	var buf []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		buf = append(buf, byte('A'+(n-1)%26))
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// CellRange is the A1 range for one cell of a table; row is 1-based, col 0-based.
func CellRange(table string, row, col int) string {
	return quoteTable(table) + "!" + ColumnLabel(col) + strconv.Itoa(row)
}

// quoteTable wraps table names that A1 notation cannot take bare.
func quoteTable(name string) string {
	plain := name != ""
	for _, r := range name {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			plain = false
			break
		}
	}
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
