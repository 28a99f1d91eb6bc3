package sheet

// Record is a decoded, header-keyed view of one data row. Absent cells are "".
type Record map[string]string

// Decode turns a header row plus data rows into records. Grids with fewer
// than two rows yield no records. Short rows are padded with "" and cells
// beyond the header are ignored.
func Decode(rows Grid) []Record {
	if len(rows) < 2 {
		return []Record{}
	}
	header := rows[0]
	out := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

// Encode lays rec out in exactly the given column order, using "" for
// columns the record does not carry.
func Encode(rec Record, columns []string) []string {
	row := make([]string, len(columns))
	for i, c := range columns {
		row[i] = rec[c]
	}
	return row
}

// IndexOf returns the position of column in header, or -1.
func IndexOf(header []string, column string) int {
	for i, h := range header {
		if h == column {
			return i
		}
	}
	return -1
}
