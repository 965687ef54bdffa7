package dataset

// Table is a raw CSV snapshot: a header and string cells. It carries no
// types; the decoders in this package turn it into the typed source tables
// consumed by analysis.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable builds a Table from a header and rows. Rows shorter than the
// header are padded when read through Cell.
func NewTable(columns []string, rows [][]string) Table {
	t := Table{Columns: columns, Rows: rows, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		// First occurrence wins on duplicate headers.
		if _, ok := t.index[c]; !ok {
			t.index[c] = i
		}
	}
	return t
}

// Empty reports whether the table holds no data rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// HasColumn reports whether the header names the column.
func (t Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Cell returns the value at (row, column name), or "" when the column is
// absent or the row is short.
func (t Table) Cell(row int, column string) string {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][i]
}
