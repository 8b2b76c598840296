// Package report holds the tabular result model shared by the query,
// export, and API layers.
package report

// ResultSet is a tabular, read-only query result ready for CSV or table
// serialization. The header row always matches the selected columns.
type ResultSet struct {
	columns []string
	rows    [][]string
}

// NewResultSet creates a ResultSet with the given column header.
func NewResultSet(columns []string) ResultSet {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return ResultSet{columns: cols}
}

// Columns returns the column header.
func (r ResultSet) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Rows returns the data rows.
func (r ResultSet) Rows() [][]string {
	out := make([][]string, len(r.rows))
	for i, row := range r.rows {
		cp := make([]string, len(row))
		copy(cp, row)
		out[i] = cp
	}
	return out
}

// Len returns the number of data rows.
func (r ResultSet) Len() int { return len(r.rows) }

// WithRow returns a copy with the given row appended.
func (r ResultSet) WithRow(values ...string) ResultSet {
	row := make([]string, len(values))
	copy(row, values)
	r.rows = append(r.rows[:len(r.rows):len(r.rows)], row)
	return r
}
