package models

import "strconv"

// Table is a reconstructed table: a dense grid of strings.
type Table struct {
	// ID is the id of the TABLE block.
	ID string `json:"id"`
	// Page is the page the table was found on (0 if unknown).
	Page int `json:"page,omitempty"`
	// Columns holds the promoted header names, in column order.
	// Empty when no header row was promoted.
	Columns []string `json:"columns,omitempty"`
	// RowIndices holds the original 0-based row index of every body row.
	RowIndices []int `json:"row_indices"`
	// ColumnIndices holds the original 0-based column index of every column.
	ColumnIndices []int `json:"column_indices"`
	// Rows is the table body, one slice per row with one entry per column.
	Rows [][]string `json:"rows"`
	// HasHeader is true when row 0 was promoted to Columns.
	HasHeader bool `json:"has_header"`
}

// RowCount returns the number of body rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns.
func (t *Table) ColCount() int {
	return len(t.ColumnIndices)
}

// Header returns the column names. Without a promoted header the
// original column indices are used.
func (t *Table) Header() []string {
	if t.HasHeader {
		return t.Columns
	}
	names := make([]string, len(t.ColumnIndices))
	for i, c := range t.ColumnIndices {
		names[i] = strconv.Itoa(c)
	}
	return names
}
