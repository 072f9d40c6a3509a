package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/models"
)

// NormalizeTable turns the sparse grid of one table into a dense table.
//
// The steps run in a fixed order: empty cells declared by the table are
// materialized, the present row and column indices are sorted, gaps are filled
// with empty strings, column-spanning merged cells are joined, and finally the
// first row is promoted to column names when the table holds a column header
// and promoteHeader is set.
func NormalizeTable(tableID string, p *Placement, set *BlockSet, idx *Indices, promoteHeader bool) (models.Table, error) {
	grid, ok := p.Grids[tableID]
	if !ok {
		grid = NewSparseGrid()
	}

	materializeEmptyCells(tableID, grid, set, idx)

	rows, cols := grid.Axes()
	dense, rowPos, colPos := densify(grid, rows, cols)

	if err := mergeColumnSpans(tableID, dense, rowPos, colPos, set, idx); err != nil {
		return models.Table{}, err
	}

	table := models.Table{
		ID:            tableID,
		RowIndices:    rows,
		ColumnIndices: cols,
		Rows:          dense,
	}
	if tb, ok := set.Table(tableID); ok {
		table.Page = tb.Page
	}

	if promoteHeader && p.Headers[tableID] && len(dense) > 0 {
		table.Columns = columnNames(dense[0])
		table.Rows = dense[1:]
		table.RowIndices = rows[1:]
		table.HasHeader = true
	}

	return table, nil
}

// materializeEmptyCells sets cells of the table that have no relationship at all
// to the empty string, so they appear in the grid.
func materializeEmptyCells(tableID string, grid *SparseGrid, set *BlockSet, idx *Indices) {
	cellIDs, _ := idx.TableChildren.Children(tableID)
	for _, id := range cellIDs {
		if !idx.CellChildren.IsEmpty(id) {
			continue
		}
		cell, ok := set.Cell(id)
		if !ok {
			continue
		}
		grid.SetDefault(cell.RowIndex-1, cell.ColumnIndex-1, "")
	}
}

// densify projects the grid onto rows × cols, filling unset positions with "".
// It also returns the position of every original row and column index.
func densify(grid *SparseGrid, rows, cols []int) ([][]string, map[int]int, map[int]int) {
	rowPos := make(map[int]int, len(rows))
	for i, r := range rows {
		rowPos[r] = i
	}
	colPos := make(map[int]int, len(cols))
	for j, c := range cols {
		colPos[c] = j
	}

	dense := make([][]string, len(rows))
	for i, r := range rows {
		dense[i] = make([]string, len(cols))
		for j, c := range cols {
			if v, ok := grid.Get(r, c); ok {
				dense[i][j] = v
			}
		}
	}
	return dense, rowPos, colPos
}

// mergeColumnSpans joins the text of every single-row merged cell and writes
// the result into each spanned column.
func mergeColumnSpans(tableID string, dense [][]string, rowPos, colPos map[int]int, set *BlockSet, idx *Indices) error {
	mergedIDs, _ := idx.TableMergedCells.Children(tableID)
	for _, id := range mergedIDs {
		mc, ok := set.MergedCell(id)
		if !ok {
			return fmt.Errorf("%w: table %q references unknown merged cell %q", ErrMalformedGraph, tableID, id)
		}
		// Only column merges are handled.
		if mc.RowSpan != 1 {
			continue
		}

		row0 := mc.RowIndex - 1
		col0 := mc.ColumnIndex - 1
		if mc.ColumnSpan < 1 {
			return fmt.Errorf("%w: merged cell %q has column span %d", ErrOutOfRangeSpan, id, mc.ColumnSpan)
		}
		r, ok := rowPos[row0]
		if !ok {
			return fmt.Errorf("%w: merged cell %q row %d not in table %q", ErrOutOfRangeSpan, id, row0, tableID)
		}

		positions := make([]int, mc.ColumnSpan)
		for k := range positions {
			c, ok := colPos[col0+k]
			if !ok {
				return fmt.Errorf("%w: merged cell %q column %d not in table %q", ErrOutOfRangeSpan, id, col0+k, tableID)
			}
			positions[k] = c
		}

		var sb strings.Builder
		for _, c := range positions {
			sb.WriteString(" ")
			sb.WriteString(dense[r][c])
		}
		merged := strings.TrimSpace(sb.String())
		for _, c := range positions {
			dense[r][c] = merged
		}
	}
	return nil
}

// columnNames builds unique column names from the header row.
func columnNames(header []string) []string {
	names := make([]string, len(header))
	for i, text := range header {
		names[i] = fmt.Sprintf("Column #%d: %s", i, text)
	}
	return names
}
