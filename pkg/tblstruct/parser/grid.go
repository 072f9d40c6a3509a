package parser

import "sort"

// Coord is a 0-based (row, column) position in a table.
type Coord struct {
	Row int
	Col int
}

// SparseGrid maps coordinates to text. Unset coordinates are absent.
type SparseGrid struct {
	cells map[Coord]string
}

// NewSparseGrid returns an empty grid.
func NewSparseGrid() *SparseGrid {
	return &SparseGrid{cells: make(map[Coord]string)}
}

// Get returns the text at (row, col) and whether it is set.
func (g *SparseGrid) Get(row, col int) (string, bool) {
	v, ok := g.cells[Coord{row, col}]
	return v, ok
}

// Set overwrites the text at (row, col).
func (g *SparseGrid) Set(row, col int, text string) {
	g.cells[Coord{row, col}] = text
}

// SetDefault sets (row, col) to text only if it is unset.
func (g *SparseGrid) SetDefault(row, col int, text string) {
	if _, ok := g.cells[Coord{row, col}]; !ok {
		g.cells[Coord{row, col}] = text
	}
}

// Append adds text at (row, col), joining with a newline if content exists.
func (g *SparseGrid) Append(row, col int, text string) {
	c := Coord{row, col}
	if existing, ok := g.cells[c]; ok {
		g.cells[c] = existing + "\n" + text
		return
	}
	g.cells[c] = text
}

// Len returns the number of set coordinates.
func (g *SparseGrid) Len() int {
	return len(g.cells)
}

// Axes returns the sorted distinct row and column indices present in the grid.
func (g *SparseGrid) Axes() (rows, cols []int) {
	rowSet := make(map[int]struct{})
	colSet := make(map[int]struct{})
	for c := range g.cells {
		rowSet[c.Row] = struct{}{}
		colSet[c.Col] = struct{}{}
	}
	return sortedKeys(rowSet), sortedKeys(colSet)
}

func sortedKeys(m map[int]struct{}) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
