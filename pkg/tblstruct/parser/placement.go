package parser

import (
	"fmt"

	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/models"
)

// Indices bundles the relationship indices needed to place and normalize tables.
type Indices struct {
	// CellChildren maps cells to their words (CHILD), with empty cells marked.
	CellChildren *RelationIndex
	// TableChildren maps tables to their cells (CHILD).
	TableChildren *RelationIndex
	// TableMergedCells maps tables to their merged cells (MERGED_CELL).
	TableMergedCells *RelationIndex
}

// BuildIndices builds every index used by PlaceLines and NormalizeTable.
func BuildIndices(set *BlockSet) *Indices {
	return &Indices{
		CellChildren:     BuildIndex(set.Cells, models.RelationshipChild, true),
		TableChildren:    BuildIndex(set.Tables, models.RelationshipChild, false),
		TableMergedCells: BuildIndex(set.Tables, models.RelationshipMergedCell, false),
	}
}

// Placement holds the sparse grid and header flag of every table.
type Placement struct {
	// Grids maps table id to its sparse grid. Every TABLE block has an entry.
	Grids map[string]*SparseGrid
	// Headers records tables with a line placed in a COLUMN_HEADER cell.
	Headers map[string]bool
	// Placed counts lines written into a grid.
	Placed int
	// Dropped lists lines whose word, cell or table could not be resolved.
	Dropped []string
}

// PlaceLines writes the text of every line into the grid of its owning table.
//
// A line is positioned by its first word only. Lines whose word has no cell, or
// whose cell has no table, are dropped. A line without a CHILD relationship, or
// with an empty one, yields ErrMalformedGraph.
func PlaceLines(set *BlockSet, idx *Indices) (*Placement, error) {
	p := &Placement{
		Grids:   make(map[string]*SparseGrid, len(set.Tables)),
		Headers: make(map[string]bool),
	}
	for _, t := range set.Tables {
		if _, ok := p.Grids[t.ID]; !ok {
			p.Grids[t.ID] = NewSparseGrid()
		}
	}

	for _, line := range set.Lines {
		rel, ok := line.Relationship(models.RelationshipChild)
		if !ok || len(rel.IDs) == 0 {
			return nil, fmt.Errorf("%w: line %q has no child words", ErrMalformedGraph, line.ID)
		}
		firstWordID := rel.IDs[0]

		cellID, ok := idx.CellChildren.Parent(firstWordID)
		if !ok {
			p.Dropped = append(p.Dropped, line.ID)
			continue
		}
		cell, ok := set.Cell(cellID)
		if !ok {
			p.Dropped = append(p.Dropped, line.ID)
			continue
		}
		tableID, ok := idx.TableChildren.Parent(cellID)
		if !ok {
			p.Dropped = append(p.Dropped, line.ID)
			continue
		}
		p.Grids[tableID].Append(cell.RowIndex-1, cell.ColumnIndex-1, line.Text)
		p.Placed++

		if cell.HasEntityType(models.EntityTypeColumnHeader) {
			p.Headers[tableID] = true
		}
	}

	return p, nil
}
