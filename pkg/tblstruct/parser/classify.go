package parser

import "github.com/ukaji3/tblstruct-go/pkg/tblstruct/models"

// BlockSet holds the blocks of a document partitioned by type.
// Each sequence preserves input order.
type BlockSet struct {
	Tables      []*models.Block
	Cells       []*models.Block
	MergedCells []*models.Block
	Lines       []*models.Block

	tablesByID      map[string]*models.Block
	cellsByID       map[string]*models.Block
	mergedCellsByID map[string]*models.Block
}

// ClassifyBlocks partitions blocks by their BlockType.
// Words and unknown block types are not classified; they are only reachable
// as relationship targets. The returned set references the input slice.
func ClassifyBlocks(blocks []models.Block) *BlockSet {
	set := &BlockSet{
		tablesByID:      make(map[string]*models.Block),
		cellsByID:       make(map[string]*models.Block),
		mergedCellsByID: make(map[string]*models.Block),
	}

	for i := range blocks {
		b := &blocks[i]
		switch b.BlockType {
		case models.BlockTypeTable:
			set.Tables = append(set.Tables, b)
			addFirst(set.tablesByID, b)
		case models.BlockTypeCell:
			set.Cells = append(set.Cells, b)
			addFirst(set.cellsByID, b)
		case models.BlockTypeMergedCell:
			set.MergedCells = append(set.MergedCells, b)
			addFirst(set.mergedCellsByID, b)
		case models.BlockTypeLine:
			set.Lines = append(set.Lines, b)
		}
	}

	return set
}

// addFirst registers b under its id unless the id is already taken.
func addFirst(m map[string]*models.Block, b *models.Block) {
	if _, ok := m[b.ID]; !ok {
		m[b.ID] = b
	}
}

// Table returns the TABLE block with the given id.
func (s *BlockSet) Table(id string) (*models.Block, bool) {
	b, ok := s.tablesByID[id]
	return b, ok
}

// Cell returns the CELL block with the given id.
func (s *BlockSet) Cell(id string) (*models.Block, bool) {
	b, ok := s.cellsByID[id]
	return b, ok
}

// MergedCell returns the MERGED_CELL block with the given id.
func (s *BlockSet) MergedCell(id string) (*models.Block, bool) {
	b, ok := s.mergedCellsByID[id]
	return b, ok
}

// ColumnHeaderCellIDs returns the ids of cells tagged COLUMN_HEADER, in input order.
func (s *BlockSet) ColumnHeaderCellIDs() []string {
	var ids []string
	for _, c := range s.Cells {
		if c.HasEntityType(models.EntityTypeColumnHeader) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
