// Package models defines data structures for block-graph table reconstruction.
package models

// BlockType is the discriminant of a block in the extraction graph.
type BlockType string

const (
	BlockTypeTable      BlockType = "TABLE"
	BlockTypeCell       BlockType = "CELL"
	BlockTypeMergedCell BlockType = "MERGED_CELL"
	BlockTypeLine       BlockType = "LINE"
	BlockTypeWord       BlockType = "WORD"
)

// RelationshipType is the discriminant of a relationship edge.
type RelationshipType string

const (
	RelationshipChild      RelationshipType = "CHILD"
	RelationshipMergedCell RelationshipType = "MERGED_CELL"
)

// EntityTypeColumnHeader tags a cell that belongs to the column header row.
const EntityTypeColumnHeader = "COLUMN_HEADER"

// Relationship is a typed, ordered list of target block ids.
type Relationship struct {
	// Type is the edge type (CHILD, MERGED_CELL, ...).
	Type RelationshipType `json:"Type"`
	// IDs lists the target block ids in document order.
	IDs []string `json:"Ids"`
}

// Block is a node of the extraction graph.
type Block struct {
	// BlockType is the block discriminant.
	BlockType BlockType `json:"BlockType"`
	// ID is the unique block identifier.
	ID string `json:"Id"`
	// RowIndex is the 1-based row of a CELL or MERGED_CELL.
	RowIndex int `json:"RowIndex,omitempty"`
	// ColumnIndex is the 1-based column of a CELL or MERGED_CELL.
	ColumnIndex int `json:"ColumnIndex,omitempty"`
	// RowSpan is the number of rows covered by the cell.
	RowSpan int `json:"RowSpan,omitempty"`
	// ColumnSpan is the number of columns covered by the cell.
	ColumnSpan int `json:"ColumnSpan,omitempty"`
	// Text is the recognized text of a LINE or WORD.
	Text string `json:"Text,omitempty"`
	// EntityTypes holds tags such as COLUMN_HEADER.
	EntityTypes []string `json:"EntityTypes,omitempty"`
	// Relationships holds the outgoing edges of the block.
	Relationships []Relationship `json:"Relationships,omitempty"`
	// Confidence is the recognition confidence in percent.
	Confidence float64 `json:"Confidence,omitempty"`
	// Page is the 1-based page the block was found on.
	Page int `json:"Page,omitempty"`
}

// Relationship returns the first relationship of type t.
// The scan is bounded by the relationship list; ok is false when none matches.
func (b *Block) Relationship(t RelationshipType) (rel Relationship, ok bool) {
	for _, r := range b.Relationships {
		if r.Type == t {
			return r, true
		}
	}
	return Relationship{}, false
}

// HasEntityType reports whether the block is tagged with entity type e.
func (b *Block) HasEntityType(e string) bool {
	for _, et := range b.EntityTypes {
		if et == e {
			return true
		}
	}
	return false
}
