package parser

import (
	"testing"

	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/models"
)

func child(ids ...string) []models.Relationship {
	return []models.Relationship{{Type: models.RelationshipChild, IDs: ids}}
}

func tableBlock(id string, cellIDs ...string) models.Block {
	return models.Block{BlockType: models.BlockTypeTable, ID: id, Relationships: child(cellIDs...)}
}

func cellBlock(id string, row, col int, wordIDs ...string) models.Block {
	b := models.Block{BlockType: models.BlockTypeCell, ID: id, RowIndex: row, ColumnIndex: col, RowSpan: 1, ColumnSpan: 1}
	if len(wordIDs) > 0 {
		b.Relationships = child(wordIDs...)
	}
	return b
}

func headerCell(id string, row, col int, wordIDs ...string) models.Block {
	b := cellBlock(id, row, col, wordIDs...)
	b.EntityTypes = []string{models.EntityTypeColumnHeader}
	return b
}

func lineBlock(id, text string, wordIDs ...string) models.Block {
	return models.Block{BlockType: models.BlockTypeLine, ID: id, Text: text, Relationships: child(wordIDs...)}
}

func wordBlock(id, text string) models.Block {
	return models.Block{BlockType: models.BlockTypeWord, ID: id, Text: text}
}

// reconstruct runs the full pipeline and fails the test on error.
func reconstruct(t *testing.T, blocks []models.Block, promote bool) map[string]models.Table {
	t.Helper()

	set := ClassifyBlocks(blocks)
	idx := BuildIndices(set)
	p, err := PlaceLines(set, idx)
	if err != nil {
		t.Fatalf("PlaceLines failed: %v", err)
	}

	result := make(map[string]models.Table)
	for _, tb := range set.Tables {
		table, err := NormalizeTable(tb.ID, p, set, idx, promote)
		if err != nil {
			t.Fatalf("NormalizeTable(%q) failed: %v", tb.ID, err)
		}
		result[tb.ID] = table
	}
	return result
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
