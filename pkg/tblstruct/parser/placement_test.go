package parser

import (
	"errors"
	"testing"

	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/models"
)

func place(t *testing.T, blocks []models.Block) (*Placement, error) {
	t.Helper()
	set := ClassifyBlocks(blocks)
	return PlaceLines(set, BuildIndices(set))
}

func TestPlaceLinesConcatenatesInInputOrder(t *testing.T) {
	blocks := []models.Block{
		tableBlock("t1", "c1"),
		cellBlock("c1", 2, 3, "w1", "w2", "w3"),
		wordBlock("w1", "Net"),
		wordBlock("w2", "income"),
		wordBlock("w3", "2024"),
		lineBlock("l1", "Net income", "w1", "w2"),
		lineBlock("l2", "2024", "w3"),
	}

	p, err := place(t, blocks)
	if err != nil {
		t.Fatalf("PlaceLines failed: %v", err)
	}

	got, ok := p.Grids["t1"].Get(1, 2)
	if !ok {
		t.Fatalf("Expected text at (1, 2)")
	}
	if got != "Net income\n2024" {
		t.Errorf("Expected %q, got %q", "Net income\n2024", got)
	}
	if p.Placed != 2 {
		t.Errorf("Expected 2 placed lines, got %d", p.Placed)
	}
	if p.Headers["t1"] {
		t.Errorf("Header flag must not be raised without COLUMN_HEADER cells")
	}
}

func TestPlaceLinesUsesFirstWordOnly(t *testing.T) {
	blocks := []models.Block{
		tableBlock("t1", "c1", "c2"),
		cellBlock("c1", 1, 1, "w1"),
		cellBlock("c2", 1, 2, "w2"),
		// The line spans two cells; only its first word positions it.
		lineBlock("l1", "left right", "w1", "w2"),
	}

	p, err := place(t, blocks)
	if err != nil {
		t.Fatalf("PlaceLines failed: %v", err)
	}
	if got, _ := p.Grids["t1"].Get(0, 0); got != "left right" {
		t.Errorf("Expected line at (0, 0), got %q", got)
	}
	if _, ok := p.Grids["t1"].Get(0, 1); ok {
		t.Errorf("Line must be placed once")
	}
}

func TestPlaceLinesDropsOrphans(t *testing.T) {
	blocks := []models.Block{
		tableBlock("t1", "c1"),
		cellBlock("c1", 1, 1, "w1"),
		cellBlock("c9", 1, 1, "w9"), // not claimed by any table
		lineBlock("l1", "kept", "w1"),
		lineBlock("l2", "orphan word", "w-missing"),
		lineBlock("l3", "orphan cell", "w9"),
	}

	p, err := place(t, blocks)
	if err != nil {
		t.Fatalf("PlaceLines failed: %v", err)
	}
	if !equalStrings(p.Dropped, []string{"l2", "l3"}) {
		t.Errorf("Expected dropped [l2 l3], got %v", p.Dropped)
	}
	if p.Grids["t1"].Len() != 1 {
		t.Errorf("Expected a single placed coordinate, got %d", p.Grids["t1"].Len())
	}
}

func TestPlaceLinesHeaderFlag(t *testing.T) {
	blocks := []models.Block{
		tableBlock("t1", "c1"),
		tableBlock("t2", "c2"),
		headerCell("c1", 1, 1, "w1"),
		cellBlock("c2", 1, 1, "w2"),
		lineBlock("l1", "Name", "w1"),
		lineBlock("l2", "Alice", "w2"),
	}

	p, err := place(t, blocks)
	if err != nil {
		t.Fatalf("PlaceLines failed: %v", err)
	}
	if !p.Headers["t1"] {
		t.Errorf("Expected header flag on t1")
	}
	if p.Headers["t2"] {
		t.Errorf("Unexpected header flag on t2")
	}
}

func TestPlaceLinesMalformed(t *testing.T) {
	tests := []struct {
		name string
		line models.Block
	}{
		{
			name: "no relationships",
			line: models.Block{BlockType: models.BlockTypeLine, ID: "l1", Text: "x"},
		},
		{
			name: "no child relationship",
			line: models.Block{
				BlockType:     models.BlockTypeLine,
				ID:            "l1",
				Text:          "x",
				Relationships: []models.Relationship{{Type: "VALUE", IDs: []string{"w1"}}},
			},
		},
		{
			name: "empty child relationship",
			line: lineBlock("l1", "x"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := place(t, []models.Block{tableBlock("t1"), tt.line})
			if !errors.Is(err, ErrMalformedGraph) {
				t.Errorf("Expected ErrMalformedGraph, got %v", err)
			}
		})
	}
}

func TestPlaceLinesEveryTableHasGrid(t *testing.T) {
	p, err := place(t, []models.Block{tableBlock("t1"), tableBlock("t2")})
	if err != nil {
		t.Fatalf("PlaceLines failed: %v", err)
	}
	for _, id := range []string{"t1", "t2"} {
		if g, ok := p.Grids[id]; !ok || g.Len() != 0 {
			t.Errorf("Expected empty grid for %s", id)
		}
	}
}
