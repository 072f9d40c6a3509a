package tblstruct

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/models"
)

// normalizeText applies NFKC and drops control characters other than newline and tab.
func normalizeText(text string) string {
	normed := norm.NFKC.String(text)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
}

// normalizeBlocks returns a copy of blocks with LINE text normalized.
// The input slice is left untouched.
func normalizeBlocks(blocks []models.Block) []models.Block {
	out := make([]models.Block, len(blocks))
	copy(out, blocks)
	for i := range out {
		if out[i].BlockType == models.BlockTypeLine {
			out[i].Text = normalizeText(out[i].Text)
		}
	}
	return out
}
