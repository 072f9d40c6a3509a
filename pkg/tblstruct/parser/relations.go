package parser

import "github.com/ukaji3/tblstruct-go/pkg/tblstruct/models"

// RelationIndex maps parents to their children and children back to a
// single parent for one block type and one relationship type.
type RelationIndex struct {
	children map[string][]string
	parent   map[string]string
	empty    map[string]bool
	order    []string
}

// BuildIndex scans blocks in order and indexes their relationships of type relType.
//
// Only the first relationship of relType on a block is used. A child claimed by
// several parents resolves to the parent that appears first in blocks. When
// markEmpty is set, blocks without any relationship are recorded as having no
// children (see IsEmpty); blocks that have relationships but none of relType
// contribute nothing.
func BuildIndex(blocks []*models.Block, relType models.RelationshipType, markEmpty bool) *RelationIndex {
	idx := &RelationIndex{
		children: make(map[string][]string),
		parent:   make(map[string]string),
		empty:    make(map[string]bool),
	}

	for _, b := range blocks {
		if len(b.Relationships) == 0 {
			if markEmpty {
				idx.empty[b.ID] = true
				idx.register(b.ID, nil)
			}
			continue
		}

		rel, ok := b.Relationship(relType)
		if !ok {
			continue
		}
		idx.register(b.ID, rel.IDs)

		for _, childID := range rel.IDs {
			if _, claimed := idx.parent[childID]; !claimed {
				idx.parent[childID] = b.ID
			}
		}
	}

	return idx
}

// register records the children of parentID, keeping first-seen order of parents.
func (idx *RelationIndex) register(parentID string, childIDs []string) {
	if _, seen := idx.children[parentID]; !seen {
		idx.order = append(idx.order, parentID)
	}
	idx.children[parentID] = childIDs
}

// Children returns the ordered child ids of parentID.
// ok is false when parentID contributed nothing to the index.
func (idx *RelationIndex) Children(parentID string) (ids []string, ok bool) {
	ids, ok = idx.children[parentID]
	return ids, ok
}

// Parent returns the parent that first claimed childID.
func (idx *RelationIndex) Parent(childID string) (string, bool) {
	p, ok := idx.parent[childID]
	return p, ok
}

// IsEmpty reports whether id was recorded as a block without any relationship.
func (idx *RelationIndex) IsEmpty(id string) bool {
	return idx.empty[id]
}

// Parents returns the indexed parent ids in scan order.
func (idx *RelationIndex) Parents() []string {
	return idx.order
}
