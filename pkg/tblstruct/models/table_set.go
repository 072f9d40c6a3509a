package models

// Stats summarizes one reconstruction run.
type Stats struct {
	Blocks       int `json:"blocks"`
	Tables       int `json:"tables"`
	Cells        int `json:"cells"`
	MergedCells  int `json:"merged_cells"`
	Lines        int `json:"lines"`
	PlacedLines  int `json:"placed_lines"`
	DroppedLines int `json:"dropped_lines"`
}

// TableSet is the result of reconstructing every table of a document.
type TableSet struct {
	// Source is the input file name (no path), if any.
	Source string `json:"source,omitempty"`
	// TableIDs lists the successfully reconstructed tables in document order.
	TableIDs []string `json:"table_ids"`
	// Tables maps table id to the reconstructed table.
	Tables map[string]Table `json:"tables"`
	// Stats summarizes the run.
	Stats Stats `json:"stats"`
}

// Ordered returns the tables in document order.
func (s *TableSet) Ordered() []Table {
	tables := make([]Table, 0, len(s.TableIDs))
	for _, id := range s.TableIDs {
		if t, ok := s.Tables[id]; ok {
			tables = append(tables, t)
		}
	}
	return tables
}
