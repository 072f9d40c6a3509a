package output

import (
	"encoding/csv"
	"io"

	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/models"
)

// WriteCSV writes a table as CSV: the promoted header (if any), then the body rows.
func WriteCSV(w io.Writer, table *models.Table) error {
	cw := csv.NewWriter(w)
	if table.HasHeader {
		if err := cw.Write(table.Columns); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return err
	}
	return cw.Error()
}
