package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/models"
)

// defaultSheet is the sheet excelize creates for a new workbook.
const defaultSheet = "Sheet1"

// SheetName returns the worksheet name used for the i-th table (0-based).
// Table ids are too long for Excel's 31 character sheet name limit.
func SheetName(i int) string {
	return fmt.Sprintf("Table %d", i+1)
}

// WriteXLSX writes every table of set to its own worksheet.
// Tables with a promoted header are registered as Excel tables.
func WriteXLSX(w io.Writer, set *models.TableSet) error {
	f := excelize.NewFile()
	defer f.Close()

	tables := set.Ordered()
	for i := range tables {
		if err := writeSheet(f, SheetName(i), i, &tables[i]); err != nil {
			return fmt.Errorf("table %q: %w", tables[i].ID, err)
		}
	}

	if len(tables) > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return err
		}
		f.SetActiveSheet(0)
	}

	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, i int, table *models.Table) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rowNum := 1
	if table.HasHeader {
		if err := setRow(f, sheet, rowNum, table.Columns, false); err != nil {
			return err
		}
		rowNum++
	}
	for _, row := range table.Rows {
		if err := setRow(f, sheet, rowNum, row, true); err != nil {
			return err
		}
		rowNum++
	}

	if table.HasHeader && table.RowCount() > 0 && table.ColCount() > 0 {
		ref, err := rangeRef(1, 1, table.ColCount(), rowNum-1)
		if err != nil {
			return err
		}
		showStripes := true
		return f.AddTable(sheet, &excelize.Table{
			Range:          ref,
			Name:           fmt.Sprintf("Table%d", i+1),
			StyleName:      "TableStyleMedium2",
			ShowRowStripes: &showStripes,
		})
	}
	return nil
}

// setRow writes values starting at column A. Numeric text becomes a number
// when numeric is set.
func setRow(f *excelize.File, sheet string, rowNum int, values []string, numeric bool) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		if numeric {
			row[i] = parseValue(v)
		} else {
			row[i] = v
		}
	}
	return f.SetSheetRow(sheet, cell, &row)
}

// rangeRef converts 1-based bounds to an A1 range such as "A1:D10".
func rangeRef(c1, r1, c2, r2 int) (string, error) {
	start, err := excelize.CoordinatesToCellName(c1, r1)
	if err != nil {
		return "", err
	}
	end, err := excelize.CoordinatesToCellName(c2, r2)
	if err != nil {
		return "", err
	}
	return start + ":" + end, nil
}
