package output

import (
	"bytes"
	"fmt"

	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/models"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatText = "text"
)

// Formats lists every supported output format.
var Formats = []string{FormatJSON, FormatCSV, FormatXLSX, FormatText}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	for _, f := range Formats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s (must be json, csv, xlsx, or text)", format)
}

// Extension returns the file extension used for format.
func Extension(format string) string {
	if format == FormatText {
		return ".txt"
	}
	return "." + format
}

// Render serializes a whole table set in the given format.
// CSV output separates tables with a blank line.
func Render(set *models.TableSet, format string, pretty bool) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		return ToJSON(set, pretty)
	case FormatXLSX:
		if err := WriteXLSX(&buf, set); err != nil {
			return nil, err
		}
	case FormatCSV:
		for i, table := range set.Ordered() {
			if i > 0 {
				buf.WriteString("\n")
			}
			if err := WriteCSV(&buf, &table); err != nil {
				return nil, err
			}
		}
	case FormatText:
		for i, table := range set.Ordered() {
			if i > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(RenderText(&table))
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}

// RenderTable serializes a single table in the given format.
func RenderTable(table *models.Table, format string, pretty bool) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		return TableToJSON(table, pretty)
	case FormatXLSX:
		single := &models.TableSet{
			TableIDs: []string{table.ID},
			Tables:   map[string]models.Table{table.ID: *table},
		}
		if err := WriteXLSX(&buf, single); err != nil {
			return nil, err
		}
	case FormatCSV:
		if err := WriteCSV(&buf, table); err != nil {
			return nil, err
		}
	case FormatText:
		buf.WriteString(RenderText(table))
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}
