// Package output serializes reconstructed tables.
package output

import (
	"encoding/json"

	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/models"
)

// ToJSON serializes a table set to JSON.
func ToJSON(set *models.TableSet, pretty bool) ([]byte, error) {
	return marshal(set, pretty)
}

// TableToJSON serializes a single table to JSON.
func TableToJSON(table *models.Table, pretty bool) ([]byte, error) {
	return marshal(table, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
