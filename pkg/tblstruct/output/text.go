package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/models"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// RenderText renders a table as a bordered text grid for terminal preview.
func RenderText(t *models.Table) string {
	grid := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Header()...).
		Rows(t.Rows...)

	title := titleStyle.Render(fmt.Sprintf("%s (%dx%d)", t.ID, t.RowCount(), t.ColCount()))
	return title + "\n" + grid.String()
}
