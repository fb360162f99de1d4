package ui

import (
	"strings"

	"enbyscan/internal/config"
	"enbyscan/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// DetailModel represents the per-person detail screen.
type DetailModel struct {
	row   model.ComparisonRow
	langs []config.Language
}

// NewDetailModel creates a new detail model.
func NewDetailModel(row model.ComparisonRow, langs []config.Language) *DetailModel {
	return &DetailModel{
		row:   row,
		langs: langs,
	}
}

// View renders the person detail.
func (m *DetailModel) View(width, height int) string {
	shortcuts := HelpDescStyle.Render("b back  q quit")
	header := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Right).
		Render(shortcuts)

	var sections []string

	var fields []string
	fields = append(fields, renderField("Name", m.row.Name))
	fields = append(fields, renderField("Wikidata item", m.row.QID))
	verdict := "all projects agree"
	if m.row.Error {
		verdict = wrongStyle.Render("potential error")
	}
	fields = append(fields, LabelStyle.Render("Status:")+" "+verdict)
	sections = append(sections, strings.Join(fields, "\n"))

	divider := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render(strings.Repeat("─", max(1, width-8)))
	sections = append(sections, divider)

	var cells []string
	for i, cell := range m.row.Cells {
		label := "Wikidata"
		if i < len(m.langs) {
			label = m.langs[i].Name + " Wikipedia"
		}
		line := LabelStyle.Render(label+":") + " " + statusStyle(cell.Status).Render(cell.Text)
		if cell.Link != "" {
			line += "  " + HelpDescStyle.Render(cell.Link)
		}
		cells = append(cells, line)
	}
	sections = append(sections, strings.Join(cells, "\n"))

	info := PanelStyle.
		Width(width - 4).
		Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, info)
}

func renderField(label, value string) string {
	if value == "" {
		value = "—"
	}
	return LabelStyle.Render(label+":") + " " + NormalRowStyle.Render(value)
}
