package ui

import (
	"fmt"
	"strings"

	"enbyscan/internal/config"
	"enbyscan/internal/model"
	"enbyscan/internal/table"
	"enbyscan/internal/util"

	"github.com/charmbracelet/lipgloss"
)

type comparisonColumn struct {
	key   string
	label string
	width int
}

// ComparisonModel is the comparison table screen. Sorting and the
// errors-only filter go through a table.Controller so the TUI behaves
// exactly like the HTML report.
type ComparisonModel struct {
	ctrl    *table.Controller
	source  map[*table.Row]*model.ComparisonRow
	visible []*table.Row

	cursor         int
	offset         int
	viewportHeight int

	columns      []comparisonColumn
	activeColumn int
}

// NewComparisonModel builds the screen from collated rows.
func NewComparisonModel(rows []model.ComparisonRow, langs []config.Language) (*ComparisonModel, error) {
	columns := []comparisonColumn{{key: "title", label: "title", width: 24}}
	headers := []table.Header{{Label: "Title"}}
	for _, lang := range langs {
		columns = append(columns, comparisonColumn{key: lang.Project(), label: strings.ToLower(lang.Name), width: 16})
		headers = append(headers, table.Header{Label: lang.Name + " Wikipedia"})
	}
	columns = append(columns, comparisonColumn{key: "wikidata", label: "wikidata", width: 16})
	headers = append(headers, table.Header{Label: "Wikidata"})

	owned := append([]model.ComparisonRow(nil), rows...)
	tab := &table.Table{Headers: headers}
	source := make(map[*table.Row]*model.ComparisonRow, len(owned))
	for i := range owned {
		cells := []string{owned[i].Name}
		for _, c := range owned[i].Cells {
			cells = append(cells, c.Text)
		}
		row := &table.Row{Cells: cells, Error: owned[i].Error}
		tab.Rows = append(tab.Rows, row)
		source[row] = &owned[i]
	}

	ctrl, err := table.NewController(tab)
	if err != nil {
		return nil, err
	}

	m := &ComparisonModel{ctrl: ctrl, source: source, columns: columns}
	m.refreshVisible()
	return m, nil
}

func (m *ComparisonModel) refreshVisible() {
	m.visible = m.visible[:0]
	for _, r := range m.ctrl.Table().Rows {
		if !r.Hidden {
			m.visible = append(m.visible, r)
		}
	}
	m.clampCursor()
}

func (m *ComparisonModel) clampCursor() {
	if len(m.visible) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

func (m *ComparisonModel) NextColumn() {
	m.activeColumn = (m.activeColumn + 1) % len(m.columns)
}

func (m *ComparisonModel) PrevColumn() {
	m.activeColumn--
	if m.activeColumn < 0 {
		m.activeColumn = len(m.columns) - 1
	}
}

func (m *ComparisonModel) JumpToColumn(number int) bool {
	if number < 1 || number > len(m.columns) {
		return false
	}
	m.activeColumn = number - 1
	return true
}

// ToggleSortActiveColumn sorts the active column, flipping ascending to
// descending on a repeat. Returns a status message.
func (m *ComparisonModel) ToggleSortActiveColumn() string {
	label := strings.ToUpper(m.columns[m.activeColumn].label)
	malformed, err := m.ctrl.SortByColumn(m.activeColumn)
	if err != nil {
		return err.Error()
	}
	m.refreshVisible()

	_, dir := m.ctrl.SortState()
	msg := fmt.Sprintf("Sorted %s %s", label, dir)
	if len(malformed) > 0 {
		msg += fmt.Sprintf(" (%d malformed rows)", len(malformed))
	}
	return msg
}

// ToggleErrorFilter flips the errors-only filter. Returns a status message.
func (m *ComparisonModel) ToggleErrorFilter() string {
	m.ctrl.ToggleErrorFilter(!m.ctrl.ErrorsOnly())
	m.refreshVisible()
	if m.ctrl.ErrorsOnly() {
		return "Showing only potential errors"
	}
	return "Showing all rows"
}

// SelectedRow returns the comparison row under the cursor, or nil.
func (m *ComparisonModel) SelectedRow() *model.ComparisonRow {
	if m.cursor >= len(m.visible) {
		return nil
	}
	return m.source[m.visible[m.cursor]]
}

// ErrorCount returns how many rows carry the error marker.
func (m *ComparisonModel) ErrorCount() int {
	count := 0
	for _, r := range m.ctrl.Table().Rows {
		if r.Error {
			count++
		}
	}
	return count
}

func (m *ComparisonModel) TableMeta() string {
	parts := []string{fmt.Sprintf("col %s", strings.ToUpper(m.columns[m.activeColumn].label))}
	if col, dir := m.ctrl.SortState(); col >= 0 {
		order := "asc"
		if dir == table.Descending {
			order = "desc"
		}
		parts = append(parts, fmt.Sprintf("sort %s %s", strings.ToUpper(m.columns[col].label), order))
	}
	if m.ctrl.ErrorsOnly() {
		parts = append(parts, "errors only")
	}
	return strings.Join(parts, "  ·  ")
}

// Prefs captures the screen state for persistence.
func (m *ComparisonModel) Prefs() TablePrefs {
	prefs := TablePrefs{
		ActiveColumn: m.columns[m.activeColumn].key,
		ErrorsOnly:   m.ctrl.ErrorsOnly(),
	}
	if col, dir := m.ctrl.SortState(); col >= 0 {
		prefs.SortColumn = m.columns[col].key
		prefs.SortDesc = dir == table.Descending
	}
	return prefs
}

// ApplyPrefs restores persisted screen state.
func (m *ComparisonModel) ApplyPrefs(prefs TablePrefs) {
	for i, c := range m.columns {
		if c.key == prefs.ActiveColumn {
			m.activeColumn = i
		}
		if c.key == prefs.SortColumn {
			// one sort reaches ascending, a second flips to descending
			if _, err := m.ctrl.SortByColumn(i); err == nil && prefs.SortDesc {
				_, _ = m.ctrl.SortByColumn(i)
			}
		}
	}
	m.ctrl.ToggleErrorFilter(prefs.ErrorsOnly)
	m.refreshVisible()
}

// View renders the comparison table.
func (m *ComparisonModel) View(width, height int) string {
	if len(m.ctrl.Table().Rows) == 0 {
		emptyMsg := `    No cached data yet.
    Run  enbyscan fetch  first!`
		return EmptyStateStyle.
			Width(width).
			Height(height).
			Render(emptyMsg)
	}
	if len(m.visible) == 0 {
		return EmptyStateStyle.Width(width).Height(height).Render("No rows match the errors-only filter. Press e to show all rows.")
	}

	sortCol, sortDir := m.ctrl.SortState()
	widths := make([]int, 0, len(m.columns))
	headers := make([]string, 0, len(m.columns))
	totalFixed := 0
	for i, col := range m.columns {
		label := strings.ToUpper(col.label)
		if i == m.activeColumn {
			label = "[" + label + "]"
		}
		if i == sortCol {
			if sortDir == table.Descending {
				label += " ↓"
			} else {
				label += " ↑"
			}
		}
		cellWidth := max(col.width+2, lipgloss.Width(label)+4)
		totalFixed += cellWidth
		widths = append(widths, cellWidth)
		headers = append(headers, label)
	}
	if extra := width - totalFixed - 2; extra > 0 {
		widths[len(widths)-1] += extra
	}

	header := renderTableRow(headers, widths, TableHeaderStyle.Bold(true))

	visibleHeight := height - 2
	m.viewportHeight = visibleHeight
	var rows []string
	for i := m.offset; i < len(m.visible) && i < m.offset+visibleHeight; i++ {
		row := m.source[m.visible[i]]
		selected := i == m.cursor

		cells := make([]string, 0, len(m.columns))
		cells = append(cells, util.TruncateString(row.Name, m.columns[0].width))
		for j, cell := range row.Cells {
			text := util.TruncateString(cell.Text, m.columns[j+1].width)
			if !selected {
				text = statusStyle(cell.Status).Render(text)
			}
			cells = append(cells, text)
		}

		style := NormalRowStyle
		if selected {
			style = SelectedRowStyle
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}

	filterInfo := ""
	if m.ctrl.ErrorsOnly() {
		filterInfo = fmt.Sprintf("  ·  filtered: %d/%d", len(m.visible), len(m.ctrl.Table().Rows))
	}
	meta := m.TableMeta()
	if meta != "" {
		meta = "  ·  " + meta
	}
	status := StatusBarStyle.Render(fmt.Sprintf("%d people  ·  row %d/%d  ·  %d potential errors%s%s",
		len(m.visible), m.cursor+1, len(m.visible), m.ErrorCount(), filterInfo, meta))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		strings.Join(rows, "\n"),
	)
	statusHeight := lipgloss.Height(status)
	contentHeight := lipgloss.Height(content)
	spacerHeight := max(0, height-contentHeight-statusHeight)
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		spacer,
		status,
	)
}

// MoveDown moves the cursor down.
func (m *ComparisonModel) MoveDown() {
	if m.cursor < len(m.visible)-1 {
		m.cursor++
		vh := m.viewportHeight
		if vh == 0 {
			vh = 10
		}
		if m.cursor >= m.offset+vh {
			m.offset++
		}
	}
}

// MoveUp moves the cursor up.
func (m *ComparisonModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the first row.
func (m *ComparisonModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last row.
func (m *ComparisonModel) JumpToBottom() {
	if len(m.visible) > 0 {
		m.cursor = len(m.visible) - 1
		vh := m.viewportHeight
		if vh == 0 {
			vh = 10
		}
		if m.cursor >= vh {
			m.offset = m.cursor - vh + 1
		}
	}
}

// HalfPageDown moves down half a page.
func (m *ComparisonModel) HalfPageDown(pageSize int) {
	halfPage := pageSize / 2
	m.cursor += halfPage
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	vh := m.viewportHeight
	if vh == 0 {
		vh = 10
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

// HalfPageUp moves up half a page.
func (m *ComparisonModel) HalfPageUp(pageSize int) {
	halfPage := pageSize / 2
	m.cursor -= halfPage
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

// Helper function to render a table row
func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, style.Width(widths[i]).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
