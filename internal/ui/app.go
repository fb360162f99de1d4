package ui

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"enbyscan/internal/collate"
	"enbyscan/internal/config"
	"enbyscan/internal/db"
	"enbyscan/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the root Bubble Tea model.
type Model struct {
	db     *sql.DB
	cfg    config.Config
	screen model.Screen
	gState GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool
	columnJump  bool

	// Screen models
	comparison *ComparisonModel
	detail     *DetailModel

	keys  KeyMap
	prefs UIPreferences
}

// New creates a new root model.
func New(database *sql.DB, cfg config.Config) Model {
	return Model{
		db:     database,
		cfg:    cfg,
		screen: model.ScreenComparison,
		gState: GStateIdle,
		keys:   DefaultKeyMap(),
		prefs:  loadUIPreferences(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return loadComparisonCmd(m.db, m.cfg)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.columnJump {
			switch msg.String() {
			case "esc":
				m.columnJump = false
				m.info = ""
				return m, nil
			}
			if n, err := strconv.Atoi(msg.String()); err == nil {
				if m.comparison != nil && m.comparison.JumpToColumn(n) {
					m.columnJump = false
					m.info = fmt.Sprintf("Jumped to column %d", n)
					m.persistTablePrefs()
					return m, nil
				}
				m.info = fmt.Sprintf("Column %d unavailable", n)
				return m, nil
			}
		}

		// Handle ctrl+c globally
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Handle help toggle
		if msg.String() == "?" {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" || msg.String() == "?" {
				m.showingHelp = false
			}
			return m, nil
		}

		return m.handleNav(msg)

	case model.ComparisonLoadedMsg:
		comparison, err := NewComparisonModel(msg.Rows, m.cfg.Languages)
		if err != nil {
			m.error = err.Error()
			return m, nil
		}
		comparison.ApplyPrefs(m.prefs.Comparison)
		m.comparison = comparison
		m.error = ""
		return m, nil

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		return m, nil
	}

	return m, nil
}

func (m Model) handleNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == model.ScreenComparison && m.comparison != nil {
		switch msg.String() {
		case "tab":
			m.comparison.NextColumn()
			m.persistTablePrefs()
			return m, nil
		case "shift+tab":
			m.comparison.PrevColumn()
			m.persistTablePrefs()
			return m, nil
		case "/":
			m.columnJump = true
			m.info = "Jump to column: press 1-9 (esc to cancel)"
			return m, nil
		case "s":
			m.info = m.comparison.ToggleSortActiveColumn()
			m.persistTablePrefs()
			return m, nil
		case "e":
			m.info = m.comparison.ToggleErrorFilter()
			m.persistTablePrefs()
			return m, nil
		}
	}

	// Handle "gg" state machine
	if msg.String() == "g" {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		if m.comparison != nil {
			m.comparison.JumpToTop()
		}
		return m, nil
	}
	if m.gState == GStateFirstG {
		m.gState = GStateIdle
	}

	switch m.screen {
	case model.ScreenComparison:
		return m.handleComparisonNav(msg)
	case model.ScreenDetail:
		return m.handleDetailNav(msg)
	}

	return m, nil
}

func (m Model) handleComparisonNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.comparison == nil {
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		m.comparison.MoveDown()
	case "k", "up":
		m.comparison.MoveUp()
	case "G":
		m.comparison.JumpToBottom()
	case "ctrl+d":
		m.comparison.HalfPageDown(m.contentHeight())
	case "ctrl+u":
		m.comparison.HalfPageUp(m.contentHeight())
	case "enter":
		if row := m.comparison.SelectedRow(); row != nil {
			m.detail = NewDetailModel(*row, m.cfg.Languages)
			m.screen = model.ScreenDetail
			m.info = ""
		}
	}
	return m, nil
}

func (m Model) handleDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "b", "esc":
		m.screen = model.ScreenComparison
		m.detail = nil
	case "j", "down":
		if m.comparison != nil {
			m.comparison.MoveDown()
			if row := m.comparison.SelectedRow(); row != nil {
				m.detail = NewDetailModel(*row, m.cfg.Languages)
			}
		}
	case "k", "up":
		if m.comparison != nil {
			m.comparison.MoveUp()
			if row := m.comparison.SelectedRow(); row != nil {
				m.detail = NewDetailModel(*row, m.cfg.Languages)
			}
		}
	}
	return m, nil
}

func (m *Model) persistTablePrefs() {
	if m.comparison != nil {
		m.prefs.Comparison = m.comparison.Prefs()
	}
	_ = saveUIPreferences(m.prefs)
}

func (m Model) contentHeight() int {
	// Total minus header, footer and padding.
	return m.height - 4
}

// View renders the current screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	var content string
	var breadcrumbParts []string

	contentHeight := m.contentHeight()

	switch m.screen {
	case model.ScreenComparison:
		breadcrumbParts = []string{"Comparison"}
		if m.comparison != nil {
			content = m.comparison.View(m.width, contentHeight)
		} else {
			content = EmptyStateStyle.Render("Loading comparison data. Run `enbyscan fetch` if the cache is empty.")
		}
	case model.ScreenDetail:
		breadcrumbParts = []string{"Comparison", "Detail"}
		if m.detail != nil {
			breadcrumbParts = []string{"Comparison", m.detail.row.Name}
			content = m.detail.View(m.width, contentHeight)
		}
	}

	header := renderHeader(breadcrumbParts, m.width)
	footer := RenderHelp(m.screen, m.width)

	// Ensure content fills the available height to anchor footer at bottom
	contentStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight)
	content = contentStyle.Render(content)

	if m.error != "" {
		errorBanner := ErrorStyle.Width(m.width).Render("Error: " + m.error)
		if m.info != "" {
			infoBanner := SuccessStyle.Width(m.width).Render(m.info)
			return lipgloss.JoinVertical(lipgloss.Left, header, errorBanner, infoBanner, content, footer)
		}
		return lipgloss.JoinVertical(lipgloss.Left, header, errorBanner, content, footer)
	}
	if m.info != "" {
		infoBanner := SuccessStyle.Width(m.width).Render(m.info)
		return lipgloss.JoinVertical(lipgloss.Left, header, infoBanner, content, footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func renderHeader(breadcrumbParts []string, width int) string {
	title := HeaderStyle.Render("enbyscan")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	now := time.Now()
	dateStr := now.Format("Mon 02 Jan")
	right := BreadcrumbStyle.Render(dateStr) + "  "

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := width - leftLen - rightLen
	if padding < 0 {
		padding = 0
	}

	headerContent := left + strings.Repeat(" ", padding) + right
	return lipgloss.NewStyle().Width(width).Render(headerContent)
}

func loadComparisonCmd(database *sql.DB, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		items, err := db.ListItems(database)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		sitelinks, err := db.ListSitelinks(database)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		articles, err := db.ListArticles(database)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		rows := collate.Rows(items, sitelinks, articles, cfg.Languages)
		return model.ComparisonLoadedMsg{Rows: rows}
	}
}
