package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/screenly/internal/tui/styles"
)

// SearchBar is the always-visible top bar holding the query input
type SearchBar struct {
	input     textinput.Model
	lastQuery string
	width     int
}

// NewSearchBar creates a focused search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.CharLimit = 100
	ti.Prompt = "🔍 "
	ti.PromptStyle = styles.SearchPromptStyle
	ti.TextStyle = styles.SearchTextStyle
	ti.PlaceholderStyle = styles.SearchPlaceholderStyle
	ti.Focus()

	return SearchBar{input: ti}
}

func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

func (s *SearchBar) Blur() {
	s.input.Blur()
}

func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the current query text
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetWidth sets the outer width of the bar
func (s *SearchBar) SetWidth(width int) {
	s.width = width
}

// Update forwards msg to the input. The bool reports whether the query text
// changed.
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	if !s.input.Focused() {
		return s, nil, false
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	changed := s.input.Value() != s.lastQuery
	s.lastQuery = s.input.Value()
	return s, cmd, changed
}

// View renders the logo, the input and the result counter on one bordered line
func (s SearchBar) View(resultCount int) string {
	style := styles.InactiveBorder
	if s.input.Focused() {
		style = styles.ActiveBorder
	}
	frameW, _ := style.GetFrameSize()
	innerW := max(s.width-frameW, 20)

	logo := styles.LogoStyle.Render("🍿 Screenly")
	counter := styles.DimStyle.Render(fmt.Sprintf("Found %d results", resultCount))

	inputW := max(innerW-lipgloss.Width(logo)-lipgloss.Width(counter)-4, 10)
	s.input.Width = inputW - lipgloss.Width(s.input.Prompt) - 1

	input := lipgloss.NewStyle().Width(inputW).MaxWidth(inputW).Render(s.input.View())
	row := lipgloss.JoinHorizontal(lipgloss.Center, logo, "  ", input, "  ", counter)
	return style.Width(innerW).Render(row)
}
