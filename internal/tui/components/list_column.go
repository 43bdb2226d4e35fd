package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/screenly/internal/tui/styles"
)

// Spinner frames for loading animation
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Layout constants for list columns
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// A collapsed box shows only its title line
	CollapsedHeight = BorderHeight + 1
)

// ListRow is one line in a ListColumn
type ListRow struct {
	ID     string
	Title  string
	Meta   string // dim text after the title
	Marked bool   // drawn with a marker, e.g. the open selection
}

// FilterFunc returns the indexes of rows matching query, best match first
type FilterFunc func(query string) []int

// ListColumn is a scrollable, filterable list inside a collapsible box
type ListColumn struct {
	rows   []ListRow
	filter FilterFunc

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title     string
	header    string // rendered between the title and the rows
	collapsed bool

	// Loading and message state
	loading      bool
	spinnerFrame int
	message      string
	messageIsErr bool
	emptyText    string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into rows
}

// NewListColumn creates an empty list column with the given title
func NewListColumn(title string) *ListColumn {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ListColumn{
		title:       title,
		filterInput: ti,
		emptyText:   "No items",
	}
}

// Update handles navigation and filter keys. It does nothing unless focused.
func (c *ListColumn) Update(msg tea.Msg) tea.Cmd {
	if !c.focused || c.collapsed {
		return nil
	}

	// Typing into the filter
	if c.filterActive && c.filterInput.Focused() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case matches(keyMsg, ListColumnKeys.Escape):
				c.clearFilter()
				return nil
			case matches(keyMsg, ListColumnKeys.Enter):
				// Accept filter, blur input to allow navigation
				c.filterInput.Blur()
				return nil
			case keyMsg.String() == "backspace" && c.filterInput.Value() == "":
				c.clearFilter()
				return nil
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	// Filter applied but blurred
	if c.filterActive {
		switch {
		case matches(keyMsg, ListColumnKeys.Escape):
			c.clearFilter()
			return nil
		case matches(keyMsg, ListColumnKeys.Filter):
			c.filterInput.Focus()
			return nil
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return nil
	}

	switch {
	case matches(keyMsg, ListColumnKeys.Down):
		if c.cursor < count-1 {
			c.cursor++
			c.ensureVisible()
		}
	case matches(keyMsg, ListColumnKeys.Up):
		if c.cursor > 0 {
			c.cursor--
			c.ensureVisible()
		}
	case matches(keyMsg, ListColumnKeys.Home):
		c.cursor = 0
		c.offset = 0
	case matches(keyMsg, ListColumnKeys.End):
		c.cursor = count - 1
		c.ensureVisible()
	case matches(keyMsg, ListColumnKeys.HalfDown):
		c.cursor = min(c.cursor+max(c.maxVisible/2, 1), count-1)
		c.ensureVisible()
	case matches(keyMsg, ListColumnKeys.HalfUp):
		c.cursor = max(c.cursor-max(c.maxVisible/2, 1), 0)
		c.ensureVisible()
	}

	return nil
}

// View renders the column inside its border
func (c *ListColumn) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	innerW := max(c.width-frameW, 1)

	if c.collapsed {
		return style.Width(innerW).Render(c.renderTitle(innerW))
	}

	innerH := max(c.height-frameH, 1)
	content := clipLines(c.renderContent(innerW), innerH)
	return style.Width(innerW).Height(innerH).Render(content)
}

// SetSize sets the outer size of the column including its border
func (c *ListColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

// Height returns the rendered height, which shrinks when collapsed
func (c *ListColumn) Height() int {
	if c.collapsed {
		return CollapsedHeight
	}
	return c.height
}

func (c *ListColumn) SetFocused(focused bool) {
	c.focused = focused
}

func (c *ListColumn) IsFocused() bool {
	return c.focused
}

func (c *ListColumn) SetTitle(title string) {
	c.title = title
}

// SetHeader sets text shown above the rows, such as a summary
func (c *ListColumn) SetHeader(header string) {
	c.header = header
	c.recalcMaxVisible()
	c.ensureVisible()
}

// SetEmptyText sets the placeholder shown when there are no rows
func (c *ListColumn) SetEmptyText(text string) {
	c.emptyText = text
}

// SetRows replaces the rows. The cursor stays on the same ID when possible
// and an active filter is re-applied with filter.
func (c *ListColumn) SetRows(rows []ListRow, filter FilterFunc) {
	prevID := ""
	if row := c.SelectedRow(); row != nil {
		prevID = row.ID
	}

	c.rows = rows
	c.filter = filter
	if c.filterActive && c.filterQuery != "" {
		c.filteredIdx = c.runFilter(c.filterQuery)
	}

	c.cursor = 0
	if prevID != "" {
		for i := 0; i < c.ItemCount(); i++ {
			if c.rows[c.mapIndex(i)].ID == prevID {
				c.cursor = i
				break
			}
		}
	}
	c.ensureVisible()
}

// SelectedRow returns the row under the cursor, or nil
func (c *ListColumn) SelectedRow() *ListRow {
	if c.cursor < 0 || c.cursor >= c.ItemCount() {
		return nil
	}
	row := c.rows[c.mapIndex(c.cursor)]
	return &row
}

// SelectedIndex returns the cursor position within the visible rows
func (c *ListColumn) SelectedIndex() int {
	return c.cursor
}

// ItemCount returns the number of visible rows after filtering
func (c *ListColumn) ItemCount() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.rows)
}

func (c *ListColumn) SetLoading(loading bool) {
	c.loading = loading
}

func (c *ListColumn) IsLoading() bool {
	return c.loading
}

func (c *ListColumn) SetSpinnerFrame(frame int) {
	c.spinnerFrame = frame
}

// SetMessage shows text in place of the rows. An empty text clears it.
func (c *ListColumn) SetMessage(text string, isErr bool) {
	c.message = text
	c.messageIsErr = isErr
}

// ToggleCollapsed collapses or expands the column
func (c *ListColumn) ToggleCollapsed() {
	c.collapsed = !c.collapsed
	if c.collapsed {
		c.clearFilter()
	}
}

func (c *ListColumn) IsCollapsed() bool {
	return c.collapsed
}

// ToggleFilter activates the filter input
func (c *ListColumn) ToggleFilter() {
	if c.collapsed {
		return
	}
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c *ListColumn) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *ListColumn) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all rows
func (c *ListColumn) ClearFilter() {
	c.clearFilter()
}

// Internal methods

func (c *ListColumn) recalcMaxVisible() {
	// Interior height minus title line and scroll indicators
	interiorHeight := c.height - BorderHeight
	c.maxVisible = interiorHeight - ScrollIndicatorLines - 1
	if c.header != "" {
		c.maxVisible -= lipgloss.Height(c.header)
	}
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *ListColumn) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

func (c *ListColumn) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *ListColumn) applyFilter() {
	query := c.filterInput.Value()
	c.filterQuery = query

	if strings.TrimSpace(query) == "" {
		c.filteredIdx = nil
		return
	}

	c.filteredIdx = c.runFilter(query)

	// Reset cursor to first match
	c.cursor = 0
	c.offset = 0
}

func (c *ListColumn) runFilter(query string) []int {
	if c.filter == nil || strings.TrimSpace(query) == "" {
		return nil
	}
	idx := c.filter(query)
	if idx == nil {
		idx = []int{}
	}
	return idx
}

func (c *ListColumn) mapIndex(i int) int {
	if c.filteredIdx != nil && i < len(c.filteredIdx) {
		return c.filteredIdx[i]
	}
	return i
}

// Rendering

func (c *ListColumn) renderTitle(width int) string {
	marker := "[-]"
	if c.collapsed {
		marker = "[+]"
	}
	title := styles.Truncate(c.title, max(width-len(marker)-1, 1))
	gap := max(width-lipgloss.Width(title)-len(marker), 1)
	return styles.AccentStyle.Render(title) + strings.Repeat(" ", gap) + styles.DimStyle.Render(marker)
}

func (c *ListColumn) renderContent(width int) string {
	lines := []string{c.renderTitle(width)}
	if c.header != "" {
		lines = append(lines, c.header)
	}

	if c.loading {
		spinner := styles.SpinnerStyle.Render(SpinnerFrames[c.spinnerFrame%len(SpinnerFrames)])
		lines = append(lines, " ", spinner+styles.DimStyle.Render(" Loading..."))
		return strings.Join(lines, "\n")
	}

	if c.message != "" {
		style := styles.DimStyle
		if c.messageIsErr {
			style = styles.ErrorStyle
		}
		lines = append(lines, " ", style.Render(wrap(c.message, width)))
		return strings.Join(lines, "\n")
	}

	count := c.ItemCount()
	if count == 0 {
		emptyMsg := c.emptyText
		if c.filterActive && c.filterQuery != "" {
			emptyMsg = "No matches"
		}
		lines = append(lines, " ", styles.DimStyle.Render(emptyMsg))
		if c.filterActive {
			lines = append(lines, c.renderFilterBar())
		}
		return strings.Join(lines, "\n")
	}

	end := min(c.offset+c.maxVisible, count)

	// Always reserve the indicator lines to prevent layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	lines = append(lines, header)

	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderRow(c.rows[c.mapIndex(i)], c.focused && i == c.cursor, width))
	}

	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}
	lines = append(lines, footer)

	if c.filterActive {
		lines = append(lines, c.renderFilterBar())
	}

	return strings.Join(lines, "\n")
}

func (c *ListColumn) renderRow(row ListRow, selected bool, width int) string {
	prefix := "  "
	if row.Marked {
		prefix = "▸ "
	}

	meta := ""
	if row.Meta != "" {
		meta = "  " + row.Meta
	}

	titleWidth := width - 2 - len([]rune(prefix)) - lipgloss.Width(meta)
	title := styles.Truncate(row.Title, max(titleWidth, 4))

	accent := styles.VioletSoft
	dim := styles.DimGray
	parts := []styles.RowPart{
		{Text: prefix, Foreground: &accent},
		{Text: title},
	}
	if meta != "" {
		parts = append(parts, styles.RowPart{Text: meta, Foreground: &dim})
	}
	return styles.RenderListRow(parts, selected, width)
}

func (c *ListColumn) renderFilterBar() string {
	input := c.filterInput.View()

	countStr := ""
	if c.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.rows)))
	}

	return input + countStr
}
