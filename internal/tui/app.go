package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/screenly/internal/domain"
	"github.com/mmcdole/screenly/internal/search"
	"github.com/mmcdole/screenly/internal/state"
	"github.com/mmcdole/screenly/internal/tui/components"
	"github.com/mmcdole/screenly/internal/tui/styles"
)

// Focus is the box receiving key input
type Focus int

const (
	FocusSearch Focus = iota
	FocusResults
	FocusSide // detail panel or watched list, whichever is shown
	focusCount
)

// Layout constants
const (
	SearchBarHeight = 3
	FooterHeight    = 1
	ResultsPercent  = 45
	MinBoxWidth     = 24

	AppTitle = "Screenly"

	tickInterval = 100 * time.Millisecond
)

// Options tunes the model
type Options struct {
	StatusTimeout time.Duration // how long footer messages stay
	DetailTimeout time.Duration // per detail request
	Logger        *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	ctrl   *state.Controller
	client domain.MovieClient
	logger *slog.Logger
	opts   Options

	// UI components
	SearchBar components.SearchBar
	Results   *components.ListColumn
	Watched   *components.ListColumn
	Detail    components.DetailPanel

	Focus    Focus
	ShowHelp bool

	// Dimensions
	Width  int
	Height int
	Ready  bool

	// Footer status
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int

	SpinnerFrame int
	windowTitle  string
}

// NewModel creates the application model around a controller and catalog client
func NewModel(ctrl *state.Controller, client domain.MovieClient, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.StatusTimeout <= 0 {
		opts.StatusTimeout = 3 * time.Second
	}
	if opts.DetailTimeout <= 0 {
		opts.DetailTimeout = 15 * time.Second
	}

	results := components.NewListColumn("Results")
	results.SetEmptyText("Start typing to search for movies")
	watched := components.NewListColumn("Watched")
	watched.SetEmptyText("Rate a movie to add it here")

	m := Model{
		ctrl:        ctrl,
		client:      client,
		logger:      opts.Logger,
		opts:        opts,
		SearchBar:   components.NewSearchBar(),
		Results:     results,
		Watched:     watched,
		Detail:      components.NewDetailPanel(),
		Focus:       FocusSearch,
		windowTitle: AppTitle,
	}
	m.syncResults()
	m.syncWatched()
	m.syncDetail()
	m.applyFocus()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		SetTitleCmd(AppTitle),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.Results.SetSpinnerFrame(m.SpinnerFrame)
		m.Detail.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(tickInterval)

	case SearchResultsMsg:
		if m.ctrl.ResolveSearch(msg.Handle, msg.Items, msg.Err) {
			m.syncResults()
		}
		return m, nil

	case DetailLoadedMsg:
		if !m.ctrl.ResolveDetail(msg.ID, msg.Detail, msg.Err) {
			return m, nil
		}
		m.syncDetail()
		cmd := m.syncTitle()
		return m, cmd

	case StatusMsg:
		cmd := m.setStatus(msg.Message, msg.IsError)
		return m, cmd

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	return m, nil
}

// handleKeyMsg routes a key to the help overlay, the global bindings or the
// focused box
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		m.ctrl.Shutdown()
		return m, tea.Quit
	}

	if m.ShowHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.ShowHelp = false
		}
		return m, nil
	}

	// Filter typing owns every other key
	if box := m.focusedList(); box != nil && box.IsFilterTyping() {
		return m, box.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.NextFocus):
		m.setFocus((m.Focus + 1) % focusCount)
		return m, nil
	case key.Matches(msg, Keys.PrevFocus):
		m.setFocus((m.Focus + focusCount - 1) % focusCount)
		return m, nil
	}

	if m.Focus == FocusSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		m.ctrl.Shutdown()
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil
	case key.Matches(msg, Keys.Collapse):
		m.toggleCollapsed()
		return m, nil
	}

	if m.Focus == FocusResults {
		return m.handleResultsKey(msg)
	}
	if m.ctrl.State().SelectedID != "" {
		return m.handleDetailKey(msg)
	}
	return m.handleWatchedKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape), key.Matches(msg, Keys.Select):
		m.setFocus(FocusResults)
		return m, nil
	}

	var cmd tea.Cmd
	var changed bool
	m.SearchBar, cmd, changed = m.SearchBar.Update(msg)
	if !changed {
		return m, cmd
	}

	h := m.ctrl.SetQuery(m.SearchBar.Value())
	m.syncResults()
	return m, tea.Batch(cmd, SearchCmd(m.client, h))
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Filter):
		m.Results.ToggleFilter()
		return m, nil
	case key.Matches(msg, Keys.Escape) && !m.Results.IsFiltering():
		m.setFocus(FocusSearch)
		return m, nil
	case key.Matches(msg, Keys.Select):
		row := m.Results.SelectedRow()
		if row == nil {
			return m, nil
		}
		return m.selectMovie(row.ID)
	}
	return m, m.Results.Update(msg)
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var action components.DetailAction
	m.Detail, cmd, action = m.Detail.Update(msg)

	switch action {
	case components.DetailClose:
		m.ctrl.CloseDetail()
		m.syncDetail()
		m.syncResults()
		titleCmd := m.syncTitle()
		return m, tea.Batch(cmd, titleCmd)

	case components.DetailAdd:
		rec, ok := m.ctrl.AddSelected(m.Detail.Rating())
		if !ok {
			return m, cmd
		}
		m.logger.Info("movie added to watched list", "id", rec.ID, "rating", rec.UserRating)
		m.syncDetail()
		m.syncResults()
		m.syncWatched()
		titleCmd := m.syncTitle()
		statusCmd := m.setStatus(fmt.Sprintf("Added %s (%d/%d)", rec.Title, rec.UserRating, domain.MaxUserRating), false)
		return m, tea.Batch(cmd, titleCmd, statusCmd)
	}
	return m, cmd
}

func (m Model) handleWatchedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Filter):
		m.Watched.ToggleFilter()
		return m, nil
	case key.Matches(msg, Keys.Delete):
		row := m.Watched.SelectedRow()
		if row == nil || !m.ctrl.DeleteWatched(row.ID) {
			return m, nil
		}
		m.logger.Info("movie removed from watched list", "id", row.ID)
		m.syncWatched()
		statusCmd := m.setStatus("Removed "+row.Title, false)
		return m, statusCmd
	}
	return m, m.Watched.Update(msg)
}

// selectMovie toggles the selection and starts the detail fetch when needed
func (m Model) selectMovie(id string) (tea.Model, tea.Cmd) {
	fetch := m.ctrl.Select(id)
	m.Detail.Reset()
	m.syncDetail()
	m.syncResults()

	titleCmd := m.syncTitle()
	if !fetch {
		return m, titleCmd
	}
	m.setFocus(FocusSide)
	return m, tea.Batch(FetchDetailCmd(m.client, id, m.opts.DetailTimeout), titleCmd)
}

// === Sync from controller ===

func (m *Model) syncResults() {
	st := m.ctrl.State()

	m.Results.SetLoading(st.SearchStatus == state.Searching)
	m.Results.SetMessage(st.Error, st.Error != "")
	if st.Query == "" {
		m.Results.SetEmptyText("Start typing to search for movies")
	} else {
		m.Results.SetEmptyText("No results")
	}

	items := st.Results
	rows := make([]components.ListRow, len(items))
	for i, item := range items {
		rows[i] = components.ResultRow(item, item.ID == st.SelectedID)
	}
	m.Results.SetRows(rows, func(query string) []int {
		return matchIndexes(search.FilterResults(query, items))
	})
}

func (m *Model) syncWatched() {
	st := m.ctrl.State()

	list := st.Watched
	rows := make([]components.ListRow, len(list))
	for i, w := range list {
		rows[i] = components.WatchedRow(w)
	}
	m.Watched.SetHeader(components.RenderWatchedSummary(m.ctrl.Summary(), m.sideWidth()-components.BorderWidth))
	m.Watched.SetRows(rows, func(query string) []int {
		return matchIndexes(search.FilterWatched(query, list))
	})
}

func (m *Model) syncDetail() {
	st := m.ctrl.State()
	m.Detail.SetDetail(st.Detail, st.DetailLoading, st.DetailError)
	if st.SelectedID != "" {
		m.Detail.SetWatchedRating(m.ctrl.WatchedRating(st.SelectedID))
	}
}

// syncTitle returns a command updating the window title when it changed
func (m *Model) syncTitle() tea.Cmd {
	title := AppTitle
	if st := m.ctrl.State(); st.Detail != nil && st.DetailStatus == state.DetailReady {
		title = AppTitle + " | " + st.Detail.Title
	}
	if title == m.windowTitle {
		return nil
	}
	m.windowTitle = title
	return SetTitleCmd(title)
}

// WindowTitle returns the title last sent to the terminal
func (m Model) WindowTitle() string {
	return m.windowTitle
}

func matchIndexes(matches []search.Match) []int {
	if matches == nil {
		return nil
	}
	idx := make([]int, len(matches))
	for i, mt := range matches {
		idx[i] = mt.Index
	}
	return idx
}

// === Focus and layout ===

func (m *Model) setFocus(f Focus) {
	m.Focus = f
	m.applyFocus()
}

func (m *Model) applyFocus() {
	if m.Focus == FocusSearch {
		m.SearchBar.Focus()
	} else {
		m.SearchBar.Blur()
	}
	m.Results.SetFocused(m.Focus == FocusResults)
	m.Watched.SetFocused(m.Focus == FocusSide)
	m.Detail.SetFocused(m.Focus == FocusSide)
}

// focusedList returns the list column receiving keys, or nil
func (m Model) focusedList() *components.ListColumn {
	switch m.Focus {
	case FocusResults:
		return m.Results
	case FocusSide:
		if m.ctrl.State().SelectedID == "" {
			return m.Watched
		}
	}
	return nil
}

func (m *Model) toggleCollapsed() {
	switch {
	case m.Focus == FocusResults:
		m.Results.ToggleCollapsed()
	case m.ctrl.State().SelectedID != "":
		m.Detail.ToggleCollapsed()
	default:
		m.Watched.ToggleCollapsed()
	}
}

func (m Model) resultsWidth() int {
	return max(m.Width*ResultsPercent/100, MinBoxWidth)
}

func (m Model) sideWidth() int {
	return max(m.Width-m.resultsWidth(), MinBoxWidth)
}

func (m *Model) updateLayout() {
	bodyHeight := max(m.Height-SearchBarHeight-FooterHeight, components.CollapsedHeight)

	m.SearchBar.SetWidth(m.Width)
	m.Results.SetSize(m.resultsWidth(), bodyHeight)
	m.Watched.SetSize(m.sideWidth(), bodyHeight)
	m.Detail.SetSize(m.sideWidth(), bodyHeight)
	m.syncWatched()
}

// === Rendering ===

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	st := m.ctrl.State()

	top := m.SearchBar.View(len(st.Results))

	side := m.Watched.View()
	if st.SelectedID != "" {
		side = m.Detail.View()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.Results.View(), side)

	return lipgloss.JoinVertical(lipgloss.Left, top, body, m.renderFooter())
}

// renderFooter renders a single-line footer: status left, hints right
func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.StatusErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.StatusStyle.Render(m.StatusMsg)
		}
	}

	var hints []string
	switch {
	case m.Focus == FocusSearch:
		hints = append(hints, hint("tab", "results"))
	case m.Focus == FocusResults:
		hints = append(hints, hint("enter", "details"), hint("/", "filter"))
	case m.ctrl.State().SelectedID != "":
		hints = append(hints, hint("1-0", "rate"), hint("enter", "add"), hint("esc", "close"))
	default:
		hints = append(hints, hint("x", "remove"), hint("/", "filter"))
	}
	hints = append(hints, hint("?", "help"))
	right := strings.Join(hints, "  ")

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return styles.FooterStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func hint(k, desc string) string {
	return styles.HelpKeyStyle.Render(k) + styles.HelpDescStyle.Render(" "+desc)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
SEARCH                          DETAILS
  type       Search as you type    h/l ←/→  Adjust rating
  enter/esc  Go to results         1-9, 0   Rate 1-10
                                   enter/a  Add to watched
RESULTS & WATCHED                  esc      Close
  j/k        Up/down
  g/G        First/last item    OTHER
  Ctrl+u/d   Scroll half page      tab      Next box
  enter      Open / close movie    t        Collapse / expand box
  /          Filter                q        Quit
  x          Remove watched        ?        This help

Press ? or esc to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// setStatus shows a footer message and schedules its removal
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.opts.StatusTimeout, m.statusSeq)
}
