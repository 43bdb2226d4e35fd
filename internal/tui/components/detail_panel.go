package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/screenly/internal/domain"
	"github.com/mmcdole/screenly/internal/tui/styles"
)

// DetailAction is what the user asked the detail panel to do
type DetailAction int

const (
	DetailNone DetailAction = iota
	DetailAdd               // add the movie with Rating()
	DetailClose             // close the panel
)

// detailContent holds the three-zone layout content
type detailContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// DetailPanel shows a selected movie and its rating input
type DetailPanel struct {
	detail  *domain.MovieDetail
	loading bool
	err     string

	rating        StarRating
	watchedRating int // > 0 when the movie is already on the watched list

	width        int
	height       int
	offset       int // body scroll offset
	focused      bool
	collapsed    bool
	spinnerFrame int
}

// NewDetailPanel creates an empty detail panel
func NewDetailPanel() DetailPanel {
	return DetailPanel{rating: NewStarRating()}
}

// SetDetail replaces the displayed movie. A change of movie resets the
// rating and scroll position.
func (d *DetailPanel) SetDetail(detail *domain.MovieDetail, loading bool, err string) {
	if d.detail == nil || detail == nil || d.detail.ID != detail.ID {
		d.offset = 0
	}
	d.detail = detail
	d.loading = loading
	d.err = err
}

// Reset clears the rating for a new selection
func (d *DetailPanel) Reset() {
	d.rating.Reset()
	d.offset = 0
	d.watchedRating = 0
}

// SetWatchedRating marks the movie as already watched with the given rating
func (d *DetailPanel) SetWatchedRating(rating int) {
	d.watchedRating = rating
}

// Rating returns the star rating entered by the user
func (d DetailPanel) Rating() int {
	return d.rating.Value()
}

// SetSize updates the component dimensions
func (d *DetailPanel) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Height returns the rendered height, which shrinks when collapsed
func (d DetailPanel) Height() int {
	if d.collapsed {
		return CollapsedHeight
	}
	return d.height
}

func (d *DetailPanel) SetFocused(focused bool) {
	d.focused = focused
}

func (d *DetailPanel) SetSpinnerFrame(frame int) {
	d.spinnerFrame = frame
}

// ToggleCollapsed collapses or expands the panel
func (d *DetailPanel) ToggleCollapsed() {
	d.collapsed = !d.collapsed
}

func (d DetailPanel) IsCollapsed() bool {
	return d.collapsed
}

// CanAdd reports whether the movie is loaded, unwatched and rated
func (d DetailPanel) CanAdd() bool {
	return d.detail != nil && !d.loading && d.watchedRating == 0 && d.rating.Value() > 0
}

// Update handles rating, scroll and close keys
func (d DetailPanel) Update(msg tea.Msg) (DetailPanel, tea.Cmd, DetailAction) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !d.focused {
		return d, nil, DetailNone
	}

	if matches(keyMsg, RatingKeys.Close) {
		return d, nil, DetailClose
	}
	if d.collapsed {
		return d, nil, DetailNone
	}

	switch {
	case matches(keyMsg, ListColumnKeys.Down):
		d.offset++
		return d, nil, DetailNone
	case matches(keyMsg, ListColumnKeys.Up):
		if d.offset > 0 {
			d.offset--
		}
		return d, nil, DetailNone
	}

	if d.detail == nil || d.loading || d.watchedRating > 0 {
		return d, nil, DetailNone
	}

	if matches(keyMsg, RatingKeys.Submit) {
		if d.CanAdd() {
			return d, nil, DetailAdd
		}
		return d, nil, DetailNone
	}

	d.rating.Update(keyMsg)
	return d, nil, DetailNone
}

// View renders the component
func (d DetailPanel) View() string {
	style := styles.InactiveBorder
	if d.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	contentWidth := max(d.width-frameW-1, 10)

	titleLine := d.renderTitle(contentWidth)
	if d.collapsed {
		return style.Width(d.width - frameW).Render(titleLine)
	}

	innerH := max(d.height-frameH, 1)
	content := d.renderContent(contentWidth)

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	// Title, blank line and two scroll indicators
	availableForBody := max(innerH-4-len(headerLines)-len(footerLines), 1)

	maxOffset := max(len(bodyLines)-availableForBody, 0)
	offset := min(d.offset, maxOffset)
	end := min(offset+availableForBody, len(bodyLines))
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, ""}
	parts = append(parts, headerLines...)
	parts = append(parts, up)
	parts = append(parts, visibleBody...)
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	parts = append(parts, footerLines...)

	rendered := clipLines(strings.Join(parts, "\n"), innerH)
	return style.
		Width(d.width - frameW).
		Height(innerH).
		Render(rendered)
}

func (d DetailPanel) renderTitle(width int) string {
	marker := "[-]"
	if d.collapsed {
		marker = "[+]"
	}
	title := styles.Truncate("Details", max(width-len(marker)-1, 1))
	gap := max(width-lipgloss.Width(title)-len(marker), 1)
	return styles.AccentStyle.Render(title) + strings.Repeat(" ", gap) + styles.DimStyle.Render(marker)
}

func (d DetailPanel) renderContent(width int) detailContent {
	switch {
	case d.loading:
		spinner := styles.SpinnerStyle.Render(SpinnerFrames[d.spinnerFrame%len(SpinnerFrames)])
		return detailContent{header: spinner + styles.DimStyle.Render(" Loading...")}
	case d.err != "":
		return detailContent{header: styles.ErrorStyle.Render(wrap(d.err, width))}
	case d.detail == nil:
		return detailContent{body: styles.DimStyle.Render("No movie selected")}
	}

	return detailContent{
		header: renderDetailHeader(*d.detail, width),
		body:   renderDetailBody(*d.detail, width),
		footer: d.renderFooter(width),
	}
}

func renderDetailHeader(m domain.MovieDetail, width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(styles.Truncate(m.Title, width)))
	b.WriteString("\n")

	// Release date · runtime
	var meta []string
	if m.ReleaseDate != "" {
		meta = append(meta, m.ReleaseDate)
	} else if m.Year != "" {
		meta = append(meta, m.Year)
	}
	if rt := m.FormattedRuntime(); rt != "" {
		meta = append(meta, rt)
	}
	if len(meta) > 0 {
		b.WriteString(styles.DimStyle.Render(styles.Truncate(strings.Join(meta, " · "), width)))
		b.WriteString("\n")
	}

	if m.Genre != "" {
		b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(m.Genre, width)))
		b.WriteString("\n")
	}

	if m.IMDbRating > 0 {
		var ratingStyle lipgloss.Style
		switch {
		case m.IMDbRating >= 7:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Green)
		case m.IMDbRating >= 5:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Gold)
		default:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Red)
		}
		b.WriteString(ratingStyle.Render(fmt.Sprintf("⭐ %.1f IMDb rating", m.IMDbRating)))
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderDetailBody(m domain.MovieDetail, width int) string {
	bodyWidth := min(width-2, 80)

	var sections []string
	if m.Plot != "" {
		sections = append(sections, styles.SubtitleStyle.Render(wrap(m.Plot, bodyWidth)))
	}
	if m.Actors != "" {
		sections = append(sections, styles.DimStyle.Render(wrap("Starring "+m.Actors, bodyWidth)))
	}
	if m.Director != "" {
		sections = append(sections, styles.DimStyle.Render(wrap("Directed by "+m.Director, bodyWidth)))
	}
	return strings.Join(sections, "\n\n")
}

func (d DetailPanel) renderFooter(width int) string {
	separator := styles.DimStyle.Render(strings.Repeat("─", width))

	if d.watchedRating > 0 {
		msg := fmt.Sprintf("You rated this movie %d/%d", d.watchedRating, domain.MaxUserRating)
		return separator + "\n" + styles.StarFullStyle.Render(msg)
	}

	hint := styles.DimStyle.Render("←/→ or 1-9, 0 to rate")
	if d.rating.Value() > 0 {
		hint = styles.HelpKeyStyle.Render("enter") + styles.DimStyle.Render(" add to list")
	}
	return separator + "\n" + d.rating.View() + "\n" + hint
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
