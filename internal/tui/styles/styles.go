package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Violet     = lipgloss.Color("#6741D9")
	VioletSoft = lipgloss.Color("#7950F2")
	Night      = lipgloss.Color("#212529")
	Charcoal   = lipgloss.Color("#343A40")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#DEE2E6")
	White      = lipgloss.Color("#F8F9FA")
	Gold       = lipgloss.Color("#FCC419")
	Green      = lipgloss.Color("#51CF66")
	Red        = lipgloss.Color("#FA5252")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(VioletSoft)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(VioletSoft).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	LogoStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Violet).
			Bold(true).
			Padding(0, 1)
)

// Rating styles
var (
	StarFullStyle = lipgloss.NewStyle().
			Foreground(Gold)

	StarEmptyStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Rating glyphs
const (
	StarFull  = "★"
	StarEmpty = "☆"
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	StatusStyle = lipgloss.NewStyle().
			Foreground(Green)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(Red)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(VioletSoft).
			Padding(1, 2).
			Background(Night)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(VioletSoft)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Badge styles
var (
	BadgeStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Violet).
			Padding(0, 1)

	DimBadgeStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(Charcoal).
			Padding(0, 1)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(VioletSoft)
)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(VioletSoft)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(VioletSoft).
				Bold(true)
)

// Search bar styles
var (
	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(VioletSoft).
				Bold(true)

	SearchTextStyle = lipgloss.NewStyle().
			Foreground(White)

	SearchPlaceholderStyle = lipgloss.NewStyle().
				Foreground(DimGray)
)

// Truncate shortens s to width runes, ending with "..." when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// Pad pads s with spaces to width runes
func Pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-n)
}

// RenderListRow renders a list row with a uniform background when selected.
// Each part is styled on its own so ANSI resets do not break the highlight.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := Charcoal
	defaultFg := LightGray
	selectedFg := White

	var b strings.Builder
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		switch {
		case part.Foreground != nil:
			style = style.Foreground(*part.Foreground)
		case selected:
			style = style.Foreground(selectedFg)
		default:
			style = style.Foreground(defaultFg)
		}
		if selected {
			style = style.Background(bg)
		}
		b.WriteString(style.Render(part.Text))
		visibleLen += lipgloss.Width(part.Text)
	}

	// Fill to width, minus one char of margin each side
	if pad := width - visibleLen - 2; pad > 0 {
		padStyle := lipgloss.NewStyle()
		if selected {
			padStyle = padStyle.Background(bg)
		}
		b.WriteString(padStyle.Render(strings.Repeat(" ", pad)))
	}

	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(bg)
	}
	margin := marginStyle.Render(" ")

	return margin + b.String() + margin
}

// RowPart is a piece of a row with an optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}
