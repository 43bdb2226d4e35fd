package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/screenly/internal/domain"
	"github.com/mmcdole/screenly/internal/tui/styles"
)

// StarRating is a 1-10 star input. Zero means no rating yet.
type StarRating struct {
	value int
	max   int
}

// NewStarRating creates an empty rating out of domain.MaxUserRating stars
func NewStarRating() StarRating {
	return StarRating{max: domain.MaxUserRating}
}

// Value returns the current rating, 0 when unset
func (r StarRating) Value() int {
	return r.value
}

// SetValue sets the rating, clamped to 0..max
func (r *StarRating) SetValue(v int) {
	r.value = min(max(v, 0), r.max)
}

// Reset clears the rating
func (r *StarRating) Reset() {
	r.value = 0
}

// Update applies rating keys. It reports whether the key was consumed.
// Digits 1-9 set the rating directly and 0 means ten.
func (r *StarRating) Update(msg tea.KeyMsg) bool {
	switch {
	case matches(msg, RatingKeys.Decrease):
		r.SetValue(max(r.value-1, domain.MinUserRating))
		return true
	case matches(msg, RatingKeys.Increase):
		r.SetValue(r.value + 1)
		return true
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		ch := msg.Runes[0]
		switch {
		case ch == '0':
			r.SetValue(r.max)
			return true
		case ch >= '1' && ch <= '9':
			r.SetValue(int(ch - '0'))
			return true
		}
	}
	return false
}

// View renders filled and empty stars followed by the numeric value
func (r StarRating) View() string {
	var b strings.Builder
	for i := 1; i <= r.max; i++ {
		if i <= r.value {
			b.WriteString(styles.StarFullStyle.Render(styles.StarFull))
		} else {
			b.WriteString(styles.StarEmptyStyle.Render(styles.StarEmpty))
		}
	}
	label := ""
	if r.value > 0 {
		label = fmt.Sprintf(" %d", r.value)
	}
	return b.String() + styles.SubtitleStyle.Render(label)
}
