package components

import (
	"fmt"
	"strings"

	"github.com/mmcdole/screenly/internal/domain"
	"github.com/mmcdole/screenly/internal/tui/styles"
)

// RenderWatchedSummary renders the watched-list aggregates as two lines
func RenderWatchedSummary(s domain.WatchedSummary, width int) string {
	heading := styles.TitleStyle.Render("Movies you watched")

	stats := []string{
		fmt.Sprintf("🎬 %d movies", s.Count),
		fmt.Sprintf("⭐ %.2f", s.AvgIMDbRating),
		fmt.Sprintf("🌟 %.2f", s.AvgUserRating),
		fmt.Sprintf("⏳ %.2f min", s.AvgRuntime),
	}
	line := styles.SubtitleStyle.Render(styles.Truncate(strings.Join(stats, "  "), max(width, 10)))

	return heading + "\n" + line
}

// WatchedRow builds the list row for a watched movie
func WatchedRow(m domain.WatchedMovie) ListRow {
	meta := fmt.Sprintf("⭐ %.1f  🌟 %d  ⏳ %d min", m.IMDbRating, m.UserRating, m.RuntimeMinutes)
	return ListRow{ID: m.ID, Title: m.Title, Meta: meta}
}

// ResultRow builds the list row for a search result
func ResultRow(item domain.SearchResultItem, selected bool) ListRow {
	meta := ""
	if item.Year != "" {
		meta = "🗓 " + item.Year
	}
	return ListRow{ID: item.ID, Title: item.Title, Meta: meta, Marked: selected}
}
