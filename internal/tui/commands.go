package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/screenly/internal/domain"
	"github.com/mmcdole/screenly/internal/state"
)

// Command factories for async operations

// SearchCmd runs the search identified by h. The request is aborted when a
// newer query cancels the handle's context.
func SearchCmd(client domain.MovieClient, h *state.SearchHandle) tea.Cmd {
	if h == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := client.SearchMovies(h.Context(), h.Query)
		return SearchResultsMsg{Handle: h, Items: items, Err: err}
	}
}

// FetchDetailCmd loads the full record for id
func FetchDetailCmd(client domain.MovieClient, id string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		detail, err := client.FetchMovieDetail(ctx, id)
		return DetailLoadedMsg{ID: id, Detail: detail, Err: err}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd clears the status message with seq after a delay
func ClearStatusCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

// SetTitleCmd sets the terminal window title
func SetTitleCmd(title string) tea.Cmd {
	return tea.SetWindowTitle(title)
}
