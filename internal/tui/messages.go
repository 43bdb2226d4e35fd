package tui

import (
	"github.com/mmcdole/screenly/internal/domain"
	"github.com/mmcdole/screenly/internal/state"
)

// Message types for the TUI

// SearchResultsMsg carries the outcome of one search request
type SearchResultsMsg struct {
	Handle *state.SearchHandle
	Items  []domain.SearchResultItem
	Err    error
}

// DetailLoadedMsg carries the outcome of one detail request
type DetailLoadedMsg struct {
	ID     string
	Detail *domain.MovieDetail
	Err    error
}

// TickMsg drives the loading spinners
type TickMsg struct{}

// StatusMsg sets a temporary footer message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the footer message set with the same Seq
type ClearStatusMsg struct {
	Seq int
}
