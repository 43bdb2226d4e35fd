// Package state holds the application state and the rules that change it.
//
// The Controller is not safe for concurrent use. It is owned by the UI update
// loop; fetches run elsewhere and report back through ResolveSearch and
// ResolveDetail.
package state

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmcdole/screenly/internal/domain"
)

// SearchStatus is the search half of the controller's state machine
type SearchStatus int

const (
	SearchIdle SearchStatus = iota
	Searching
	SearchFailed
	SearchSucceeded
)

// DetailStatus is the selection half of the controller's state machine
type DetailStatus int

const (
	NoSelection DetailStatus = iota
	LoadingDetail
	DetailReady
	DetailFailed
)

// SearchHandle identifies one in-flight search. Only the handle returned by
// the latest SetQuery can update results.
type SearchHandle struct {
	Query  string
	ctx    context.Context
	cancel context.CancelFunc
}

// Context is cancelled once a newer query supersedes this search
func (h *SearchHandle) Context() context.Context {
	return h.ctx
}

// AppState is a read-only snapshot of the controller
type AppState struct {
	Query      string
	Results    []domain.SearchResultItem
	SelectedID string // "" when nothing is selected
	Watched    []domain.WatchedMovie
	Loading    bool
	Error      string // "" when the latest search did not fail

	SearchStatus  SearchStatus
	DetailStatus  DetailStatus
	Detail        *domain.MovieDetail
	DetailLoading bool
	DetailError   string
}

// Controller owns the application state
type Controller struct {
	store  domain.WatchedStore
	logger *slog.Logger

	query        string
	results      []domain.SearchResultItem
	searchStatus SearchStatus
	searchErr    string
	search       *SearchHandle

	selectedID   string
	detailStatus DetailStatus
	detail       *domain.MovieDetail
	detailErr    string

	watched []domain.WatchedMovie
}

// NewController creates a controller seeded with the stored watched list
func NewController(store domain.WatchedStore, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	watched := store.Load()
	logger.Debug("loaded watched list", "count", len(watched))
	return &Controller{
		store:   store,
		logger:  logger,
		results: []domain.SearchResultItem{},
		watched: dedupe(watched),
	}
}

// === Search ===

// SetQuery records a new query and cancels any in-flight search.
// It returns the handle for the search the caller must start, or nil when
// the query is empty and no request should be made.
func (c *Controller) SetQuery(query string) *SearchHandle {
	c.query = query
	c.cancelSearch()

	if query == "" {
		c.results = []domain.SearchResultItem{}
		c.searchErr = ""
		c.searchStatus = SearchIdle
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.search = &SearchHandle{Query: query, ctx: ctx, cancel: cancel}
	c.searchStatus = Searching
	c.searchErr = ""
	c.logger.Debug("search started", "query", query)
	return c.search
}

// ResolveSearch applies the outcome of the search identified by h.
// It reports whether the state changed. Results of superseded searches and
// cancellations are dropped without touching the state.
func (c *Controller) ResolveSearch(h *SearchHandle, items []domain.SearchResultItem, err error) bool {
	if errors.Is(err, domain.ErrCancelled) {
		c.logger.Debug("search cancelled", "query", handleQuery(h))
		return false
	}
	if h == nil || h != c.search {
		c.logger.Debug("dropping stale search result", "query", handleQuery(h))
		return false
	}

	c.search.cancel()
	c.search = nil

	if err != nil {
		c.logger.Warn("search failed", "query", h.Query, "error", err)
		c.results = []domain.SearchResultItem{}
		c.searchErr = domain.UserMessage(err)
		c.searchStatus = SearchFailed
		return true
	}

	if items == nil {
		items = []domain.SearchResultItem{}
	}
	c.results = items
	c.searchErr = ""
	c.searchStatus = SearchSucceeded
	return true
}

// Shutdown cancels any in-flight search
func (c *Controller) Shutdown() {
	c.cancelSearch()
}

func (c *Controller) cancelSearch() {
	if c.search != nil {
		c.search.cancel()
		c.search = nil
	}
}

func handleQuery(h *SearchHandle) string {
	if h == nil {
		return ""
	}
	return h.Query
}

// === Selection ===

// Select toggles the selection. Selecting the current ID deselects it.
// It returns true when a detail fetch for id should be started.
func (c *Controller) Select(id string) bool {
	if id == "" {
		return false
	}
	if id == c.selectedID {
		c.CloseDetail()
		return false
	}

	c.selectedID = id
	c.detail = nil
	c.detailErr = ""
	c.detailStatus = LoadingDetail
	c.logger.Debug("movie selected", "id", id)
	return true
}

// ResolveDetail applies a fetched detail. Responses whose id no longer
// matches the selection are discarded.
func (c *Controller) ResolveDetail(id string, detail *domain.MovieDetail, err error) bool {
	if id == "" || id != c.selectedID || c.detailStatus != LoadingDetail {
		c.logger.Debug("dropping stale detail", "id", id, "selected", c.selectedID)
		return false
	}

	if err != nil || detail == nil {
		if errors.Is(err, domain.ErrCancelled) {
			return false
		}
		c.logger.Warn("detail fetch failed", "id", id, "error", err)
		c.detail = nil
		c.detailErr = domain.UserMessage(err)
		if c.detailErr == "" {
			c.detailErr = domain.MsgNotFound
		}
		c.detailStatus = DetailFailed
		return true
	}

	c.detail = detail
	c.detailErr = ""
	c.detailStatus = DetailReady
	return true
}

// CloseDetail clears the selection
func (c *Controller) CloseDetail() {
	c.selectedID = ""
	c.detail = nil
	c.detailErr = ""
	c.detailStatus = NoSelection
}

// === Watched list ===

// AddWatched appends rec unless its ID is already present or its rating is
// out of range. It persists the list on success.
func (c *Controller) AddWatched(rec domain.WatchedMovie) bool {
	if rec.ID == "" || !rec.HasValidRating() {
		c.logger.Debug("rejecting watched record", "id", rec.ID, "rating", rec.UserRating)
		return false
	}
	if domain.FindWatched(c.watched, rec.ID) >= 0 {
		c.logger.Debug("movie already watched", "id", rec.ID)
		return false
	}

	next := make([]domain.WatchedMovie, len(c.watched), len(c.watched)+1)
	copy(next, c.watched)
	c.watched = append(next, rec)
	c.persist()
	return true
}

// AddSelected adds the ready detail with the user's rating and closes the
// detail panel.
func (c *Controller) AddSelected(userRating int) (domain.WatchedMovie, bool) {
	if c.detailStatus != DetailReady || c.detail == nil {
		return domain.WatchedMovie{}, false
	}
	rec := c.detail.ToWatched(userRating)
	if rec.ID == "" {
		rec.ID = c.selectedID
	}
	if !c.AddWatched(rec) {
		return domain.WatchedMovie{}, false
	}
	c.CloseDetail()
	return rec, true
}

// DeleteWatched removes the record with id. No match is a no-op.
func (c *Controller) DeleteWatched(id string) bool {
	i := domain.FindWatched(c.watched, id)
	if i < 0 {
		return false
	}

	next := make([]domain.WatchedMovie, 0, len(c.watched)-1)
	next = append(next, c.watched[:i]...)
	next = append(next, c.watched[i+1:]...)
	c.watched = next
	c.persist()
	return true
}

// IsWatched reports whether id is in the watched list
func (c *Controller) IsWatched(id string) bool {
	return domain.FindWatched(c.watched, id) >= 0
}

// WatchedRating returns the user's rating for id, or 0
func (c *Controller) WatchedRating(id string) int {
	if i := domain.FindWatched(c.watched, id); i >= 0 {
		return c.watched[i].UserRating
	}
	return 0
}

// Summary computes aggregates over the watched list
func (c *Controller) Summary() domain.WatchedSummary {
	return domain.Summarize(c.watched)
}

// persist mirrors the watched list to storage. Write failures are logged only.
func (c *Controller) persist() {
	if err := c.store.Save(c.watched); err != nil {
		c.logger.Error("failed to save watched list", "error", err, "count", len(c.watched))
		return
	}
	c.logger.Debug("saved watched list", "count", len(c.watched))
}

// === Snapshot ===

// State returns a snapshot of the current state. Slices are shared and must
// not be modified; the controller never mutates them in place.
func (c *Controller) State() AppState {
	return AppState{
		Query:         c.query,
		Results:       c.results,
		SelectedID:    c.selectedID,
		Watched:       c.watched,
		Loading:       c.searchStatus == Searching || c.detailStatus == LoadingDetail,
		Error:         c.searchErr,
		SearchStatus:  c.searchStatus,
		DetailStatus:  c.detailStatus,
		Detail:        c.detail,
		DetailLoading: c.detailStatus == LoadingDetail,
		DetailError:   c.detailErr,
	}
}

// SearchLoading reports whether a search is in flight
func (c *Controller) SearchLoading() bool {
	return c.searchStatus == Searching
}

// dedupe drops repeated IDs from a loaded list, keeping the first
func dedupe(list []domain.WatchedMovie) []domain.WatchedMovie {
	seen := make(map[string]bool, len(list))
	out := make([]domain.WatchedMovie, 0, len(list))
	for _, m := range list {
		if m.ID == "" || seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out
}
