package tui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/screenly/internal/domain"
	"github.com/mmcdole/screenly/internal/state"
	"github.com/mmcdole/screenly/internal/store"
)

// stubClient answers from fixed maps and honors cancellation
type stubClient struct {
	results map[string][]domain.SearchResultItem
	details map[string]*domain.MovieDetail
}

func (c stubClient) SearchMovies(ctx context.Context, query string) ([]domain.SearchResultItem, error) {
	if ctx.Err() != nil {
		return nil, domain.ErrCancelled
	}
	items, ok := c.results[query]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return items, nil
}

func (c stubClient) FetchMovieDetail(ctx context.Context, id string) (*domain.MovieDetail, error) {
	if ctx.Err() != nil {
		return nil, domain.ErrCancelled
	}
	d, ok := c.details[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func newStubClient() stubClient {
	return stubClient{
		results: map[string][]domain.SearchResultItem{
			"Fury": {
				{ID: "tt2713180", Title: "Fury", Year: "2014"},
				{ID: "tt0077588", Title: "The Fury", Year: "1978"},
			},
		},
		details: map[string]*domain.MovieDetail{
			"tt2713180": {ID: "tt2713180", Title: "Fury", Year: "2014", RuntimeMinutes: 134, IMDbRating: 7.6},
			"tt0077588": {ID: "tt0077588", Title: "The Fury", Year: "1978", RuntimeMinutes: 118, IMDbRating: 6.3},
		},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type harness struct {
	t     *testing.T
	m     Model
	store *store.WatchedStore
}

func newHarness(t *testing.T, seed ...domain.WatchedMovie) *harness {
	t.Helper()
	s, err := store.Open("", quietLogger())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if len(seed) > 0 {
		if err := s.Save(seed); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}

	ctrl := state.NewController(s, quietLogger())
	m := NewModel(ctrl, newStubClient(), Options{
		StatusTimeout: time.Millisecond,
		DetailTimeout: time.Second,
		Logger:        quietLogger(),
	})
	h := &harness{t: t, m: m, store: s}
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

// send delivers msg and returns the resulting command
func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	model, cmd := h.m.Update(msg)
	h.m = model.(Model)
	return cmd
}

// press delivers a key and feeds every message its command produces back
// into the model
func (h *harness) press(k tea.KeyMsg) {
	h.t.Helper()
	for _, msg := range collectMsgs(h.send(k)) {
		switch msg.(type) {
		case SearchResultsMsg, DetailLoadedMsg:
			h.send(msg)
		}
	}
}

func (h *harness) typeText(s string) {
	h.t.Helper()
	for _, r := range s {
		h.press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) key(t tea.KeyType) {
	h.t.Helper()
	h.press(tea.KeyMsg{Type: t})
}

func (h *harness) state() state.AppState {
	return h.m.ctrl.State()
}

// collectMsgs runs cmd and any batched commands, skipping those that block
// (cursor blink, timers)
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collectMsgs(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_StartsInSearch(t *testing.T) {
	h := newHarness(t)

	if h.m.Focus != FocusSearch || !h.m.SearchBar.Focused() {
		t.Fatalf("focus = %v, search focused = %v", h.m.Focus, h.m.SearchBar.Focused())
	}
	view := h.m.View()
	if !strings.Contains(view, "Found 0 results") {
		t.Error("missing result counter")
	}
	if !strings.Contains(view, "Start typing to search for movies") {
		t.Error("missing empty results hint")
	}
}

func TestModel_SearchShowsResults(t *testing.T) {
	h := newHarness(t)
	h.typeText("Fury")

	st := h.state()
	if len(st.Results) != 2 || st.Error != "" || st.Loading {
		t.Fatalf("state: %+v", st)
	}
	view := h.m.View()
	if !strings.Contains(view, "Found 2 results") || !strings.Contains(view, "The Fury") {
		t.Errorf("view missing results:\n%s", view)
	}
}

func TestModel_SearchNotFound(t *testing.T) {
	h := newHarness(t)
	h.typeText("zzzzzNoMatch")

	st := h.state()
	if st.Error != domain.MsgNotFound || len(st.Results) != 0 {
		t.Fatalf("state: %+v", st)
	}
	if !strings.Contains(h.m.View(), domain.MsgNotFound) {
		t.Error("view missing error text")
	}
}

func TestModel_ClearingQueryResets(t *testing.T) {
	h := newHarness(t)
	h.typeText("Fury")
	for range "Fury" {
		h.key(tea.KeyBackspace)
	}

	st := h.state()
	if st.Query != "" || len(st.Results) != 0 || st.Loading || st.Error != "" {
		t.Errorf("state after clearing: %+v", st)
	}
}

func TestModel_QOnlyQuitsOutsideSearch(t *testing.T) {
	h := newHarness(t)

	if cmd := h.send(runeKey("q")); cmd != nil {
		for _, msg := range collectMsgs(cmd) {
			if _, ok := msg.(tea.QuitMsg); ok {
				t.Fatal("q quit while typing a query")
			}
		}
	}
	if h.m.SearchBar.Value() != "q" {
		t.Errorf("query = %q, want q", h.m.SearchBar.Value())
	}

	h.key(tea.KeyTab)
	cmd := h.send(runeKey("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q outside search should quit")
	}
}

func TestModel_TabCyclesFocus(t *testing.T) {
	h := newHarness(t)

	want := []Focus{FocusResults, FocusSide, FocusSearch}
	for _, f := range want {
		h.key(tea.KeyTab)
		if h.m.Focus != f {
			t.Fatalf("focus = %v, want %v", h.m.Focus, f)
		}
	}
	if !h.m.SearchBar.Focused() {
		t.Error("search bar should regain focus")
	}
}

func TestModel_SelectRateAndAdd(t *testing.T) {
	h := newHarness(t)
	h.typeText("Fury")
	h.key(tea.KeyEnter) // to results
	h.key(tea.KeyEnter) // select first result

	st := h.state()
	if st.SelectedID != "tt2713180" || st.DetailStatus != state.DetailReady {
		t.Fatalf("after select: %+v", st)
	}
	if h.m.Focus != FocusSide {
		t.Errorf("focus = %v, want FocusSide", h.m.Focus)
	}
	if h.m.WindowTitle() != "Screenly | Fury" {
		t.Errorf("window title = %q", h.m.WindowTitle())
	}

	h.press(runeKey("8"))
	h.key(tea.KeyEnter)

	st = h.state()
	if len(st.Watched) != 1 || st.Watched[0].UserRating != 8 || st.Watched[0].RuntimeMinutes != 134 {
		t.Fatalf("watched: %+v", st.Watched)
	}
	if st.SelectedID != "" {
		t.Error("detail should close after adding")
	}
	if h.m.WindowTitle() != AppTitle {
		t.Errorf("window title = %q after close", h.m.WindowTitle())
	}
	if stored := h.store.Load(); len(stored) != 1 || stored[0].ID != "tt2713180" {
		t.Errorf("stored: %+v", stored)
	}
	if !strings.Contains(h.m.StatusMsg, "Added Fury") {
		t.Errorf("status = %q", h.m.StatusMsg)
	}
}

func TestModel_EnterWithoutRatingDoesNotAdd(t *testing.T) {
	h := newHarness(t)
	h.typeText("Fury")
	h.key(tea.KeyEnter)
	h.key(tea.KeyEnter)

	h.key(tea.KeyEnter)
	if len(h.state().Watched) != 0 {
		t.Error("added without a rating")
	}
}

func TestModel_RatingResetsOnSelectionChange(t *testing.T) {
	h := newHarness(t)
	h.typeText("Fury")
	h.key(tea.KeyEnter)
	h.key(tea.KeyEnter)
	h.press(runeKey("6"))

	// back to results, pick the second movie
	h.key(tea.KeyShiftTab)
	h.press(runeKey("j"))
	h.key(tea.KeyEnter)

	if h.state().SelectedID != "tt0077588" {
		t.Fatalf("selected = %s", h.state().SelectedID)
	}
	if h.m.Detail.Rating() != 0 {
		t.Errorf("rating carried over: %d", h.m.Detail.Rating())
	}
}

func TestModel_SelectSameMovieDeselects(t *testing.T) {
	h := newHarness(t)
	h.typeText("Fury")
	h.key(tea.KeyEnter)
	h.key(tea.KeyEnter)
	h.key(tea.KeyShiftTab)
	h.key(tea.KeyEnter)

	if h.state().SelectedID != "" {
		t.Errorf("selected = %q, want none", h.state().SelectedID)
	}
}

func TestModel_EscClosesDetail(t *testing.T) {
	h := newHarness(t)
	h.typeText("Fury")
	h.key(tea.KeyEnter)
	h.key(tea.KeyEnter)
	h.key(tea.KeyEsc)

	if h.state().SelectedID != "" {
		t.Error("esc should close the detail panel")
	}
	if !strings.Contains(h.m.View(), "Movies you watched") {
		t.Error("watched box should be back")
	}
}

func TestModel_AlreadyWatchedShowsRating(t *testing.T) {
	h := newHarness(t, domain.WatchedMovie{ID: "tt2713180", Title: "Fury", UserRating: 7, IMDbRating: 7.6, RuntimeMinutes: 134})
	h.typeText("Fury")
	h.key(tea.KeyEnter)
	h.key(tea.KeyEnter)

	if !strings.Contains(h.m.View(), "You rated this movie 7/10") {
		t.Errorf("missing rated message:\n%s", h.m.View())
	}

	h.press(runeKey("9"))
	h.key(tea.KeyEnter)
	if w := h.state().Watched; len(w) != 1 || w[0].UserRating != 7 {
		t.Errorf("watched changed: %+v", w)
	}
}

func TestModel_DeleteWatched(t *testing.T) {
	h := newHarness(t,
		domain.WatchedMovie{ID: "tt1", Title: "Inception", UserRating: 9},
		domain.WatchedMovie{ID: "tt2", Title: "Fury", UserRating: 7},
	)
	h.key(tea.KeyTab)
	h.key(tea.KeyTab) // watched list

	h.press(runeKey("x"))

	w := h.state().Watched
	if len(w) != 1 || w[0].ID != "tt2" {
		t.Fatalf("watched after delete: %+v", w)
	}
	if stored := h.store.Load(); len(stored) != 1 {
		t.Errorf("stored: %+v", stored)
	}
	if !strings.Contains(h.m.StatusMsg, "Removed Inception") {
		t.Errorf("status = %q", h.m.StatusMsg)
	}
}

func TestModel_WatchedSummary(t *testing.T) {
	h := newHarness(t,
		domain.WatchedMovie{ID: "tt1", Title: "A", UserRating: 9, IMDbRating: 8.0, RuntimeMinutes: 100},
		domain.WatchedMovie{ID: "tt2", Title: "B", UserRating: 6, IMDbRating: 7.0, RuntimeMinutes: 120},
	)
	view := h.m.View()
	for _, want := range []string{"2 movies", "7.50", "110.00"} {
		if !strings.Contains(view, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestModel_FilterWatched(t *testing.T) {
	h := newHarness(t,
		domain.WatchedMovie{ID: "tt1", Title: "Inception", UserRating: 9},
		domain.WatchedMovie{ID: "tt2", Title: "Fury", UserRating: 7},
	)
	h.key(tea.KeyTab)
	h.key(tea.KeyTab)
	h.press(runeKey("/"))
	h.typeText("fury")

	if h.m.Watched.ItemCount() != 1 || h.m.Watched.SelectedRow().ID != "tt2" {
		t.Fatalf("filtered rows = %d", h.m.Watched.ItemCount())
	}

	// typing into the filter must not quit or delete
	h.press(runeKey("q"))
	if len(h.state().Watched) != 2 {
		t.Error("filter keys leaked to the list")
	}
}

func TestModel_CollapseBox(t *testing.T) {
	h := newHarness(t, domain.WatchedMovie{ID: "tt1", Title: "Inception", UserRating: 9})
	h.key(tea.KeyTab)
	h.key(tea.KeyTab)
	h.press(runeKey("t"))

	if !h.m.Watched.IsCollapsed() {
		t.Fatal("watched box should collapse")
	}
	if strings.Contains(h.m.View(), "Inception") {
		t.Error("collapsed box still lists movies")
	}
	h.press(runeKey("t"))
	if h.m.Watched.IsCollapsed() {
		t.Error("watched box should expand")
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyTab)
	h.press(runeKey("?"))
	if !h.m.ShowHelp {
		t.Fatal("help not shown")
	}
	h.key(tea.KeyEsc)
	if h.m.ShowHelp {
		t.Error("esc should close help")
	}
}

func TestModel_StatusClearsBySequence(t *testing.T) {
	h := newHarness(t)
	h.send(StatusMsg{Message: "first"})
	h.send(StatusMsg{Message: "second"})

	h.send(ClearStatusMsg{Seq: 1})
	if h.m.StatusMsg != "second" {
		t.Errorf("stale clear removed newer status: %q", h.m.StatusMsg)
	}
	h.send(ClearStatusMsg{Seq: 2})
	if h.m.StatusMsg != "" {
		t.Errorf("status = %q, want cleared", h.m.StatusMsg)
	}
}

func TestModel_StaleSearchResultDropped(t *testing.T) {
	h := newHarness(t)
	h.send(runeKey("F"))

	// A result for a handle the controller never issued is ignored
	h.send(SearchResultsMsg{Handle: &state.SearchHandle{Query: "F"}, Items: []domain.SearchResultItem{{ID: "x", Title: "X"}}})
	if len(h.state().Results) != 0 {
		t.Error("stale result applied")
	}
}

func TestModel_CtrlCQuits(t *testing.T) {
	h := newHarness(t)
	cmd := h.send(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit from the search bar")
	}
}
