// Package search provides local fuzzy filtering over lists already on screen.
// It never touches the network; remote search lives in the omdb client.
package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/screenly/internal/domain"
	"github.com/sahilm/fuzzy"
)

// WatchedIndex implements sahilm/fuzzy.Source over watched titles
type WatchedIndex struct {
	items       []domain.WatchedMovie
	lowerTitles []string // Pre-computed lowercase titles
}

// NewWatchedIndex builds an index over list
func NewWatchedIndex(list []domain.WatchedMovie) *WatchedIndex {
	idx := &WatchedIndex{
		items:       list,
		lowerTitles: make([]string, len(list)),
	}
	for i, m := range list {
		idx.lowerTitles[i] = strings.ToLower(m.Title)
	}
	return idx
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *WatchedIndex) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of items (implements fuzzy.Source)
func (idx *WatchedIndex) Len() int { return len(idx.items) }

// Match is a filtered position plus the matched character offsets for highlighting
type Match struct {
	Index          int   // Index into the unfiltered slice
	MatchedIndexes []int // Matched rune positions in the title (may be nil)
}

// FilterWatched returns matches for query, best first.
// An empty query matches nothing; callers show the full list instead.
func FilterWatched(query string, list []domain.WatchedMovie) []Match {
	query = strings.TrimSpace(query)
	if query == "" || len(list) == 0 {
		return nil
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), NewWatchedIndex(list))
	result := make([]Match, len(matches))
	for i, m := range matches {
		result[i] = Match{Index: m.Index, MatchedIndexes: m.MatchedIndexes}
	}
	return result
}

// FilterResults narrows the current search results by title, ranked by
// Levenshtein distance (closest first, stable for ties).
func FilterResults(query string, items []domain.SearchResultItem) []Match {
	query = strings.TrimSpace(query)
	if query == "" || len(items) == 0 {
		return nil
	}

	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title
	}

	ranks := lfuzzy.RankFindFold(query, titles)
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})

	result := make([]Match, len(ranks))
	for i, r := range ranks {
		result[i] = Match{Index: r.OriginalIndex}
	}
	return result
}
