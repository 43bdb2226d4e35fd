package domain

import "context"

// MovieClient fetches from the remote movie catalog.
type MovieClient interface {
	// SearchMovies runs a free-text search. Callers skip the call for an empty query.
	SearchMovies(ctx context.Context, query string) ([]SearchResultItem, error)

	// FetchMovieDetail loads full metadata for one catalog ID.
	FetchMovieDetail(ctx context.Context, id string) (*MovieDetail, error)
}

// WatchedStore persists the watched list in a single local slot.
type WatchedStore interface {
	// Load returns the stored list, or an empty list if the slot is absent,
	// empty or unreadable. It never fails.
	Load() []WatchedMovie

	// Save overwrites the slot with the full list.
	Save(list []WatchedMovie) error

	Close() error
}
