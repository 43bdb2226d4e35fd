package domain

import "fmt"

// SearchResultItem is a lightweight catalog hit returned by a free-text search
type SearchResultItem struct {
	ID        string // Catalog identifier (e.g. "tt2713180")
	Title     string // Display title
	Year      string // Release year, may be a range for series ("2011–2019")
	PosterURL string // Poster image URL, empty when the catalog has none
}

// DisplayTitle returns the title with its year
func (s SearchResultItem) DisplayTitle() string {
	if s.Year == "" {
		return s.Title
	}
	return fmt.Sprintf("%s (%s)", s.Title, s.Year)
}

// MovieDetail is the full metadata for one catalog entry.
// It is replaced wholesale on every new selection.
type MovieDetail struct {
	ID             string
	Title          string
	Year           string
	PosterURL      string
	RuntimeMinutes int     // 0 when unknown
	IMDbRating     float64 // 0-10, 0 when unknown
	Plot           string
	ReleaseDate    string // As reported by the catalog ("25 Sep 2014")
	Actors         string
	Director       string
	Genre          string
}

// FormattedRuntime returns the runtime as "N min", or "" when unknown
func (d MovieDetail) FormattedRuntime() string {
	if d.RuntimeMinutes <= 0 {
		return ""
	}
	return fmt.Sprintf("%d min", d.RuntimeMinutes)
}

// ToWatched builds the durable record for this movie with the user's rating
func (d MovieDetail) ToWatched(userRating int) WatchedMovie {
	return WatchedMovie{
		ID:             d.ID,
		Title:          d.Title,
		Year:           d.Year,
		PosterURL:      d.PosterURL,
		IMDbRating:     d.IMDbRating,
		UserRating:     userRating,
		RuntimeMinutes: d.RuntimeMinutes,
	}
}

// Rating bounds for the user's own score
const (
	MinUserRating = 1
	MaxUserRating = 10
)

// WatchedMovie is a user-rated movie kept in the local watched list.
// JSON keys match the on-disk format of the watched slot.
type WatchedMovie struct {
	ID             string  `json:"imdbID"`
	Title          string  `json:"title"`
	Year           string  `json:"year"`
	PosterURL      string  `json:"poster"`
	IMDbRating     float64 `json:"imdbRating"`
	UserRating     int     `json:"userRating"`
	RuntimeMinutes int     `json:"runtime"`
}

// HasValidRating reports whether the user rating is within bounds
func (w WatchedMovie) HasValidRating() bool {
	return w.UserRating >= MinUserRating && w.UserRating <= MaxUserRating
}
