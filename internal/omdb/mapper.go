package omdb

import (
	"strconv"
	"strings"

	"github.com/mmcdole/screenly/internal/domain"
)

const notAvailable = "N/A"

// MapSearchItems converts search DTOs to domain items
func MapSearchItems(items []SearchItem) []domain.SearchResultItem {
	result := make([]domain.SearchResultItem, 0, len(items))
	for _, it := range items {
		if it.IMDbID == "" {
			continue
		}
		result = append(result, domain.SearchResultItem{
			ID:        it.IMDbID,
			Title:     it.Title,
			Year:      it.Year,
			PosterURL: clean(it.Poster),
		})
	}
	return result
}

// MapTitle converts a title DTO to a domain detail
func MapTitle(t *TitleResponse) *domain.MovieDetail {
	if t == nil {
		return nil
	}
	return &domain.MovieDetail{
		ID:             t.IMDbID,
		Title:          t.Title,
		Year:           t.Year,
		PosterURL:      clean(t.Poster),
		RuntimeMinutes: parseRuntime(t.Runtime),
		IMDbRating:     parseRating(t.IMDbRating),
		Plot:           clean(t.Plot),
		ReleaseDate:    clean(t.Released),
		Actors:         clean(t.Actors),
		Director:       clean(t.Director),
		Genre:          clean(t.Genre),
	}
}

// clean maps the catalog's "N/A" placeholder to ""
func clean(s string) string {
	s = strings.TrimSpace(s)
	if s == notAvailable {
		return ""
	}
	return s
}

// parseRuntime reads the leading integer of "148 min"
func parseRuntime(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseRating reads "8.7"; anything unparseable is 0
func parseRating(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
