package domain

// WatchedSummary holds aggregate values over the watched list
type WatchedSummary struct {
	Count         int
	AvgIMDbRating float64
	AvgUserRating float64
	AvgRuntime    float64 // minutes
}

// Summarize computes arithmetic means over the list. An empty list yields zeros.
func Summarize(list []WatchedMovie) WatchedSummary {
	s := WatchedSummary{Count: len(list)}
	if len(list) == 0 {
		return s
	}

	n := float64(len(list))
	for _, m := range list {
		s.AvgIMDbRating += m.IMDbRating / n
		s.AvgUserRating += float64(m.UserRating) / n
		s.AvgRuntime += float64(m.RuntimeMinutes) / n
	}
	return s
}

// FindWatched returns the index of the record with the given ID, or -1
func FindWatched(list []WatchedMovie, id string) int {
	for i, m := range list {
		if m.ID == id {
			return i
		}
	}
	return -1
}
