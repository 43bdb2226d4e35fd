package domain

import "errors"

// Sentinel errors for catalog operations
var (
	// ErrNetwork indicates a transport failure or a non-success HTTP status
	ErrNetwork = errors.New("catalog request failed")

	// ErrNotFound indicates a well-formed "no results" response
	ErrNotFound = errors.New("movie not found")

	// ErrCancelled indicates the request was superseded and aborted by the caller
	ErrCancelled = errors.New("request cancelled")
)

// User-facing messages for the error taxonomy
const (
	MsgNetwork  = "Something went wrong with fetching movies"
	MsgNotFound = "Movie not found"
)

// UserMessage returns the text shown to the user for err.
// Cancellation is never shown and yields "".
func UserMessage(err error) string {
	switch {
	case err == nil, errors.Is(err, ErrCancelled):
		return ""
	case errors.Is(err, ErrNotFound):
		return MsgNotFound
	case errors.Is(err, ErrNetwork):
		return MsgNetwork
	default:
		return err.Error()
	}
}
