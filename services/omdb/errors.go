package omdb

import "errors"

var (
	// ErrRemoteUnavailable covers transport failures and non-OK responses.
	// The client never retries; a single attempt either succeeds or fails.
	ErrRemoteUnavailable = errors.New("omdb unavailable")
	// ErrNotFound is returned when OMDb reports an imdb id as unknown.
	ErrNotFound = errors.New("title not found")
)

// RejectedError is returned when OMDb answers a search with an explicit
// error envelope. Message carries the remote's exact wording.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return "omdb rejected request: " + e.Message
}
