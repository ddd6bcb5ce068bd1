package models

// WatchStatus is the user's relationship to a title.
type WatchStatus string

const (
	StatusWatching  WatchStatus = "watching"
	StatusCompleted WatchStatus = "completed"
	StatusWatchlist WatchStatus = "watchlist"
	StatusDropped   WatchStatus = "dropped"
)

// Valid reports whether s is one of the known statuses.
func (s WatchStatus) Valid() bool {
	switch s {
	case StatusWatching, StatusCompleted, StatusWatchlist, StatusDropped:
		return true
	}
	return false
}

// UserEntry is a user's tracking record against one movie. ID is assigned
// by the store on creation. Timestamps are ISO-8601 strings; DateAdded is
// set once at creation and never changes afterward.
type UserEntry struct {
	ID             int64       `json:"id"`
	MovieID        string      `json:"movieId"`
	Status         WatchStatus `json:"status"`
	PersonalRating *int        `json:"personalRating,omitempty"`
	Review         *string     `json:"review,omitempty"`
	Progress       *string     `json:"progress,omitempty"`
	DateAdded      string      `json:"dateAdded"`
	DateCompleted  *string     `json:"dateCompleted,omitempty"`
}

// EntryUpdate captures data for a partial entry update. A nil field is
// left unchanged; a non-nil field overwrites, even when it points at an
// empty or zero value. DateAdded is deliberately not updatable.
type EntryUpdate struct {
	Status         *WatchStatus `json:"status,omitempty"`
	PersonalRating *int         `json:"personalRating,omitempty"`
	Review         *string      `json:"review,omitempty"`
	Progress       *string      `json:"progress,omitempty"`
	DateCompleted  *string      `json:"dateCompleted,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u EntryUpdate) IsEmpty() bool {
	return u.Status == nil && u.PersonalRating == nil && u.Review == nil &&
		u.Progress == nil && u.DateCompleted == nil
}

// LibraryItem is a tracking entry joined with its movie, the row shape the
// library listing renders.
type LibraryItem struct {
	Entry UserEntry `json:"entry"`
	Movie Movie     `json:"movie"`
}

// Stats aggregates the whole library in a single pass. Dropped entries
// still count toward the totals but have no bucket of their own.
type Stats struct {
	TotalMovies   int     `json:"totalMovies"`
	TotalShows    int     `json:"totalShows"`
	Completed     int     `json:"completed"`
	Watching      int     `json:"watching"`
	Watchlist     int     `json:"watchlist"`
	AverageRating float64 `json:"averageRating"`
}
