package models

// MediaKind distinguishes feature films from episodic series.
type MediaKind string

const (
	MediaKindMovie  MediaKind = "movie"
	MediaKindSeries MediaKind = "series"
)

// Movie represents a cataloged title, independent of any tracking state.
// Optional metadata fields are pointers so that "unknown" survives the
// round trip to the database as NULL instead of an empty string.
type Movie struct {
	ID         string    `json:"id"`
	IMDBID     *string   `json:"imdbId,omitempty"`
	Title      string    `json:"title"`
	Year       string    `json:"year"` // free-form, covers series runs like "2019–2022"
	Kind       MediaKind `json:"type"`
	Poster     *string   `json:"poster,omitempty"`
	Plot       *string   `json:"plot,omitempty"`
	Genre      *string   `json:"genre,omitempty"`
	Director   *string   `json:"director,omitempty"`
	Actors     *string   `json:"actors,omitempty"`
	Runtime    *string   `json:"runtime,omitempty"`
	IMDBRating *string   `json:"imdbRating,omitempty"`
}
