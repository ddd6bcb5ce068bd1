package database

import (
	"database/sql"
	"strings"

	"cinetrack/models"
)

// LibraryRepository owns the durable state for movies and user entries.
// It is handed out by NewDB; a zero-value repository (or one used after
// Close) fails every operation with ErrNotInitialized.
type LibraryRepository struct {
	db *sql.DB
}

// NewLibraryRepository creates a repository over an open connection.
func NewLibraryRepository(db *sql.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

// UpsertMovie inserts a movie or fully replaces an existing one with the
// same id. A later write wins wholesale: fields left nil overwrite prior
// values with NULL, this is never a merge.
func (r *LibraryRepository) UpsertMovie(movie *models.Movie) error {
	if r.db == nil {
		return ErrNotInitialized
	}

	// Conflict resolution is keyed on id only; a duplicate imdb_id on a
	// different row is still a constraint violation and surfaces as such.
	query := `
	INSERT INTO movies (id, imdb_id, title, year, kind, poster, plot, genre, director, actors, runtime, imdb_rating)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		imdb_id = excluded.imdb_id,
		title = excluded.title,
		year = excluded.year,
		kind = excluded.kind,
		poster = excluded.poster,
		plot = excluded.plot,
		genre = excluded.genre,
		director = excluded.director,
		actors = excluded.actors,
		runtime = excluded.runtime,
		imdb_rating = excluded.imdb_rating
	`
	_, err := r.db.Exec(query, movie.ID, movie.IMDBID, movie.Title, movie.Year,
		movie.Kind, movie.Poster, movie.Plot, movie.Genre, movie.Director,
		movie.Actors, movie.Runtime, movie.IMDBRating)
	if err != nil {
		return storageErr("upsert movie", err)
	}
	return nil
}

// GetMovie retrieves a movie by id, or nil when no such movie exists.
func (r *LibraryRepository) GetMovie(id string) (*models.Movie, error) {
	if r.db == nil {
		return nil, ErrNotInitialized
	}

	query := `
	SELECT id, imdb_id, title, year, kind, poster, plot, genre, director, actors, runtime, imdb_rating
	FROM movies WHERE id = ?
	`
	var movie models.Movie
	var imdbID, poster, plot, genre, director, actors, runtime, imdbRating sql.NullString
	err := r.db.QueryRow(query, id).Scan(&movie.ID, &imdbID, &movie.Title,
		&movie.Year, &movie.Kind, &poster, &plot, &genre, &director, &actors,
		&runtime, &imdbRating)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get movie", err)
	}
	movie.IMDBID = strPtr(imdbID)
	movie.Poster = strPtr(poster)
	movie.Plot = strPtr(plot)
	movie.Genre = strPtr(genre)
	movie.Director = strPtr(director)
	movie.Actors = strPtr(actors)
	movie.Runtime = strPtr(runtime)
	movie.IMDBRating = strPtr(imdbRating)
	return &movie, nil
}

// CreateEntry inserts a new tracking entry and returns the store-assigned
// id. DateAdded must already be set by the caller. The store does not
// check for an existing entry with the same movie id; keeping one entry
// per movie is a caller contract.
func (r *LibraryRepository) CreateEntry(entry *models.UserEntry) (int64, error) {
	if r.db == nil {
		return 0, ErrNotInitialized
	}

	query := `
	INSERT INTO user_entries (movie_id, status, personal_rating, review, progress, date_added, date_completed)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.Exec(query, entry.MovieID, entry.Status,
		entry.PersonalRating, entry.Review, entry.Progress, entry.DateAdded,
		entry.DateCompleted)
	if err != nil {
		return 0, storageErr("create entry", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, storageErr("create entry", err)
	}
	entry.ID = id
	return id, nil
}

// UpdateEntry applies only the fields present in update. An empty update
// issues no statement at all; an id that matches no row affects zero rows
// silently. Neither case is an error.
func (r *LibraryRepository) UpdateEntry(id int64, update models.EntryUpdate) error {
	if r.db == nil {
		return ErrNotInitialized
	}

	fields := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)

	if update.Status != nil {
		fields = append(fields, "status = ?")
		args = append(args, *update.Status)
	}
	if update.PersonalRating != nil {
		fields = append(fields, "personal_rating = ?")
		args = append(args, *update.PersonalRating)
	}
	if update.Review != nil {
		fields = append(fields, "review = ?")
		args = append(args, *update.Review)
	}
	if update.Progress != nil {
		fields = append(fields, "progress = ?")
		args = append(args, *update.Progress)
	}
	if update.DateCompleted != nil {
		fields = append(fields, "date_completed = ?")
		args = append(args, *update.DateCompleted)
	}

	if len(fields) == 0 {
		return nil
	}

	args = append(args, id)
	query := "UPDATE user_entries SET " + strings.Join(fields, ", ") + " WHERE id = ?"
	if _, err := r.db.Exec(query, args...); err != nil {
		return storageErr("update entry", err)
	}
	return nil
}

// ListEntries returns every tracking entry joined with its movie, most
// recently added first (ties broken by insertion order). Entries whose
// movie id does not resolve are excluded by the join. A non-empty status
// restricts the result to entries with that status.
func (r *LibraryRepository) ListEntries(status models.WatchStatus) ([]models.LibraryItem, error) {
	if r.db == nil {
		return nil, ErrNotInitialized
	}

	query := `
	SELECT ue.id, ue.movie_id, ue.status, ue.personal_rating, ue.review, ue.progress, ue.date_added, ue.date_completed,
	       m.id, m.imdb_id, m.title, m.year, m.kind, m.poster, m.plot, m.genre, m.director, m.actors, m.runtime, m.imdb_rating
	FROM user_entries ue
	JOIN movies m ON ue.movie_id = m.id
	`
	var args []interface{}
	if status != "" {
		query += " WHERE ue.status = ?"
		args = append(args, status)
	}
	query += " ORDER BY ue.date_added DESC, ue.id ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, storageErr("list entries", err)
	}
	defer rows.Close()

	items := []models.LibraryItem{}
	for rows.Next() {
		var item models.LibraryItem
		var rating sql.NullInt64
		var review, progress, dateCompleted sql.NullString
		var imdbID, poster, plot, genre, director, actors, runtime, imdbRating sql.NullString
		err := rows.Scan(&item.Entry.ID, &item.Entry.MovieID, &item.Entry.Status,
			&rating, &review, &progress, &item.Entry.DateAdded, &dateCompleted,
			&item.Movie.ID, &imdbID, &item.Movie.Title, &item.Movie.Year,
			&item.Movie.Kind, &poster, &plot, &genre, &director, &actors,
			&runtime, &imdbRating)
		if err != nil {
			return nil, storageErr("list entries", err)
		}
		item.Entry.PersonalRating = intPtr(rating)
		item.Entry.Review = strPtr(review)
		item.Entry.Progress = strPtr(progress)
		item.Entry.DateCompleted = strPtr(dateCompleted)
		item.Movie.IMDBID = strPtr(imdbID)
		item.Movie.Poster = strPtr(poster)
		item.Movie.Plot = strPtr(plot)
		item.Movie.Genre = strPtr(genre)
		item.Movie.Director = strPtr(director)
		item.Movie.Actors = strPtr(actors)
		item.Movie.Runtime = strPtr(runtime)
		item.Movie.IMDBRating = strPtr(imdbRating)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list entries", err)
	}
	return items, nil
}

// GetEntryByMovieID returns the first entry tracking the given movie, or
// nil when none exists. With duplicate entries the pick is arbitrary.
func (r *LibraryRepository) GetEntryByMovieID(movieID string) (*models.UserEntry, error) {
	if r.db == nil {
		return nil, ErrNotInitialized
	}

	query := `
	SELECT id, movie_id, status, personal_rating, review, progress, date_added, date_completed
	FROM user_entries WHERE movie_id = ? LIMIT 1
	`
	var entry models.UserEntry
	var rating sql.NullInt64
	var review, progress, dateCompleted sql.NullString
	err := r.db.QueryRow(query, movieID).Scan(&entry.ID, &entry.MovieID,
		&entry.Status, &rating, &review, &progress, &entry.DateAdded, &dateCompleted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get entry", err)
	}
	entry.PersonalRating = intPtr(rating)
	entry.Review = strPtr(review)
	entry.Progress = strPtr(progress)
	entry.DateCompleted = strPtr(dateCompleted)
	return &entry, nil
}

// DeleteEntry removes an entry. Deleting an id that does not exist is a
// no-op, not an error.
func (r *LibraryRepository) DeleteEntry(id int64) error {
	if r.db == nil {
		return ErrNotInitialized
	}

	if _, err := r.db.Exec("DELETE FROM user_entries WHERE id = ?", id); err != nil {
		return storageErr("delete entry", err)
	}
	return nil
}

// Stats computes all library aggregates in one query so the six fields
// are always consistent with each other. An unrated library averages to
// 0, and dropped entries count toward totals only.
func (r *LibraryRepository) Stats() (*models.Stats, error) {
	if r.db == nil {
		return nil, ErrNotInitialized
	}

	query := `
	SELECT
		COUNT(CASE WHEN m.kind = 'movie' THEN 1 END) AS total_movies,
		COUNT(CASE WHEN m.kind = 'series' THEN 1 END) AS total_shows,
		COUNT(CASE WHEN ue.status = 'completed' THEN 1 END) AS completed,
		COUNT(CASE WHEN ue.status = 'watching' THEN 1 END) AS watching,
		COUNT(CASE WHEN ue.status = 'watchlist' THEN 1 END) AS watchlist,
		COALESCE(AVG(ue.personal_rating), 0) AS average_rating
	FROM user_entries ue
	JOIN movies m ON ue.movie_id = m.id
	`
	var stats models.Stats
	err := r.db.QueryRow(query).Scan(&stats.TotalMovies, &stats.TotalShows,
		&stats.Completed, &stats.Watching, &stats.Watchlist, &stats.AverageRating)
	if err != nil {
		return nil, storageErr("stats", err)
	}
	return &stats, nil
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	n := int(ni.Int64)
	return &n
}
