package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinetrack/internal/database"
	"cinetrack/models"
	"cinetrack/services/omdb"

	"github.com/google/uuid"
)

type lookupClient interface {
	FetchDetails(ctx context.Context, imdbID string) (*omdb.Detail, error)
}

var _ lookupClient = (*omdb.Client)(nil)

type libraryStore interface {
	UpsertMovie(movie *models.Movie) error
	CreateEntry(entry *models.UserEntry) (int64, error)
	UpdateEntry(id int64, update models.EntryUpdate) error
	ListEntries(status models.WatchStatus) ([]models.LibraryItem, error)
	GetEntryByMovieID(movieID string) (*models.UserEntry, error)
	DeleteEntry(id int64) error
	Stats() (*models.Stats, error)
}

var _ libraryStore = (*database.LibraryRepository)(nil)

var (
	ErrAlreadyTracked = errors.New("title is already in the library")
	ErrTitleRequired  = errors.New("title is required")
	ErrYearRequired   = errors.New("year is required")
	ErrInvalidStatus  = errors.New("invalid watch status")
	ErrInvalidRating  = errors.New("personal rating must be between 1 and 10")
)

// Service owns the add/update flows over the store and the lookup client.
// The store itself never enforces one-entry-per-movie; this layer does,
// so the shipped flows cannot create duplicates.
type Service struct {
	store  libraryStore
	lookup lookupClient
	now    func() time.Time
}

// NewService returns a library service over the given store and lookup client.
func NewService(store libraryStore, lookup lookupClient) *Service {
	return &Service{
		store:  store,
		lookup: lookup,
		now:    time.Now,
	}
}

// ManualAddParams carries a manually entered title. Title and Year are
// required; everything else is optional.
type ManualAddParams struct {
	Title          string             `json:"title"`
	Year           string             `json:"year"`
	Kind           models.MediaKind   `json:"type"`
	Genre          *string            `json:"genre,omitempty"`
	Director       *string            `json:"director,omitempty"`
	Actors         *string            `json:"actors,omitempty"`
	Runtime        *string            `json:"runtime,omitempty"`
	Plot           *string            `json:"plot,omitempty"`
	Status         models.WatchStatus `json:"status"`
	PersonalRating *int               `json:"personalRating,omitempty"`
	Review         *string            `json:"review,omitempty"`
	Progress       *string            `json:"progress,omitempty"`
}

// AddFromSearch fetches full metadata for an imdb id, upserts the mapped
// movie and creates a tracking entry. The metadata upsert happens even
// when the title turns out to be tracked already, so a re-add refreshes
// stale catalog fields before failing with ErrAlreadyTracked.
func (s *Service) AddFromSearch(ctx context.Context, imdbID string, status models.WatchStatus) (*models.LibraryItem, error) {
	if status == "" {
		status = models.StatusWatchlist
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	detail, err := s.lookup.FetchDetails(ctx, imdbID)
	if err != nil {
		return nil, err
	}
	movie := detail.ToMovie()
	if err := s.store.UpsertMovie(movie); err != nil {
		return nil, err
	}

	return s.createEntry(movie, models.UserEntry{Status: status})
}

// QuickAdd stores a search hit as-is and puts it on the watchlist, the
// one-tap add from search results. Detail fields stay empty until the
// title is re-added through AddFromSearch.
func (s *Service) QuickAdd(ctx context.Context, hit omdb.SearchHit) (*models.LibraryItem, error) {
	movie := hit.ToMovie()
	if err := s.store.UpsertMovie(movie); err != nil {
		return nil, err
	}

	return s.createEntry(movie, models.UserEntry{Status: models.StatusWatchlist})
}

// AddManual stores a hand-entered title under a locally generated id and
// creates its tracking entry.
func (s *Service) AddManual(params ManualAddParams) (*models.LibraryItem, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	year := strings.TrimSpace(params.Year)
	if year == "" {
		return nil, ErrYearRequired
	}
	kind := params.Kind
	if kind == "" {
		kind = models.MediaKindMovie
	}
	status := params.Status
	if status == "" {
		status = models.StatusWatchlist
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if params.PersonalRating != nil && (*params.PersonalRating < 1 || *params.PersonalRating > 10) {
		return nil, ErrInvalidRating
	}

	movie := &models.Movie{
		ID:       "manual-" + uuid.NewString(),
		Title:    title,
		Year:     year,
		Kind:     kind,
		Genre:    params.Genre,
		Director: params.Director,
		Actors:   params.Actors,
		Runtime:  params.Runtime,
		Plot:     params.Plot,
	}
	if err := s.store.UpsertMovie(movie); err != nil {
		return nil, err
	}

	return s.createEntry(movie, models.UserEntry{
		Status:         status,
		PersonalRating: params.PersonalRating,
		Review:         params.Review,
		Progress:       params.Progress,
	})
}

func (s *Service) createEntry(movie *models.Movie, entry models.UserEntry) (*models.LibraryItem, error) {
	existing, err := s.store.GetEntryByMovieID(movie.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyTracked
	}

	now := s.now().UTC().Format(time.RFC3339)
	entry.MovieID = movie.ID
	entry.DateAdded = now
	if entry.Status == models.StatusCompleted {
		entry.DateCompleted = &now
	}
	if _, err := s.store.CreateEntry(&entry); err != nil {
		return nil, err
	}
	return &models.LibraryItem{Entry: entry, Movie: *movie}, nil
}

// SaveProgress applies a partial update to an entry. A status change to
// completed without an explicit completion time stamps one; moving away
// from completed leaves an earlier stamp in place.
func (s *Service) SaveProgress(id int64, update models.EntryUpdate) error {
	if update.Status != nil && !update.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *update.Status)
	}
	if update.PersonalRating != nil && (*update.PersonalRating < 1 || *update.PersonalRating > 10) {
		return ErrInvalidRating
	}

	if update.Status != nil && *update.Status == models.StatusCompleted && update.DateCompleted == nil {
		now := s.now().UTC().Format(time.RFC3339)
		update.DateCompleted = &now
	}
	return s.store.UpdateEntry(id, update)
}

// List returns the library joined with its movies, optionally restricted
// to one status.
func (s *Service) List(status models.WatchStatus) ([]models.LibraryItem, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.store.ListEntries(status)
}

// Remove deletes a tracking entry; the catalog row stays.
func (s *Service) Remove(id int64) error {
	return s.store.DeleteEntry(id)
}

// Stats returns the library aggregates.
func (s *Service) Stats() (*models.Stats, error) {
	return s.store.Stats()
}
