package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinetrack/models"
	"cinetrack/services/library"
	"cinetrack/services/omdb"

	"github.com/gorilla/mux"
)

type fakeLibraryService struct {
	item  *models.LibraryItem
	items []models.LibraryItem
	stats *models.Stats
	err   error

	addedIMDBID string
	addedStatus models.WatchStatus
	quickHit    *omdb.SearchHit
	manual      *library.ManualAddParams
	updatedID   int64
	update      models.EntryUpdate
	removedID   int64
}

func (f *fakeLibraryService) AddFromSearch(ctx context.Context, imdbID string, status models.WatchStatus) (*models.LibraryItem, error) {
	f.addedIMDBID = imdbID
	f.addedStatus = status
	return f.item, f.err
}

func (f *fakeLibraryService) QuickAdd(ctx context.Context, hit omdb.SearchHit) (*models.LibraryItem, error) {
	f.quickHit = &hit
	return f.item, f.err
}

func (f *fakeLibraryService) AddManual(params library.ManualAddParams) (*models.LibraryItem, error) {
	f.manual = &params
	return f.item, f.err
}

func (f *fakeLibraryService) SaveProgress(id int64, update models.EntryUpdate) error {
	f.updatedID = id
	f.update = update
	return f.err
}

func (f *fakeLibraryService) List(status models.WatchStatus) ([]models.LibraryItem, error) {
	return f.items, f.err
}

func (f *fakeLibraryService) Remove(id int64) error {
	f.removedID = id
	return f.err
}

func (f *fakeLibraryService) Stats() (*models.Stats, error) {
	return f.stats, f.err
}

func sampleItem() *models.LibraryItem {
	return &models.LibraryItem{
		Entry: models.UserEntry{ID: 1, MovieID: "tt001", Status: models.StatusWatchlist, DateAdded: "2024-01-01T00:00:00Z"},
		Movie: models.Movie{ID: "tt001", Title: "Dune", Year: "2021", Kind: models.MediaKindMovie},
	}
}

func TestLibraryHandlerAddFromSearch(t *testing.T) {
	svc := &fakeLibraryService{item: sampleItem()}
	handler := NewLibraryHandler(svc)

	body := []byte(`{"imdbId":"tt001","status":"watchlist"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/library", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Add(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.addedIMDBID != "tt001" || svc.addedStatus != models.StatusWatchlist {
		t.Fatalf("service called with %q/%q", svc.addedIMDBID, svc.addedStatus)
	}

	var resp models.LibraryItem
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Movie.Title != "Dune" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLibraryHandlerAddManual(t *testing.T) {
	svc := &fakeLibraryService{item: sampleItem()}
	handler := NewLibraryHandler(svc)

	body := []byte(`{"manual":{"title":"Dune","year":"2021","type":"movie","status":"completed"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/library", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Add(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.manual == nil || svc.manual.Title != "Dune" || svc.manual.Status != models.StatusCompleted {
		t.Fatalf("manual params not forwarded: %+v", svc.manual)
	}
}

func TestLibraryHandlerAddRequiresSelector(t *testing.T) {
	handler := NewLibraryHandler(&fakeLibraryService{})

	req := httptest.NewRequest(http.MethodPost, "/api/library", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	handler.Add(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestLibraryHandlerAddConflict(t *testing.T) {
	svc := &fakeLibraryService{err: library.ErrAlreadyTracked}
	handler := NewLibraryHandler(svc)

	body := []byte(`{"imdbId":"tt001"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/library", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Add(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestLibraryHandlerList(t *testing.T) {
	svc := &fakeLibraryService{items: []models.LibraryItem{*sampleItem()}}
	handler := NewLibraryHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/library?status=watchlist", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp struct {
		Items []models.LibraryItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Entry.MovieID != "tt001" {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}
}

func TestLibraryHandlerUpdate(t *testing.T) {
	svc := &fakeLibraryService{}
	handler := NewLibraryHandler(svc)

	body := []byte(`{"status":"watching"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/library/entries/7", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.updatedID != 7 {
		t.Fatalf("expected id 7, got %d", svc.updatedID)
	}
	if svc.update.Status == nil || *svc.update.Status != models.StatusWatching {
		t.Fatalf("status not forwarded: %+v", svc.update)
	}
	if svc.update.Review != nil || svc.update.PersonalRating != nil {
		t.Fatalf("absent fields must stay nil: %+v", svc.update)
	}
}

func TestLibraryHandlerUpdateBadID(t *testing.T) {
	handler := NewLibraryHandler(&fakeLibraryService{})

	req := httptest.NewRequest(http.MethodPatch, "/api/library/entries/abc", bytes.NewReader([]byte(`{}`)))
	req = mux.SetURLVars(req, map[string]string{"id": "abc"})
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestLibraryHandlerDelete(t *testing.T) {
	svc := &fakeLibraryService{}
	handler := NewLibraryHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/library/entries/3", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "3"})
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if svc.removedID != 3 {
		t.Fatalf("expected id 3, got %d", svc.removedID)
	}
}

func TestLibraryHandlerStats(t *testing.T) {
	svc := &fakeLibraryService{stats: &models.Stats{TotalMovies: 2, AverageRating: 7.5}}
	handler := NewLibraryHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()

	handler.Stats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp models.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalMovies != 2 || resp.AverageRating != 7.5 {
		t.Fatalf("unexpected stats: %+v", resp)
	}
}
