package omdb

import "cinetrack/models"

// notAvailable is OMDb's sentinel for an absent field.
const notAvailable = "N/A"

// optional translates OMDb's sentinel into an explicit absence.
func optional(s string) *string {
	if s == "" || s == notAvailable {
		return nil
	}
	v := s
	return &v
}

// ToMovie maps a detail record into the catalog shape. Pure and
// deterministic; every "N/A" field comes out nil.
func (d *Detail) ToMovie() *models.Movie {
	id := d.IMDBID
	return &models.Movie{
		ID:         id,
		IMDBID:     &id,
		Title:      d.Title,
		Year:       d.Year,
		Kind:       models.MediaKind(d.Type),
		Poster:     optional(d.Poster),
		Plot:       optional(d.Plot),
		Genre:      optional(d.Genre),
		Director:   optional(d.Director),
		Actors:     optional(d.Actors),
		Runtime:    optional(d.Runtime),
		IMDBRating: optional(d.IMDBRating),
	}
}

// ToMovie maps a search hit into the catalog shape. Search results only
// carry the short field set, so the metadata fields stay nil.
func (h SearchHit) ToMovie() *models.Movie {
	id := h.IMDBID
	return &models.Movie{
		ID:     id,
		IMDBID: &id,
		Title:  h.Title,
		Year:   h.Year,
		Kind:   models.MediaKind(h.Type),
		Poster: optional(h.Poster),
	}
}
