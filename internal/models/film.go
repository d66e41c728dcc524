// Package models contains data structures for the application's domain models.
package models

// CinemaBirthday is the earliest release date a film may carry.
var CinemaBirthday = NewDate(1895, 12, 28)

// Mpa is a content rating classification (G, PG, PG-13, R, NC-17).
type Mpa struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Name string `json:"name,omitempty"`
}

// Genre is a read-only film genre.
type Genre struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Name string `json:"name,omitempty"`
}

// Director is a film director.
type Director struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"notblank,max=255"`
}

// Film is a movie with its rating and associated genre, director and like sets.
type Film struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name" validate:"notblank,max=255"`
	Description string     `json:"description" validate:"max=200"`
	ReleaseDate Date       `json:"releaseDate" validate:"releasedate"`
	Duration    int        `json:"duration" validate:"gt=0"`
	Mpa         *Mpa       `json:"mpa" validate:"required"`
	Genres      []Genre    `json:"genres" validate:"dive"`
	Directors   []Director `json:"directors"`
	Likes       []int64    `json:"likes"`
}

// GenreIDs returns the distinct genre ids of the film in first-seen order.
func (f *Film) GenreIDs() []int64 {
	ids := make([]int64, 0, len(f.Genres))
	seen := make(map[int64]struct{}, len(f.Genres))
	for _, g := range f.Genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		ids = append(ids, g.ID)
	}
	return ids
}

// DirectorIDs returns the distinct director ids of the film in first-seen order.
func (f *Film) DirectorIDs() []int64 {
	ids := make([]int64, 0, len(f.Directors))
	seen := make(map[int64]struct{}, len(f.Directors))
	for _, d := range f.Directors {
		if _, ok := seen[d.ID]; ok {
			continue
		}
		seen[d.ID] = struct{}{}
		ids = append(ids, d.ID)
	}
	return ids
}

// FilmSort selects the ordering of a director's filmography.
type FilmSort string

const (
	// FilmSortYear orders by release date ascending.
	FilmSortYear FilmSort = "year"
	// FilmSortLikes orders by like count descending.
	FilmSortLikes FilmSort = "likes"
)

// PopularFilter narrows the popular films query.
type PopularFilter struct {
	Count   int
	GenreID *int64
	Year    *int
}
