package service

import (
	"context"
	"testing"

	"filmorate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFilm() *models.Film {
	return &models.Film{
		Name:        "nisi eiusmod",
		Description: "adipisicing",
		ReleaseDate: models.NewDate(1967, 3, 25),
		Duration:    100,
		Mpa:         &models.Mpa{ID: 1},
	}
}

type filmDeps struct {
	films     *filmRepoStub
	likes     *likeRepoStub
	users     *userRepoStub
	directors *directorRepoStub
	events    *eventRecorder
}

func newFilmService(popularDefault int) (*FilmService, *filmDeps) {
	deps := &filmDeps{
		films:     noopFilmRepo(),
		likes:     noopLikeRepo(),
		users:     noopUserRepo(),
		directors: noopDirectorRepo(),
	}
	feed, rec := newFeed(deps.users)
	deps.events = rec
	svc := NewFilmService(FilmRepositories{
		Films:     deps.films,
		Likes:     deps.likes,
		Users:     deps.users,
		Mpa:       noopMpaRepo(),
		Genres:    noopGenreRepo(),
		Directors: deps.directors,
	}, feed, popularDefault)
	return svc, deps
}

func TestFilmServiceCreateChecksReferences(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*models.Film)
		wantCode string
	}{
		{name: "valid", mutate: func(*models.Film) {}},
		{name: "unknown mpa", mutate: func(f *models.Film) { f.Mpa = &models.Mpa{ID: 9} }, wantCode: models.CodeNotFound},
		{name: "unknown genre", mutate: func(f *models.Film) { f.Genres = []models.Genre{{ID: 1}, {ID: 99}} }, wantCode: models.CodeNotFound},
		{name: "unknown director", mutate: func(f *models.Film) { f.Directors = []models.Director{{ID: 7}} }, wantCode: models.CodeNotFound},
		{name: "missing mpa", mutate: func(f *models.Film) { f.Mpa = nil }, wantCode: models.CodeValidation},
		{name: "too early", mutate: func(f *models.Film) { f.ReleaseDate = models.NewDate(1895, 12, 27) }, wantCode: models.CodeValidation},
		{name: "cinema birthday", mutate: func(f *models.Film) { f.ReleaseDate = models.NewDate(1895, 12, 28) }},
		{name: "zero duration", mutate: func(f *models.Film) { f.Duration = 0 }, wantCode: models.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newFilmService(10)
			film := validFilm()
			tt.mutate(film)

			created, err := svc.CreateFilm(context.Background(), film)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, int64(1), created.ID)
				return
			}
			assert.True(t, models.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestFilmServiceUpdateAppliesSameRules(t *testing.T) {
	svc, _ := newFilmService(10)
	film := validFilm()
	film.ID = 4
	film.ReleaseDate = models.NewDate(1800, 1, 1)

	_, err := svc.UpdateFilm(context.Background(), film)
	assert.True(t, models.HasCode(err, models.CodeValidation))
}

func TestFilmServicePopularCount(t *testing.T) {
	count := func(n int) *int { return &n }
	tests := []struct {
		name      string
		count     *int
		year      *int
		wantCount int
		wantErr   bool
	}{
		{name: "default", wantCount: 7},
		{name: "explicit", count: count(3), wantCount: 3},
		{name: "zero", count: count(0), wantErr: true},
		{name: "negative", count: count(-1), wantErr: true},
		{name: "year before cinema", year: count(1800), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newFilmService(7)
			var got models.PopularFilter
			deps.films.popularFn = func(_ context.Context, filter models.PopularFilter) ([]models.Film, error) {
				got = filter
				return nil, nil
			}

			_, err := svc.Popular(context.Background(), tt.count, nil, tt.year)
			if tt.wantErr {
				assert.True(t, models.HasCode(err, models.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, got.Count)
		})
	}
}

func TestFilmServiceSearchBy(t *testing.T) {
	tests := []struct {
		by           string
		wantTitle    bool
		wantDirector bool
		wantErr      bool
	}{
		{by: "", wantTitle: true},
		{by: "title", wantTitle: true},
		{by: "director", wantDirector: true},
		{by: "director,title", wantTitle: true, wantDirector: true},
		{by: " Title , DIRECTOR ", wantTitle: true, wantDirector: true},
		{by: "year", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.by, func(t *testing.T) {
			svc, deps := newFilmService(10)
			var byTitle, byDirector bool
			deps.films.searchFn = func(_ context.Context, term string, title, director bool) ([]models.Film, error) {
				assert.Equal(t, "krUG", term)
				byTitle, byDirector = title, director
				return nil, nil
			}

			_, err := svc.Search(context.Background(), " krUG ", tt.by)
			if tt.wantErr {
				assert.True(t, models.HasCode(err, models.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, byTitle)
			assert.Equal(t, tt.wantDirector, byDirector)
		})
	}
}

func TestFilmServiceByDirector(t *testing.T) {
	tests := []struct {
		name       string
		directorID int64
		sortBy     string
		want       models.FilmSort
		wantCode   string
	}{
		{name: "default year", directorID: 1, want: models.FilmSortYear},
		{name: "likes", directorID: 1, sortBy: "likes", want: models.FilmSortLikes},
		{name: "bad sort", directorID: 1, sortBy: "name", wantCode: models.CodeValidation},
		{name: "unknown director", directorID: 42, sortBy: "year", wantCode: models.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newFilmService(10)
			var got models.FilmSort
			deps.films.byDirectorFn = func(_ context.Context, _ int64, sortBy models.FilmSort) ([]models.Film, error) {
				got = sortBy
				return nil, nil
			}

			_, err := svc.ByDirector(context.Background(), tt.directorID, tt.sortBy)
			if tt.wantCode != "" {
				assert.True(t, models.HasCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilmServiceLikesRecordEvents(t *testing.T) {
	svc, deps := newFilmService(10)
	ctx := context.Background()

	require.NoError(t, svc.AddLike(ctx, 5, 2))
	require.NoError(t, svc.RemoveLike(ctx, 5, 2))

	require.Len(t, deps.events.events, 2)
	assert.Equal(t, models.Event{ID: 1, UserID: 2, EventType: models.EventLike, Operation: models.OperationAdd, EntityID: 5, Timestamp: 1700000000001}, deps.events.events[0])
	assert.Equal(t, models.OperationRemove, deps.events.events[1].Operation)
}

func TestFilmServiceLikeMissingFilm(t *testing.T) {
	svc, deps := newFilmService(10)
	deps.likes.addFn = func(context.Context, int64, int64) error {
		t.Fatal("like stored for a missing film")
		return nil
	}

	err := svc.AddLike(context.Background(), -5, 2)
	assert.True(t, models.IsNotFound(err))
	assert.Empty(t, deps.events.events)
}
