package repository

import (
	"context"
	"testing"
	"time"

	"filmorate/internal/models"
	"filmorate/internal/testutil"

	"github.com/stretchr/testify/require"
)

// fixture wires every repository against one SQLite database.
type fixture struct {
	films     FilmRepository
	users     UserRepository
	friends   FriendRepository
	likes     LikeRepository
	genres    GenreRepository
	mpa       MpaRepository
	directors DirectorRepository
	reviews   ReviewRepository
	events    EventRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.OpenSQLite(t)

	likes := NewLikeRepository(db).(*likeRepository)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	likes.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	return &fixture{
		films:     NewFilmRepository(db),
		users:     NewUserRepository(db),
		friends:   NewFriendRepository(db),
		likes:     likes,
		genres:    NewGenreRepository(db),
		mpa:       NewMpaRepository(db),
		directors: NewDirectorRepository(db),
		reviews:   NewReviewRepository(db),
		events:    NewEventRepository(db),
	}
}

func (f *fixture) user(t *testing.T, login string) *models.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), &models.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: models.NewDate(1990, 5, 17),
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) film(t *testing.T, name string, release models.Date, genres ...int64) *models.Film {
	t.Helper()
	film := &models.Film{
		Name:        name,
		Description: name + " description",
		ReleaseDate: release,
		Duration:    100,
		Mpa:         &models.Mpa{ID: 1},
	}
	for _, g := range genres {
		film.Genres = append(film.Genres, models.Genre{ID: g})
	}
	created, err := f.films.Create(context.Background(), film)
	require.NoError(t, err)
	return created
}

func (f *fixture) like(t *testing.T, filmID, userID int64) {
	t.Helper()
	require.NoError(t, f.likes.Add(context.Background(), filmID, userID))
}
