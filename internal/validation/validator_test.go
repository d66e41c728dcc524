package validation

import (
	"strings"
	"testing"
	"time"

	"filmorate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFilm() models.Film {
	return models.Film{
		Name:        "Nosferatu",
		Description: "A symphony of horror",
		ReleaseDate: models.NewDate(1922, 3, 4),
		Duration:    94,
		Mpa:         &models.Mpa{ID: 1},
		Genres:      []models.Genre{{ID: 2}},
	}
}

func validUser() models.User {
	return models.User{
		Email:    "max@example.com",
		Login:    "orlok",
		Birthday: models.NewDate(1990, 1, 1),
	}
}

func TestStruct_Film(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*models.Film)
		wantErr string
	}{
		{name: "valid", mutate: func(*models.Film) {}},
		{name: "blank name", mutate: func(f *models.Film) { f.Name = "   " }, wantErr: "name must not be blank"},
		{name: "description 200 runes", mutate: func(f *models.Film) { f.Description = strings.Repeat("ж", 200) }},
		{name: "description too long", mutate: func(f *models.Film) { f.Description = strings.Repeat("x", 201) }, wantErr: "description must be at most 200 characters"},
		{name: "cinema birthday allowed", mutate: func(f *models.Film) { f.ReleaseDate = models.CinemaBirthday }},
		{name: "before cinema birthday", mutate: func(f *models.Film) { f.ReleaseDate = models.NewDate(1895, 12, 27) }, wantErr: "releaseDate must not be earlier than 1895-12-28"},
		{name: "missing release date", mutate: func(f *models.Film) { f.ReleaseDate = models.Date{} }, wantErr: "releaseDate"},
		{name: "zero duration", mutate: func(f *models.Film) { f.Duration = 0 }, wantErr: "duration must be greater than 0"},
		{name: "missing mpa", mutate: func(f *models.Film) { f.Mpa = nil }, wantErr: "mpa is required"},
		{name: "bad genre id", mutate: func(f *models.Film) { f.Genres = []models.Genre{{ID: 0}} }, wantErr: "id is required"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			film := validFilm()
			tc.mutate(&film)

			err := Struct(&film)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, models.HasCode(err, models.CodeValidation))
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestStruct_User(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*models.User)
		wantErr string
	}{
		{name: "valid", mutate: func(*models.User) {}},
		{name: "no birthday", mutate: func(u *models.User) { u.Birthday = models.Date{} }},
		{name: "bad email", mutate: func(u *models.User) { u.Email = "not-an-email" }, wantErr: "email must be a valid email address"},
		{name: "blank login", mutate: func(u *models.User) { u.Login = "" }, wantErr: "login must not be blank"},
		{name: "login with space", mutate: func(u *models.User) { u.Login = "count orlok" }, wantErr: "login must not contain spaces"},
		{name: "future birthday", mutate: func(u *models.User) { u.Birthday = models.NewDate(3000, 1, 1) }, wantErr: "birthday must not be in the future"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			user := validUser()
			tc.mutate(&user)

			err := Struct(&user)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestStruct_Review(t *testing.T) {
	t.Parallel()

	positive := true
	review := models.Review{Content: "Great", IsPositive: &positive, UserID: 1, FilmID: 1}
	assert.NoError(t, Struct(&review))

	review.IsPositive = nil
	err := Struct(&review)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "isPositive is required")

	review.IsPositive = &positive
	review.Content = strings.Repeat("a", 501)
	err = Struct(&review)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content must be at most 500 characters")
}

func TestNotFutureUsesClock(t *testing.T) {
	restore := now
	t.Cleanup(func() { now = restore })
	now = func() time.Time { return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC) }

	user := validUser()
	user.Birthday = models.NewDate(2000, 1, 2)
	assert.Error(t, Struct(&user))

	user.Birthday = models.NewDate(2000, 1, 1)
	assert.NoError(t, Struct(&user))
}
