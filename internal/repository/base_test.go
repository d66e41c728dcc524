package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"filmorate/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

func newGenreBase(db *gorm.DB) *BaseRepository[models.Genre] {
	return NewBaseRepository(db, "Genre", decodeGenre, func(g models.Genre) int64 { return g.ID })
}

func TestBaseRepository_FindOne(t *testing.T) {
	ctx := context.Background()
	query := `SELECT genre_id, name FROM genres WHERE genre_id = ?`

	tests := []struct {
		name         string
		mockBehavior func(mock sqlmock.Sqlmock)
		wantCode     string
		wantName     string
	}{
		{
			name: "Success",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT genre_id, name FROM genres WHERE genre_id = $1`)).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"genre_id", "name"}).AddRow(1, "Комедия"))
			},
			wantName: "Комедия",
		},
		{
			name: "No rows",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT genre_id, name FROM genres WHERE genre_id = $1`)).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"genre_id", "name"}))
			},
			wantCode: models.CodeNotFound,
		},
		{
			name: "Driver failure surfaces as not found with cause",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT genre_id, name FROM genres WHERE genre_id = $1`)).
					WithArgs(1).
					WillReturnError(errors.New("connection reset"))
			},
			wantCode: models.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := newGenreBase(db)
			tt.mockBehavior(mock)

			genre, err := repo.FindOne(ctx, query, 1)
			if tt.wantCode != "" {
				require.Error(t, err)
				var appErr *models.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, tt.wantCode, appErr.Code)
				assert.Equal(t, "Genre with ID 1 not found", appErr.Message)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantName, genre.Name)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBaseRepository_FindOneKeepsCause(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newGenreBase(db)
	cause := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT genre_id, name FROM genres WHERE genre_id = $1`)).
		WithArgs(7).
		WillReturnError(cause)

	_, err := repo.FindOne(context.Background(), `SELECT genre_id, name FROM genres WHERE genre_id = ?`, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestBaseRepository_FindMany(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newGenreBase(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT genre_id, name FROM genres ORDER BY genre_id`)).
		WillReturnRows(sqlmock.NewRows([]string{"genre_id", "name"}))

	genres, err := repo.FindMany(ctx, `SELECT genre_id, name FROM genres ORDER BY genre_id`)
	require.NoError(t, err)
	assert.NotNil(t, genres)
	assert.Empty(t, genres)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT genre_id, name FROM genres ORDER BY genre_id`)).
		WillReturnError(errors.New("boom"))

	_, err = repo.FindMany(ctx, `SELECT genre_id, name FROM genres ORDER BY genre_id`)
	assert.True(t, models.HasCode(err, models.CodeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBaseRepository_StreamQueryDropsRepeatedIdentities(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := newGenreBase(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT genre_id, name FROM genres`)).
		WillReturnRows(sqlmock.NewRows([]string{"genre_id", "name"}).
			AddRow(3, "Мультфильм").
			AddRow(1, "Комедия").
			AddRow(3, "Мультфильм").
			AddRow(2, "Драма"))

	genres, err := repo.StreamQuery(context.Background(), `SELECT genre_id, name FROM genres`)
	require.NoError(t, err)
	require.Len(t, genres, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{genres[0].ID, genres[1].ID, genres[2].ID})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBaseRepository_Insert(t *testing.T) {
	ctx := context.Background()
	query := `INSERT INTO directors (name) VALUES (?) RETURNING director_id`
	expected := regexp.QuoteMeta(`INSERT INTO directors (name) VALUES ($1) RETURNING director_id`)

	t.Run("Returns generated key", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewBaseRepository(db, "Director", decodeDirector, nil)
		mock.ExpectQuery(expected).WithArgs("Murnau").
			WillReturnRows(sqlmock.NewRows([]string{"director_id"}).AddRow(42))

		id, err := repo.Insert(ctx, query, "Murnau")
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No generated key", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewBaseRepository(db, "Director", decodeDirector, nil)
		mock.ExpectQuery(expected).WithArgs("Murnau").
			WillReturnRows(sqlmock.NewRows([]string{"director_id"}))

		_, err := repo.Insert(ctx, query, "Murnau")
		assert.True(t, models.HasCode(err, models.CodePersistence))
	})

	t.Run("Unique violation is a validation error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewBaseRepository(db, "Director", decodeDirector, nil)
		mock.ExpectQuery(expected).WithArgs("Murnau").
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

		_, err := repo.Insert(ctx, query, "Murnau")
		assert.True(t, models.HasCode(err, models.CodeValidation))
	})

	t.Run("Foreign key violation is not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewBaseRepository(db, "Director", decodeDirector, nil)
		mock.ExpectQuery(expected).WithArgs("Murnau").
			WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})

		_, err := repo.Insert(ctx, query, "Murnau")
		assert.True(t, models.IsNotFound(err))
	})
}

func TestBaseRepository_UpdateAndDelete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBaseRepository(db, "Director", decodeDirector, nil)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE directors SET name = $1 WHERE director_id = $2`)).
		WithArgs("Lang", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM directors WHERE director_id = $1`)).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := repo.Update(ctx, `UPDATE directors SET name = ? WHERE director_id = ?`, "Lang", 1)
	require.NoError(t, err)
	assert.True(t, updated)

	deleted, err := repo.Delete(ctx, `DELETE FROM directors WHERE director_id = ?`, 9)
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBaseRepository_BatchInsert(t *testing.T) {
	ctx := context.Background()
	prefix := `INSERT INTO genres_save (film_id, genre_id)`
	genreIDs := []int64{1, 4}
	binder := func(i int) []any { return []any{int64(10), genreIDs[i]} }

	t.Run("Single round trip", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewBaseRepository[filmGenre](db, "FilmGenre", decodeFilmGenre, nil)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO genres_save (film_id, genre_id) VALUES ($1, $2), ($3, $4)`)).
			WithArgs(10, 1, 10, 4).
			WillReturnResult(sqlmock.NewResult(0, 2))

		affected, err := repo.BatchInsert(ctx, prefix, len(genreIDs), binder)
		require.NoError(t, err)
		assert.Equal(t, int64(2), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Zero rows is a no-op", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewBaseRepository[filmGenre](db, "FilmGenre", decodeFilmGenre, nil)

		affected, err := repo.BatchInsert(ctx, prefix, 0, binder)
		require.NoError(t, err)
		assert.Zero(t, affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nothing affected", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewBaseRepository[filmGenre](db, "FilmGenre", decodeFilmGenre, nil)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO genres_save`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.BatchInsert(ctx, prefix, len(genreIDs), binder)
		assert.True(t, models.IsNotFound(err))
	})
}

func TestBaseRepository_TransactionRollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBaseRepository(db, "Review", decodeReview, nil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM review_likes`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	sentinel := errors.New("stop")
	err := repo.Transaction(context.Background(), func(tx *BaseRepository[models.Review]) error {
		if _, err := tx.Exec(context.Background(), `DELETE FROM review_likes`); err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}
