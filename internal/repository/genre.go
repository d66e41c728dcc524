package repository

import (
	"context"

	"filmorate/internal/models"

	"gorm.io/gorm"
)

// GenreRepository reads the seeded genre lookup table.
type GenreRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Genre, error)
	List(ctx context.Context) ([]models.Genre, error)
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type genreRepository struct {
	*BaseRepository[models.Genre]
	ids *BaseRepository[int64]
}

// NewGenreRepository returns a new GenreRepository implementation.
func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{
		BaseRepository: NewBaseRepository(db, "Genre", decodeGenre, func(g models.Genre) int64 { return g.ID }),
		ids:            NewBaseRepository(db, "Genre", decodeID, nil),
	}
}

func (r *genreRepository) GetByID(ctx context.Context, id int64) (*models.Genre, error) {
	genre, err := r.FindOne(ctx, `SELECT genre_id, name FROM genres WHERE genre_id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) List(ctx context.Context) ([]models.Genre, error) {
	return r.FindMany(ctx, `SELECT genre_id, name FROM genres ORDER BY genre_id`)
}

// ExistingIDs returns the subset of ids that name a genre.
func (r *genreRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}
	return r.ids.FindMany(ctx, `SELECT genre_id FROM genres WHERE genre_id IN ? ORDER BY genre_id`, ids)
}
