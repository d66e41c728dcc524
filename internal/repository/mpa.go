package repository

import (
	"context"

	"filmorate/internal/models"

	"gorm.io/gorm"
)

// MpaRepository reads the seeded MPA rating lookup table.
type MpaRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Mpa, error)
	List(ctx context.Context) ([]models.Mpa, error)
}

type mpaRepository struct {
	*BaseRepository[models.Mpa]
}

// NewMpaRepository returns a new MpaRepository implementation.
func NewMpaRepository(db *gorm.DB) MpaRepository {
	return &mpaRepository{
		BaseRepository: NewBaseRepository(db, "Mpa", decodeMpa, func(m models.Mpa) int64 { return m.ID }),
	}
}

func (r *mpaRepository) GetByID(ctx context.Context, id int64) (*models.Mpa, error) {
	mpa, err := r.FindOne(ctx, `SELECT rating_id, name FROM rating WHERE rating_id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &mpa, nil
}

func (r *mpaRepository) List(ctx context.Context) ([]models.Mpa, error) {
	return r.FindMany(ctx, `SELECT rating_id, name FROM rating ORDER BY rating_id`)
}
