package repository

import (
	"context"

	"filmorate/internal/models"

	"gorm.io/gorm"
)

// DirectorRepository defines persistence operations for directors.
type DirectorRepository interface {
	Create(ctx context.Context, director *models.Director) (*models.Director, error)
	Update(ctx context.Context, director *models.Director) (*models.Director, error)
	GetByID(ctx context.Context, id int64) (*models.Director, error)
	List(ctx context.Context) ([]models.Director, error)
	Delete(ctx context.Context, id int64) error
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type directorRepository struct {
	*BaseRepository[models.Director]
	ids *BaseRepository[int64]
}

// NewDirectorRepository returns a new DirectorRepository implementation.
func NewDirectorRepository(db *gorm.DB) DirectorRepository {
	return &directorRepository{
		BaseRepository: NewBaseRepository(db, "Director", decodeDirector, func(d models.Director) int64 { return d.ID }),
		ids:            NewBaseRepository(db, "Director", decodeID, nil),
	}
}

func (r *directorRepository) Create(ctx context.Context, director *models.Director) (*models.Director, error) {
	id, err := r.Insert(ctx, `INSERT INTO directors (name) VALUES (?) RETURNING director_id`, director.Name)
	if err != nil {
		return nil, err
	}
	return &models.Director{ID: id, Name: director.Name}, nil
}

func (r *directorRepository) Update(ctx context.Context, director *models.Director) (*models.Director, error) {
	updated, err := r.BaseRepository.Update(ctx, `UPDATE directors SET name = ? WHERE director_id = ?`, director.Name, director.ID)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, models.NewNotFoundError("Director", director.ID)
	}
	return &models.Director{ID: director.ID, Name: director.Name}, nil
}

func (r *directorRepository) GetByID(ctx context.Context, id int64) (*models.Director, error) {
	director, err := r.FindOne(ctx, `SELECT director_id, name FROM directors WHERE director_id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &director, nil
}

func (r *directorRepository) List(ctx context.Context) ([]models.Director, error) {
	return r.FindMany(ctx, `SELECT director_id, name FROM directors ORDER BY director_id`)
}

func (r *directorRepository) Delete(ctx context.Context, id int64) error {
	deleted, err := r.BaseRepository.Delete(ctx, `DELETE FROM directors WHERE director_id = ?`, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Director", id)
	}
	return nil
}

// ExistingIDs returns the subset of ids that name a director.
func (r *directorRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}
	return r.ids.FindMany(ctx, `SELECT director_id FROM directors WHERE director_id IN ? ORDER BY director_id`, ids)
}
