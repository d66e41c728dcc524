package service

import (
	"context"

	"filmorate/internal/models"
	"filmorate/internal/repository"
	"filmorate/internal/validation"
)

// DirectorService provides director CRUD.
type DirectorService struct {
	directorRepo repository.DirectorRepository
}

// NewDirectorService returns a new DirectorService.
func NewDirectorService(directorRepo repository.DirectorRepository) *DirectorService {
	return &DirectorService{directorRepo: directorRepo}
}

// CreateDirector validates and stores a new director.
func (s *DirectorService) CreateDirector(ctx context.Context, director *models.Director) (*models.Director, error) {
	if err := validation.Struct(director); err != nil {
		return nil, err
	}
	return s.directorRepo.Create(ctx, director)
}

// UpdateDirector replaces an existing director's name. The director must
// already exist.
func (s *DirectorService) UpdateDirector(ctx context.Context, director *models.Director) (*models.Director, error) {
	if director.ID <= 0 {
		return nil, models.NewValidationError("id is required")
	}
	if err := validation.Struct(director); err != nil {
		return nil, err
	}
	return s.directorRepo.Update(ctx, director)
}

// GetDirector returns a director by ID.
func (s *DirectorService) GetDirector(ctx context.Context, id int64) (*models.Director, error) {
	return s.directorRepo.GetByID(ctx, id)
}

// ListDirectors returns all directors ordered by ID.
func (s *DirectorService) ListDirectors(ctx context.Context) ([]models.Director, error) {
	return s.directorRepo.List(ctx)
}

// DeleteDirector removes a director and their film associations.
func (s *DirectorService) DeleteDirector(ctx context.Context, id int64) error {
	return s.directorRepo.Delete(ctx, id)
}
