package service

import (
	"context"

	"filmorate/internal/models"
	"filmorate/internal/repository"
)

// LookupService serves the seeded genre and MPA rating catalogues.
type LookupService struct {
	genreRepo repository.GenreRepository
	mpaRepo   repository.MpaRepository
}

// NewLookupService returns a new LookupService.
func NewLookupService(genreRepo repository.GenreRepository, mpaRepo repository.MpaRepository) *LookupService {
	return &LookupService{genreRepo: genreRepo, mpaRepo: mpaRepo}
}

func (s *LookupService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return s.genreRepo.List(ctx)
}

func (s *LookupService) GetGenre(ctx context.Context, id int64) (*models.Genre, error) {
	return s.genreRepo.GetByID(ctx, id)
}

func (s *LookupService) ListMpa(ctx context.Context) ([]models.Mpa, error) {
	return s.mpaRepo.List(ctx)
}

func (s *LookupService) GetMpa(ctx context.Context, id int64) (*models.Mpa, error) {
	return s.mpaRepo.GetByID(ctx, id)
}
