package service

import (
	"context"

	"filmorate/internal/models"
	"filmorate/internal/repository"
)

// RecommendationService suggests films through the user with the most
// overlapping likes.
type RecommendationService struct {
	userRepo repository.UserRepository
	likeRepo repository.LikeRepository
	filmRepo repository.FilmRepository
}

// NewRecommendationService returns a new RecommendationService.
func NewRecommendationService(userRepo repository.UserRepository, likeRepo repository.LikeRepository, filmRepo repository.FilmRepository) *RecommendationService {
	return &RecommendationService{
		userRepo: userRepo,
		likeRepo: likeRepo,
		filmRepo: filmRepo,
	}
}

// GetRecommendations returns the films liked by userID's most similar user
// that userID has not liked yet, in the order the similar user liked them.
func (s *RecommendationService) GetRecommendations(ctx context.Context, userID int64) ([]models.Film, error) {
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	similarID, ok, err := s.likeRepo.MostSimilarUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Film{}, nil
	}

	candidates, err := s.filmRepo.LikedBy(ctx, similarID)
	if err != nil {
		return nil, err
	}
	liked, err := s.likeRepo.FilmIDsLikedBy(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(liked))
	for _, id := range liked {
		seen[id] = struct{}{}
	}
	out := make([]models.Film, 0, len(candidates))
	for _, film := range candidates {
		if _, ok := seen[film.ID]; ok {
			continue
		}
		out = append(out, film)
	}
	return out, nil
}
