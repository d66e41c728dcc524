package service

import (
	"context"

	"filmorate/internal/models"
	"filmorate/internal/repository"
	"filmorate/internal/validation"
)

const defaultReviewCount = 10

// ReviewService provides review and review vote business logic.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
	filmRepo   repository.FilmRepository
	feed       *FeedService
}

// NewReviewService returns a new ReviewService.
func NewReviewService(reviewRepo repository.ReviewRepository, userRepo repository.UserRepository, filmRepo repository.FilmRepository, feed *FeedService) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		filmRepo:   filmRepo,
		feed:       feed,
	}
}

// CreateReview stores a review with zero usefulness.
func (s *ReviewService) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := validation.Struct(review); err != nil {
		return nil, err
	}
	if err := ensureUser(ctx, s.userRepo, review.UserID); err != nil {
		return nil, err
	}
	if err := ensureFilm(ctx, s.filmRepo, review.FilmID); err != nil {
		return nil, err
	}
	created, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		return nil, err
	}
	if err := s.feed.Record(ctx, created.UserID, models.EventReview, models.OperationAdd, created.ID); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateReview changes the content and polarity of a review. Author, film and
// usefulness are kept.
func (s *ReviewService) UpdateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.ID <= 0 {
		return nil, models.NewValidationError("reviewId is required")
	}
	existing, err := s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	review.UserID = existing.UserID
	review.FilmID = existing.FilmID
	if err := validation.Struct(review); err != nil {
		return nil, err
	}
	updated, err := s.reviewRepo.Update(ctx, review)
	if err != nil {
		return nil, err
	}
	if err := s.feed.Record(ctx, existing.UserID, models.EventReview, models.OperationUpdate, existing.ID); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteReview removes a review and its votes.
func (s *ReviewService) DeleteReview(ctx context.Context, id int64) error {
	existing, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.feed.Record(ctx, existing.UserID, models.EventReview, models.OperationRemove, existing.ID)
}

// GetReview returns a review by id.
func (s *ReviewService) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	return s.reviewRepo.GetByID(ctx, id)
}

// ListReviews returns the most useful reviews, for one film when filmID is set.
// A nil count means 10.
func (s *ReviewService) ListReviews(ctx context.Context, filmID *int64, count *int) ([]models.Review, error) {
	limit := defaultReviewCount
	if count != nil {
		if *count <= 0 {
			return nil, models.NewValidationError("count must be positive")
		}
		limit = *count
	}
	if filmID != nil {
		if err := ensureFilm(ctx, s.filmRepo, *filmID); err != nil {
			return nil, err
		}
	}
	return s.reviewRepo.List(ctx, filmID, limit)
}

// AddVote records userID's like (isLike) or dislike of a review.
func (s *ReviewService) AddVote(ctx context.Context, reviewID, userID int64, isLike bool) (*models.Review, error) {
	if err := s.checkVote(ctx, reviewID, userID); err != nil {
		return nil, err
	}
	return s.reviewRepo.AddVote(ctx, reviewID, userID, isLike)
}

// RemoveVote withdraws userID's like (isLike) or dislike of a review.
func (s *ReviewService) RemoveVote(ctx context.Context, reviewID, userID int64, isLike bool) (*models.Review, error) {
	if err := s.checkVote(ctx, reviewID, userID); err != nil {
		return nil, err
	}
	return s.reviewRepo.RemoveVote(ctx, reviewID, userID, isLike)
}

// checkVote requires an existing review and voter. Authors cannot vote on
// their own reviews.
func (s *ReviewService) checkVote(ctx context.Context, reviewID, userID int64) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID == userID {
		return models.NewValidationError("authors cannot vote on their own review")
	}
	return ensureUser(ctx, s.userRepo, userID)
}
