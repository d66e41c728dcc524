package repository

import (
	"context"

	"filmorate/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines persistence operations for reviews and their votes.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) (*models.Review, error)
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	List(ctx context.Context, filmID *int64, count int) ([]models.Review, error)
	Delete(ctx context.Context, id int64) error
	AddVote(ctx context.Context, reviewID, userID int64, isLike bool) (*models.Review, error)
	RemoveVote(ctx context.Context, reviewID, userID int64, isLike bool) (*models.Review, error)
}

const reviewSelect = `SELECT review_id, content, is_positive, user_id, film_id, useful FROM reviews`

// recomputeUseful derives usefulness from the vote rows.
const recomputeUseful = `UPDATE reviews SET useful = (
	SELECT COALESCE(SUM(CASE WHEN is_like THEN 1 ELSE -1 END), 0) FROM review_likes WHERE review_id = ?
) WHERE review_id = ?`

type reviewRepository struct {
	*BaseRepository[models.Review]
}

// NewReviewRepository returns a new ReviewRepository implementation.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{
		BaseRepository: NewBaseRepository(db, "Review", decodeReview, func(r models.Review) int64 { return r.ID }),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	id, err := r.Insert(ctx,
		`INSERT INTO reviews (content, is_positive, user_id, film_id, useful) VALUES (?, ?, ?, ?, 0) RETURNING review_id`,
		review.Content, *review.IsPositive, review.UserID, review.FilmID)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update changes content and polarity only; author, film and usefulness are fixed.
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	updated, err := r.BaseRepository.Update(ctx,
		`UPDATE reviews SET content = ?, is_positive = ? WHERE review_id = ?`,
		review.Content, *review.IsPositive, review.ID)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, models.NewNotFoundError("Review", review.ID)
	}
	return r.GetByID(ctx, review.ID)
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	review, err := r.FindOne(ctx, reviewSelect+` WHERE review_id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// List returns up to count reviews, most useful first, optionally for one film.
func (r *reviewRepository) List(ctx context.Context, filmID *int64, count int) ([]models.Review, error) {
	if filmID != nil {
		return r.FindMany(ctx, reviewSelect+` WHERE film_id = ? ORDER BY useful DESC, review_id ASC LIMIT ?`, *filmID, count)
	}
	return r.FindMany(ctx, reviewSelect+` ORDER BY useful DESC, review_id ASC LIMIT ?`, count)
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	deleted, err := r.BaseRepository.Delete(ctx, `DELETE FROM reviews WHERE review_id = ?`, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Review", id)
	}
	return nil
}

// AddVote records a like or dislike and recomputes usefulness in one transaction.
func (r *reviewRepository) AddVote(ctx context.Context, reviewID, userID int64, isLike bool) (*models.Review, error) {
	return r.vote(ctx, reviewID,
		`INSERT INTO review_likes (review_id, user_id, is_like) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`,
		reviewID, userID, isLike)
}

// RemoveVote drops a like or dislike and recomputes usefulness in one transaction.
func (r *reviewRepository) RemoveVote(ctx context.Context, reviewID, userID int64, isLike bool) (*models.Review, error) {
	return r.vote(ctx, reviewID,
		`DELETE FROM review_likes WHERE review_id = ? AND user_id = ? AND is_like = ?`,
		reviewID, userID, isLike)
}

func (r *reviewRepository) vote(ctx context.Context, reviewID int64, stmt string, args ...any) (*models.Review, error) {
	var review models.Review
	err := r.Transaction(ctx, func(tx *BaseRepository[models.Review]) error {
		if _, err := tx.Exec(ctx, stmt, args...); err != nil {
			return err
		}
		updated, err := tx.Update(ctx, recomputeUseful, reviewID, reviewID)
		if err != nil {
			return err
		}
		if !updated {
			return models.NewNotFoundError("Review", reviewID)
		}
		review, err = tx.FindOne(ctx, reviewSelect+` WHERE review_id = ?`, reviewID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}
