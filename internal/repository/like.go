package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for film like edges and the
// like-overlap queries recommendations are built on.
type LikeRepository interface {
	Add(ctx context.Context, filmID, userID int64) error
	Remove(ctx context.Context, filmID, userID int64) (bool, error)
	FilmIDsLikedBy(ctx context.Context, userID int64) ([]int64, error)
	MostSimilarUser(ctx context.Context, userID int64) (int64, bool, error)
}

type likeRepository struct {
	*BaseRepository[filmLike]
	ids        *BaseRepository[int64]
	similarity *BaseRepository[similarity]
	now        func() time.Time
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{
		BaseRepository: NewBaseRepository[filmLike](db, "Like", decodeFilmLike, nil),
		ids:            NewBaseRepository(db, "Like", decodeID, nil),
		similarity:     NewBaseRepository[similarity](db, "Like", decodeSimilarity, nil),
		now:            time.Now,
	}
}

// Add records that userID likes filmID. Liking twice keeps the first like.
func (r *likeRepository) Add(ctx context.Context, filmID, userID int64) error {
	_, err := r.Exec(ctx,
		`INSERT INTO like_list (film_id, user_id, created_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`,
		filmID, userID, r.now().UTC())
	return err
}

func (r *likeRepository) Remove(ctx context.Context, filmID, userID int64) (bool, error) {
	return r.Delete(ctx, `DELETE FROM like_list WHERE film_id = ? AND user_id = ?`, filmID, userID)
}

func (r *likeRepository) FilmIDsLikedBy(ctx context.Context, userID int64) ([]int64, error) {
	return r.ids.FindMany(ctx, `SELECT film_id FROM like_list WHERE user_id = ? ORDER BY film_id`, userID)
}

// MostSimilarUser returns the user sharing the most liked films with userID,
// lowest user id first on ties. ok is false when nobody shares a like.
func (r *likeRepository) MostSimilarUser(ctx context.Context, userID int64) (int64, bool, error) {
	rows, err := r.similarity.FindMany(ctx, `SELECT other.user_id, COUNT(*) AS overlap
FROM like_list AS mine
JOIN like_list AS other ON other.film_id = mine.film_id AND other.user_id <> mine.user_id
WHERE mine.user_id = ?
GROUP BY other.user_id
ORDER BY overlap DESC, other.user_id ASC
LIMIT 1`, userID)
	if err != nil {
		return 0, false, err
	}
	if len(rows) == 0 {
		return 0, false, nil
	}
	return rows[0].UserID, true, nil
}
