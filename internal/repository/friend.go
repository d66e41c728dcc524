package repository

import (
	"context"

	"filmorate/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines persistence operations for directed friendship edges.
type FriendRepository interface {
	Add(ctx context.Context, userID, friendID int64) error
	Remove(ctx context.Context, userID, friendID int64) (bool, error)
	Friends(ctx context.Context, userID int64) ([]models.User, error)
	CommonFriends(ctx context.Context, userID, otherID int64) ([]models.User, error)
}

type friendRepository struct {
	*BaseRepository[models.User]
}

// NewFriendRepository returns a new FriendRepository implementation.
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{
		BaseRepository: NewBaseRepository(db, "Friend", decodeUser, userID),
	}
}

// Add records userID -> friendID. An existing edge is left untouched.
func (r *friendRepository) Add(ctx context.Context, userID, friendID int64) error {
	_, err := r.Exec(ctx,
		`INSERT INTO friends_list (user_id, friend_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		userID, friendID)
	return err
}

func (r *friendRepository) Remove(ctx context.Context, userID, friendID int64) (bool, error) {
	return r.Delete(ctx, `DELETE FROM friends_list WHERE user_id = ? AND friend_id = ?`, userID, friendID)
}

func (r *friendRepository) Friends(ctx context.Context, userID int64) ([]models.User, error) {
	return r.FindMany(ctx, userSelect+`
WHERE u.user_id IN (SELECT friend_id FROM friends_list WHERE user_id = ?)
ORDER BY u.user_id`, userID)
}

func (r *friendRepository) CommonFriends(ctx context.Context, userID, otherID int64) ([]models.User, error) {
	return r.FindMany(ctx, userSelect+`
WHERE u.user_id IN (SELECT friend_id FROM friends_list WHERE user_id = ?)
AND u.user_id IN (SELECT friend_id FROM friends_list WHERE user_id = ?)
ORDER BY u.user_id`, userID, otherID)
}
