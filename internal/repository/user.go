package repository

import (
	"context"

	"filmorate/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

const userSelect = `SELECT u.user_id, u.email, u.login, u.name, u.birthday FROM users AS u`

type userRepository struct {
	*BaseRepository[models.User]
	ids *BaseRepository[int64]
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository(db, "User", decodeUser, userID),
		ids:            NewBaseRepository(db, "User", decodeID, nil),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	id, err := r.Insert(ctx,
		`INSERT INTO users (email, login, name, birthday) VALUES (?, ?, ?, ?) RETURNING user_id`,
		user.Email, user.Login, user.Name, user.Birthday)
	if err != nil {
		return nil, err
	}
	created := *user
	created.ID = id
	return &created, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	updated, err := r.BaseRepository.Update(ctx,
		`UPDATE users SET email = ?, login = ?, name = ?, birthday = ? WHERE user_id = ?`,
		user.Email, user.Login, user.Name, user.Birthday, user.ID)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, models.NewNotFoundError("User", user.ID)
	}
	return r.GetByID(ctx, user.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := r.FindOne(ctx, userSelect+` WHERE u.user_id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	return r.FindMany(ctx, userSelect+` ORDER BY u.user_id`)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	deleted, err := r.BaseRepository.Delete(ctx, `DELETE FROM users WHERE user_id = ?`, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("User", id)
	}
	return nil
}

func (r *userRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ids, err := r.ids.FindMany(ctx, `SELECT user_id FROM users WHERE user_id = ?`, id)
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}
