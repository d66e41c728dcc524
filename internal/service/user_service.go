package service

import (
	"context"
	"strings"

	"filmorate/internal/models"
	"filmorate/internal/repository"
	"filmorate/internal/validation"
)

// UserService provides user and friendship business logic.
type UserService struct {
	userRepo   repository.UserRepository
	friendRepo repository.FriendRepository
	feed       *FeedService
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, friendRepo repository.FriendRepository, feed *FeedService) *UserService {
	return &UserService{
		userRepo:   userRepo,
		friendRepo: friendRepo,
		feed:       feed,
	}
}

// CreateUser validates and stores a new user. A blank name becomes the login.
func (s *UserService) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := prepareUser(user); err != nil {
		return nil, err
	}
	return s.userRepo.Create(ctx, user)
}

// UpdateUser replaces every field of an existing user.
func (s *UserService) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID <= 0 {
		return nil, models.NewValidationError("id is required")
	}
	if err := prepareUser(user); err != nil {
		return nil, err
	}
	return s.userRepo.Update(ctx, user)
}

func prepareUser(user *models.User) error {
	if err := validation.Struct(user); err != nil {
		return err
	}
	if strings.TrimSpace(user.Name) == "" {
		user.Name = user.Login
	}
	return nil
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers returns all users ordered by id.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// DeleteUser removes a user together with their friendships, likes, reviews and events.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}

// AddFriend records that userID follows friendID. Repeating it is not an error.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID int64) error {
	if err := s.checkPair(ctx, userID, friendID); err != nil {
		return err
	}
	if err := s.friendRepo.Add(ctx, userID, friendID); err != nil {
		return err
	}
	return s.feed.Record(ctx, userID, models.EventFriend, models.OperationAdd, friendID)
}

// RemoveFriend drops the userID -> friendID edge if present.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if err := s.checkPair(ctx, userID, friendID); err != nil {
		return err
	}
	if _, err := s.friendRepo.Remove(ctx, userID, friendID); err != nil {
		return err
	}
	return s.feed.Record(ctx, userID, models.EventFriend, models.OperationRemove, friendID)
}

func (s *UserService) checkPair(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return models.NewValidationError("a user cannot befriend themselves")
	}
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return err
	}
	return ensureUser(ctx, s.userRepo, friendID)
}

// GetFriends returns the users userID has added as friends.
func (s *UserService) GetFriends(ctx context.Context, userID int64) ([]models.User, error) {
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	return s.friendRepo.Friends(ctx, userID)
}

// GetCommonFriends returns the friends userID and otherID have in common.
func (s *UserService) GetCommonFriends(ctx context.Context, userID, otherID int64) ([]models.User, error) {
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	if err := ensureUser(ctx, s.userRepo, otherID); err != nil {
		return nil, err
	}
	return s.friendRepo.CommonFriends(ctx, userID, otherID)
}
