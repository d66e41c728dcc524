package service

import (
	"context"

	"filmorate/internal/middleware"
	"filmorate/internal/models"
	"filmorate/internal/repository"
)

// EventPublisher pushes a stored event to live subscribers.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *models.Event) error
}

// FeedService records user activity events and reads them back as a feed.
type FeedService struct {
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	publisher EventPublisher
}

// NewFeedService returns a new FeedService. publisher may be nil.
func NewFeedService(eventRepo repository.EventRepository, userRepo repository.UserRepository, publisher EventPublisher) *FeedService {
	return &FeedService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// Record appends an event to userID's feed and publishes it. A failed publish
// is logged and does not fail the write that caused the event.
func (s *FeedService) Record(ctx context.Context, userID int64, eventType models.EventType, op models.Operation, entityID int64) error {
	event, err := s.eventRepo.Create(ctx, &models.Event{
		UserID:    userID,
		EventType: eventType,
		Operation: op,
		EntityID:  entityID,
	})
	if err != nil {
		return err
	}
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish feed event",
			"event_id", event.ID, "user_id", userID, "error", err)
	}
	return nil
}

// GetFeed returns userID's events oldest first.
func (s *FeedService) GetFeed(ctx context.Context, userID int64) ([]models.Event, error) {
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	return s.eventRepo.ForUser(ctx, userID)
}

// EnsureUser reports NotFound when userID does not exist.
func (s *FeedService) EnsureUser(ctx context.Context, userID int64) error {
	return ensureUser(ctx, s.userRepo, userID)
}

func ensureUser(ctx context.Context, repo repository.UserRepository, id int64) error {
	exists, err := repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("User", id)
	}
	return nil
}

func ensureFilm(ctx context.Context, repo repository.FilmRepository, id int64) error {
	exists, err := repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Film", id)
	}
	return nil
}
