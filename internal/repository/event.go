package repository

import (
	"context"
	"time"

	"filmorate/internal/models"

	"gorm.io/gorm"
)

// EventRepository appends and reads user feed events.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	ForUser(ctx context.Context, userID int64) ([]models.Event, error)
}

type eventRepository struct {
	*BaseRepository[models.Event]
	now func() time.Time
}

// NewEventRepository returns a new EventRepository implementation.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{
		BaseRepository: NewBaseRepository(db, "Event", decodeEvent, func(e models.Event) int64 { return e.ID }),
		now:            time.Now,
	}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	created := r.now().UTC().Truncate(time.Millisecond)
	id, err := r.Insert(ctx,
		`INSERT INTO events (user_id, event_type, operation, entity_id, created_at) VALUES (?, ?, ?, ?, ?) RETURNING event_id`,
		event.UserID, string(event.EventType), string(event.Operation), event.EntityID, created)
	if err != nil {
		return nil, err
	}
	out := *event
	out.ID = id
	out.Timestamp = created.UnixMilli()
	return &out, nil
}

// ForUser returns the user's events in the order they happened.
func (r *eventRepository) ForUser(ctx context.Context, userID int64) ([]models.Event, error) {
	return r.FindMany(ctx, `SELECT event_id, user_id, event_type, operation, entity_id, created_at
FROM events WHERE user_id = ? ORDER BY event_id ASC`, userID)
}
