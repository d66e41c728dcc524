package models

import "time"

// EventType is the kind of entity an event refers to.
type EventType string

// Operation is what happened to the entity.
type Operation string

const (
	EventLike   EventType = "LIKE"
	EventReview EventType = "REVIEW"
	EventFriend EventType = "FRIEND"

	OperationAdd    Operation = "ADD"
	OperationRemove Operation = "REMOVE"
	OperationUpdate Operation = "UPDATE"
)

// Event is an append-only feed record of a user's action.
type Event struct {
	ID        int64     `json:"eventId"`
	UserID    int64     `json:"userId"`
	EventType EventType `json:"eventType"`
	Operation Operation `json:"operation"`
	EntityID  int64     `json:"entityId"`
	// Timestamp is epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// CreatedAt returns the event time.
func (e *Event) CreatedAt() time.Time {
	return time.UnixMilli(e.Timestamp).UTC()
}
