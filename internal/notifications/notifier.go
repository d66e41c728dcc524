// Package notifications delivers feed events to live websocket subscribers
// through Redis pub/sub.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"

	"filmorate/internal/middleware"
	"filmorate/internal/models"
	"filmorate/internal/observability"

	"github.com/redis/go-redis/v9"
)

const feedChannelPrefix = "feed:user:"

// Notifier publishes feed events into per-user Redis channels.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishEvent sends an event to the channel of the user who caused it.
// Without Redis it is a no-op.
func (n *Notifier) PublishEvent(ctx context.Context, event *models.Event) error {
	if n == nil || n.rdb == nil {
		observability.FeedEventsPublished.WithLabelValues(string(event.EventType), "skipped").Inc()
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := n.rdb.Publish(ctx, FeedChannel(event.UserID), payload).Err(); err != nil {
		observability.FeedEventsPublished.WithLabelValues(string(event.EventType), "error").Inc()
		return err
	}
	observability.FeedEventsPublished.WithLabelValues(string(event.EventType), "ok").Inc()
	return nil
}

// StartFeedSubscriber subscribes to every user feed channel and calls onMessage
// with the owning user id and raw payload until ctx is cancelled.
func (n *Notifier) StartFeedSubscriber(ctx context.Context, onMessage func(userID int64, payload string)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, feedChannelPrefix+"*")
	// Wait for the subscription so publishes made right after start are not lost.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return err
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				userID, ok := ParseFeedChannel(msg.Channel)
				if !ok {
					middleware.Logger.Warn("invalid feed channel", "channel", msg.Channel)
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in feed subscriber", "panic", r, "stack", string(debug.Stack()))
						}
					}()
					onMessage(userID, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// FeedChannel derives the Redis channel name for a user's feed.
func FeedChannel(userID int64) string {
	return feedChannelPrefix + strconv.FormatInt(userID, 10)
}

// ParseFeedChannel extracts the user id from a feed channel name.
func ParseFeedChannel(channel string) (int64, bool) {
	raw, ok := strings.CutPrefix(channel, feedChannelPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
