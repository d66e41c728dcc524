package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"filmorate/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	err := n.PublishEvent(context.Background(), &models.Event{UserID: 1, EventType: models.EventLike})
	assert.NoError(t, err)
	assert.NoError(t, n.StartFeedSubscriber(context.Background(), func(int64, string) {}))
}

func TestFeedChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		channel string
		userID  int64
		ok      bool
	}{
		{FeedChannel(1), 1, true},
		{FeedChannel(100), 100, true},
		{"feed:user:abc", 0, false},
		{"feed:user:0", 0, false},
		{"notifications:user:5", 0, false},
	}

	for _, tt := range tests {
		userID, ok := ParseFeedChannel(tt.channel)
		assert.Equal(t, tt.ok, ok, tt.channel)
		assert.Equal(t, tt.userID, userID, tt.channel)
	}
	assert.Equal(t, "feed:user:42", FeedChannel(42))
}

func TestFeedHub_StartWiringDeliversPublishedEvents(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	n := NewNotifier(rdb)
	hub := NewFeedHub()
	t.Cleanup(func() { _ = hub.Shutdown(context.Background()) })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, hub.StartWiring(ctx, n))

	watcher, err := hub.Register(5, nil)
	require.NoError(t, err)
	bystander, err := hub.Register(6, nil)
	require.NoError(t, err)

	event := &models.Event{
		ID: 11, UserID: 5, EventType: models.EventFriend, Operation: models.OperationAdd, EntityID: 6, Timestamp: 1700000000000,
	}
	require.NoError(t, n.PublishEvent(context.Background(), event))

	select {
	case payload := <-watcher.Send:
		var got models.Event
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, *event, got)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
	assert.Never(t, func() bool { return len(bystander.Send) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}
