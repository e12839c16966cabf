package notifications

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_PublishWithoutRedis(t *testing.T) {
	n := NewNotifier(nil)

	var got []Event
	n.Subscribe(func(ev Event) { got = append(got, ev) })

	require.NoError(t, n.Publish(context.Background(), Event{Type: EventPostsChanged, PostID: "p_1"}))
	require.Len(t, got, 1)
	assert.Equal(t, EventPostsChanged, got[0].Type)
	assert.False(t, got[0].At.IsZero())
}

func TestNotifier_SubscribersRunInOrderAndSurvivePanics(t *testing.T) {
	n := NewNotifier(nil)

	var order []int
	n.Subscribe(func(Event) { order = append(order, 1) })
	n.Subscribe(func(Event) { panic("boom") })
	unsubscribe := n.Subscribe(func(Event) { order = append(order, 3) })

	require.NoError(t, n.Publish(context.Background(), Event{Type: EventSessionChanged}))
	assert.Equal(t, []int{1, 3}, order)

	unsubscribe()
	require.NoError(t, n.Publish(context.Background(), Event{Type: EventSessionChanged}))
	assert.Equal(t, []int{1, 3, 1}, order)
}

func TestNotifier_MirrorsToRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	ctx := context.Background()
	sub := rdb.Subscribe(ctx, EventsChannel)
	defer func() { _ = sub.Close() }()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	n := NewNotifier(rdb)
	require.NoError(t, n.Publish(ctx, Event{Type: EventProfileChanged, UserID: "u_1"}))

	select {
	case msg := <-sub.Channel():
		var ev Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
		assert.Equal(t, EventProfileChanged, ev.Type)
		assert.Equal(t, "u_1", ev.UserID)
	case <-time.After(time.Second):
		t.Fatal("event was not mirrored to redis")
	}
}

func TestNotifier_StartSubscriber_StopsOnCancel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var received int32
	require.NoError(t, n.StartSubscriber(ctx, func(ev Event) {
		if ev.Type == EventPostsChanged {
			atomic.AddInt32(&received, 1)
		}
	}))

	require.NoError(t, n.Publish(context.Background(), Event{Type: EventPostsChanged}))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&received) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, n.Publish(context.Background(), Event{Type: EventPostsChanged}))
	assert.Never(t, func() bool {
		return atomic.LoadInt32(&received) > 1
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestNotifier_StartSubscriberWithoutRedis(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.StartSubscriber(context.Background(), func(Event) {}))
}
