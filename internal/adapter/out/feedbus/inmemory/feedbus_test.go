package inmemory

import (
	"context"
	"testing"
	"time"

	"socialfeed/internal/model"

	"github.com/stretchr/testify/require"
)

func TestFeedBus_PublishReachesAllSubscribers(t *testing.T) {
	t.Parallel()

	bus := New(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := bus.Subscribe(ctx)
	require.NoError(t, err)
	second, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	post := model.Post{ID: 1, Title: "A"}
	ev := model.FeedEvent{
		Action:  model.FeedActionCreate,
		Post:    &post,
		Creator: &model.Creator{ID: 1, Name: "u1"},
	}
	require.NoError(t, bus.Publish(context.Background(), ev))

	for _, ch := range []<-chan model.FeedEvent{first, second} {
		select {
		case got := <-ch:
			require.Equal(t, ev, got)
		case <-time.After(time.Second):
			t.Fatal("no event delivered")
		}
	}
}

func TestFeedBus_PublishWithoutSubscribersIsNoop(t *testing.T) {
	t.Parallel()

	bus := New(0)
	require.NoError(t, bus.Publish(context.Background(), model.FeedEvent{
		Action: model.FeedActionDelete,
		PostID: 9,
	}))
}

func TestFeedBus_FullSubscriberDoesNotBlockPublish(t *testing.T) {
	t.Parallel()

	bus := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			_ = bus.Publish(context.Background(), model.FeedEvent{Action: model.FeedActionDelete, PostID: int64(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}

func TestFeedBus_UnsubscribeOnContextDone(t *testing.T) {
	t.Parallel()

	bus := New(1)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-ch:
		require.False(t, open, "channel should be closed after unsubscribe")
	case <-time.After(time.Second):
		t.Fatal("channel not closed after context cancel")
	}
}
