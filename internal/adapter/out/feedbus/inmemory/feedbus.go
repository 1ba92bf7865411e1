package inmemory

import (
	"context"
	"sync"

	"socialfeed/internal/model"

	"github.com/google/uuid"
)

const DefaultBuffer = 64

// FeedBus fans post change events out to every subscriber of the one
// feed channel. Delivery is fire-and-forget: a subscriber with a full
// buffer misses the event, and events published before a subscriber
// connects are not replayed.
type FeedBus struct {
	mu   sync.RWMutex
	subs map[string]chan model.FeedEvent
	buf  int
}

func New(buf int) *FeedBus {
	if buf <= 0 {
		buf = DefaultBuffer
	}
	return &FeedBus{
		subs: make(map[string]chan model.FeedEvent),
		buf:  buf,
	}
}

func (b *FeedBus) Subscribe(ctx context.Context) (<-chan model.FeedEvent, error) {
	id := uuid.NewString()
	ch := make(chan model.FeedEvent, b.buf)

	b.mu.Lock()
	b.subs[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

func (b *FeedBus) Publish(_ context.Context, ev model.FeedEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}
