package sync

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"goldconnect/api/internal/models"
)

// ChangeChannel is the redis pub/sub channel carrying message-log
// change signals between instances.
const ChangeChannel = "chat:changed"

type MessageLister interface {
	List(ctx context.Context) ([]models.Message, error)
}

// Hub maintains the live, time-ordered view of the shared message log
// and fans it out to subscribers. Every push carries the full current
// ordered set, never a delta, so interleaving with in-flight sends is
// harmless: the latest push always wins.
type Hub struct {
	lister MessageLister
	rdb    *redis.Client
	log    zerolog.Logger

	mu     sync.Mutex
	subs   map[uint64]chan []models.Message
	nextID uint64
}

func NewHub(lister MessageLister, rdb *redis.Client, log zerolog.Logger) *Hub {
	return &Hub{
		lister: lister,
		rdb:    rdb,
		log:    log,
		subs:   make(map[uint64]chan []models.Message),
	}
}

// Run listens for change signals until ctx is cancelled. Each signal
// re-queries the full ordered set and pushes it to every subscriber.
func (h *Hub) Run(ctx context.Context) error {
	if h.rdb == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	pubsub := h.rdb.Subscribe(ctx, ChangeChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			h.Refresh(ctx)
		}
	}
}

// Notify signals that the message log changed. With redis present the
// signal reaches every instance's Run loop; without it the refresh is
// local only.
func (h *Hub) Notify(ctx context.Context) {
	if h.rdb == nil {
		h.Refresh(ctx)
		return
	}
	if err := h.rdb.Publish(ctx, ChangeChannel, "changed").Err(); err != nil {
		h.log.Error().Err(err).Msg("publish change signal failed")
		// subscribers still get the update locally
		h.Refresh(ctx)
	}
}

// Refresh re-reads the full message set and pushes it to all
// subscribers.
func (h *Hub) Refresh(ctx context.Context) {
	messages, err := h.lister.List(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("list messages for refresh failed")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		push(ch, messages)
	}
}

// Subscribe registers a live view and primes it with the current set.
// The returned cancel func must be called exactly once when the
// consumer tears down; it is safe against double invocation.
func (h *Hub) Subscribe(ctx context.Context) (<-chan []models.Message, func(), error) {
	messages, err := h.lister.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan []models.Message, 1)
	ch <- messages

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			close(ch)
			h.mu.Unlock()
		})
	}

	return ch, cancel, nil
}

// push delivers a snapshot without blocking. A subscriber that has not
// drained its previous snapshot gets it replaced: only the latest full
// set matters.
func push(ch chan []models.Message, messages []models.Message) {
	for {
		select {
		case ch <- messages:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
