package sync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldconnect/api/internal/models"
)

type fakeLister struct {
	mu       sync.Mutex
	messages []models.Message
	err      error
}

func (f *fakeLister) List(ctx context.Context) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Message, len(f.messages))
	copy(out, f.messages)
	return out, nil
}

func (f *fakeLister) set(messages []models.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = messages
}

func msg(id, author, content string, at time.Time) models.Message {
	return models.Message{
		ID:        id,
		Author:    author,
		Country:   "France",
		Kind:      models.MessageKindText,
		Content:   content,
		CreatedAt: at,
	}
}

func TestSubscribe_PrimesWithCurrentSet(t *testing.T) {
	now := time.Now()
	lister := &fakeLister{messages: []models.Message{
		msg("1", "Alice", "hello", now),
		msg("2", "Bob", "hi", now.Add(time.Second)),
	}}
	hub := NewHub(lister, nil, zerolog.Nop())

	ch, cancel, err := hub.Subscribe(context.Background())
	require.NoError(t, err)
	defer cancel()

	select {
	case got := <-ch:
		require.Len(t, got, 2)
		assert.Equal(t, "1", got[0].ID)
		assert.Equal(t, "2", got[1].ID)
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}
}

func TestNotify_PushesFullSetToAllSubscribers(t *testing.T) {
	now := time.Now()
	lister := &fakeLister{}
	hub := NewHub(lister, nil, zerolog.Nop())

	ch1, cancel1, err := hub.Subscribe(context.Background())
	require.NoError(t, err)
	defer cancel1()
	ch2, cancel2, err := hub.Subscribe(context.Background())
	require.NoError(t, err)
	defer cancel2()

	// drain initial empty snapshots
	<-ch1
	<-ch2

	lister.set([]models.Message{msg("1", "Alice", "hello", now)})
	hub.Notify(context.Background())

	for _, ch := range []<-chan []models.Message{ch1, ch2} {
		select {
		case got := <-ch:
			require.Len(t, got, 1)
			assert.Equal(t, "hello", got[0].Content)
			assert.Equal(t, "Alice", got[0].Author)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive push")
		}
	}
}

func TestNotify_SlowSubscriberGetsLatestSnapshotOnly(t *testing.T) {
	now := time.Now()
	lister := &fakeLister{}
	hub := NewHub(lister, nil, zerolog.Nop())

	ch, cancel, err := hub.Subscribe(context.Background())
	require.NoError(t, err)
	defer cancel()
	<-ch

	lister.set([]models.Message{msg("1", "Alice", "first", now)})
	hub.Notify(context.Background())

	lister.set([]models.Message{
		msg("1", "Alice", "first", now),
		msg("2", "Alice", "second", now.Add(time.Second)),
	})
	hub.Notify(context.Background())

	select {
	case got := <-ch:
		require.Len(t, got, 2, "stale snapshot should have been replaced")
		assert.Equal(t, "second", got[1].Content)
	case <-time.After(time.Second):
		t.Fatal("no snapshot")
	}
}

func TestCancel_StopsDeliveryAndIsIdempotent(t *testing.T) {
	lister := &fakeLister{}
	hub := NewHub(lister, nil, zerolog.Nop())

	ch, cancel, err := hub.Subscribe(context.Background())
	require.NoError(t, err)
	<-ch

	cancel()
	cancel() // second call must be a no-op

	// channel is closed after cancellation
	_, open := <-ch
	assert.False(t, open)

	// notify after cancel must not panic or deliver
	hub.Notify(context.Background())
}

func TestDeletionObservedViaNextPush(t *testing.T) {
	now := time.Now()
	lister := &fakeLister{messages: []models.Message{
		msg("1", "Alice", "hello", now),
		msg("2", "Bob", "bye", now.Add(time.Second)),
	}}
	hub := NewHub(lister, nil, zerolog.Nop())

	ch, cancel, err := hub.Subscribe(context.Background())
	require.NoError(t, err)
	defer cancel()
	<-ch

	lister.set([]models.Message{msg("2", "Bob", "bye", now.Add(time.Second))})
	hub.Notify(context.Background())

	got := <-ch
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}
