package infra

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeed(t *testing.T) *KafkaFeed {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	consumer := NewKafkaConsumer("", "", "", false, logger)
	feed := NewKafkaFeed(consumer, logger)
	t.Cleanup(func() { feed.Close() })
	return feed
}

func TestKafkaFeed_DispatchesToSubscribedMatchesOnly(t *testing.T) {
	feed := newTestFeed(t)
	mine, other := uuid.New(), uuid.New()

	var got []domain.ChangeEvent
	_, err := feed.Subscribe(context.Background(), []uuid.UUID{mine}, func(ev domain.ChangeEvent) {
		got = append(got, ev)
	})
	require.NoError(t, err)

	feed.dispatch(domain.ChangeEvent{Type: domain.EventScoreUpserted, MatchID: mine, OccurredAt: time.Now()})
	feed.dispatch(domain.ChangeEvent{Type: domain.EventScoreUpserted, MatchID: other, OccurredAt: time.Now()})

	require.Len(t, got, 1)
	assert.Equal(t, mine, got[0].MatchID)
}

func TestKafkaFeed_UnsubscribeStopsDelivery(t *testing.T) {
	feed := newTestFeed(t)
	matchID := uuid.New()

	var got int
	unsub, err := feed.Subscribe(context.Background(), []uuid.UUID{matchID}, func(domain.ChangeEvent) {
		got++
	})
	require.NoError(t, err)

	feed.dispatch(domain.ChangeEvent{MatchID: matchID})
	unsub()
	feed.dispatch(domain.ChangeEvent{MatchID: matchID})

	assert.Equal(t, 1, got)
}

func TestKafkaFeed_IndependentSubscribers(t *testing.T) {
	feed := newTestFeed(t)
	m1, m2 := uuid.New(), uuid.New()

	var got1, got2 int
	_, err := feed.Subscribe(context.Background(), []uuid.UUID{m1}, func(domain.ChangeEvent) { got1++ })
	require.NoError(t, err)
	_, err = feed.Subscribe(context.Background(), []uuid.UUID{m1, m2}, func(domain.ChangeEvent) { got2++ })
	require.NoError(t, err)

	feed.dispatch(domain.ChangeEvent{MatchID: m1})
	feed.dispatch(domain.ChangeEvent{MatchID: m2})

	assert.Equal(t, 1, got1)
	assert.Equal(t, 2, got2)
}
