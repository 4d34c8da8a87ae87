package infra

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	livesync "github.com/dt604/bloodsheet-golf/internal/sync"
	"github.com/google/uuid"
)

// KafkaFeed adapts the Kafka change topic into the synchronizer's Feed
// interface. One reader loop serves all subscribers; each subscriber
// only sees events for its own matches. Delivery is best effort, the
// synchronizer's polling fallback covers gaps.
type KafkaFeed struct {
	consumer *KafkaConsumer
	logger   *slog.Logger

	mu   sync.Mutex
	subs map[uuid.UUID]*feedSub
	run  context.CancelFunc
}

type feedSub struct {
	matches  map[uuid.UUID]bool
	onChange func(domain.ChangeEvent)
}

// NewKafkaFeed starts the reader loop and returns the feed. Close stops
// the loop and the underlying consumer.
func NewKafkaFeed(consumer *KafkaConsumer, logger *slog.Logger) *KafkaFeed {
	f := &KafkaFeed{
		consumer: consumer,
		logger:   logger,
		subs:     make(map[uuid.UUID]*feedSub),
	}
	ctx, cancel := context.WithCancel(context.Background())
	f.run = cancel
	if consumer.Enabled() {
		go f.readLoop(ctx)
	}
	return f
}

// Subscribe registers a callback for events on the given matches.
func (f *KafkaFeed) Subscribe(_ context.Context, matchIDs []uuid.UUID, onChange func(domain.ChangeEvent)) (livesync.Unsubscribe, error) {
	id := uuid.New()
	sub := &feedSub{
		matches:  make(map[uuid.UUID]bool, len(matchIDs)),
		onChange: onChange,
	}
	for _, m := range matchIDs {
		sub.matches[m] = true
	}

	f.mu.Lock()
	f.subs[id] = sub
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}, nil
}

func (f *KafkaFeed) readLoop(ctx context.Context) {
	for {
		msg, err := f.consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			f.logger.Warn("change feed read failed", "error", err)
			continue
		}

		var ev domain.ChangeEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			f.logger.Warn("change feed decode failed", "error", err)
			continue
		}
		f.dispatch(ev)
	}
}

func (f *KafkaFeed) dispatch(ev domain.ChangeEvent) {
	f.mu.Lock()
	var targets []func(domain.ChangeEvent)
	for _, sub := range f.subs {
		if sub.matches[ev.MatchID] {
			targets = append(targets, sub.onChange)
		}
	}
	f.mu.Unlock()

	for _, fn := range targets {
		fn(ev)
	}
}

// Close stops the reader loop and the consumer.
func (f *KafkaFeed) Close() error {
	f.run()
	return f.consumer.Close()
}
