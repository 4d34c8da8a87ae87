package infra

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/dt604/bloodsheet-golf/internal/guard"
	"github.com/dt604/bloodsheet-golf/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OutboxPoller drains the event_outbox table, publishes each draft to
// the Kafka change topic, and fans it out to the match's websocket room.
// Rows are only marked published after the Kafka write succeeds, so a
// broker outage replays rather than drops events.
type OutboxPoller struct {
	pool      *pgxpool.Pool
	outbox    repository.OutboxRepository
	producer  *KafkaProducer
	hub       *WSHub
	topic     string
	logger    *slog.Logger
	breaker   *guard.CircuitBreaker
	interval  time.Duration
	batchSize int
}

const brokerCircuit = "kafka"

// NewOutboxPoller creates a new outbox poller.
func NewOutboxPoller(pool *pgxpool.Pool, outbox repository.OutboxRepository, producer *KafkaProducer, hub *WSHub, topic string, logger *slog.Logger) *OutboxPoller {
	return &OutboxPoller{
		pool:      pool,
		outbox:    outbox,
		producer:  producer,
		hub:       hub,
		topic:     topic,
		logger:    logger,
		breaker:   guard.NewCircuitBreaker(5, 10*time.Second),
		interval:  500 * time.Millisecond,
		batchSize: 100,
	}
}

// Start begins polling in a goroutine. Stops when ctx is cancelled.
func (p *OutboxPoller) Start(ctx context.Context) {
	p.logger.Info("outbox poller started", "interval", p.interval, "batch_size", p.batchSize)

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				p.logger.Info("outbox poller stopped")
				return
			case <-ticker.C:
				if err := p.poll(ctx); err != nil {
					p.logger.Error("outbox poll error", "error", err)
				}
			}
		}
	}()
}

func (p *OutboxPoller) poll(ctx context.Context) error {
	drafts, err := p.outbox.FetchUnpublished(ctx, p.pool, p.batchSize)
	if err != nil {
		return err
	}
	if len(drafts) == 0 {
		return nil
	}

	published := make([]uuid.UUID, 0, len(drafts))
	for _, d := range drafts {
		if res := p.breaker.Check(brokerCircuit); !res.Allowed {
			p.logger.Warn("skipping publish, broker circuit open", "reason", res.Reason)
			break
		}
		if err := p.producer.Publish(ctx, p.topic, []byte(d.PartitionKey), d.Payload); err != nil {
			p.breaker.RecordFailure(brokerCircuit)
			p.logger.Error("kafka publish failed", "event_id", d.EventID, "error", err)
			continue
		}
		p.breaker.RecordSuccess(brokerCircuit)
		p.fanOut(d)
		published = append(published, d.EventID)
	}

	if err := p.outbox.MarkPublished(ctx, p.pool, published); err != nil {
		p.logger.Error("mark published failed", "error", err)
	}

	p.logger.Debug("outbox poll complete", "published", len(published))
	return nil
}

// fanOut pushes the change into the match's websocket room so connected
// devices get it without a Kafka consumer of their own.
func (p *OutboxPoller) fanOut(d domain.OutboxDraft) {
	var ev domain.ChangeEvent
	if err := json.Unmarshal(d.Payload, &ev); err != nil {
		p.logger.Warn("outbox payload decode failed", "event_id", d.EventID, "error", err)
		return
	}
	p.hub.PublishToMatch(ev.MatchID, string(ev.Type), ev)
}
