// feed-tail tails the change feed and logs every event. Useful for
// watching a live round from a terminal and for verifying that outbox
// events actually reach Kafka.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/dt604/bloodsheet-golf/internal/infra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("feed-tail failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.KafkaEnabled {
		return fmt.Errorf("KAFKA_ENABLED=false, nothing to tail")
	}

	groupID := os.Getenv("FEED_TAIL_GROUP")
	if groupID == "" {
		groupID = "feed-tail"
	}

	consumer := infra.NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, groupID, true, logger)
	defer consumer.Close()
	logger.Info("tailing change feed", "topic", cfg.KafkaTopic, "group", groupID)

	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("feed-tail shutting down")
				return nil
			}
			logger.Warn("read failed", "error", err)
			continue
		}

		var ev domain.ChangeEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			logger.Warn("decode failed", "error", err, "key", string(msg.Key))
			continue
		}

		attrs := []any{"type", ev.Type, "match_id", ev.MatchID, "occurred_at", ev.OccurredAt}
		switch {
		case ev.Score != nil:
			attrs = append(attrs, "hole", ev.Score.HoleNumber, "player_id", ev.Score.PlayerID, "gross", ev.Score.Gross)
		case ev.Press != nil:
			attrs = append(attrs, "start_hole", ev.Press.StartHole, "team", ev.Press.PressedByTeam)
		case ev.Status != "":
			attrs = append(attrs, "status", ev.Status)
		case ev.Attestation != nil:
			attrs = append(attrs, "user_id", ev.Attestation.UserID)
		}
		logger.Info("change event", attrs...)
	}
}
