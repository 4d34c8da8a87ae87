// Package sync keeps a device-local snapshot of one or more live matches
// in step with the persistence service. Scores edited locally are applied
// to the snapshot immediately and written back on a debounce, change-feed
// events and a periodic full refresh are merged in by upsert key, and the
// last write physically committed wins. Derived outputs (points, labels,
// ledgers) are recomputed from the snapshot on every read, so merging is
// only ever a matter of raw score, press, and attestation rows.
package sync

import (
	"context"
	"time"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/google/uuid"
)

// Store is the persistence surface a session reads from and writes to.
// The production implementation is the HTTP API client; tests supply
// in-memory fakes.
type Store interface {
	GetMatch(ctx context.Context, id uuid.UUID) (*domain.Match, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	ListPlayers(ctx context.Context, matchID uuid.UUID) ([]domain.PlayerInMatch, error)
	ListScores(ctx context.Context, matchIDs []uuid.UUID) ([]domain.HoleScore, error)
	ListPresses(ctx context.Context, matchID uuid.UUID) ([]domain.Press, error)
	ListAttestations(ctx context.Context, matchID uuid.UUID) ([]domain.Attestation, error)
	UpsertScore(ctx context.Context, score domain.HoleScore) error
	InsertPress(ctx context.Context, press domain.Press) error
}

// Unsubscribe tears down a change-feed subscription.
type Unsubscribe func()

// Feed delivers best-effort row-level change events for a set of matches.
// Delivery is not guaranteed; the session's polling fallback covers gaps.
type Feed interface {
	Subscribe(ctx context.Context, matchIDs []uuid.UUID, onChange func(domain.ChangeEvent)) (Unsubscribe, error)
}

// RemoteChange is raised when a change event or refresh brings in a score
// that differs from the prior local value for a player other than the
// session's user. It drives a toast or haptic, never input blocking.
type RemoteChange struct {
	MatchID  uuid.UUID
	Score    domain.HoleScore
	Previous *domain.HoleScore
}

// Options tunes session timing. Zero values take the defaults.
type Options struct {
	// DebounceInterval is how long after the last local edit the
	// pending scores are written back. Default 1500ms.
	DebounceInterval time.Duration
	// PollInterval is the full-refresh cadence. Default 4s.
	PollInterval time.Duration
	// EventBuffer sizes the remote-change channel. Default 16.
	EventBuffer int
}

const (
	defaultDebounce    = 1500 * time.Millisecond
	defaultPoll        = 4 * time.Second
	defaultEventBuffer = 16
)

func (o Options) withDefaults() Options {
	if o.DebounceInterval <= 0 {
		o.DebounceInterval = defaultDebounce
	}
	if o.PollInterval <= 0 {
		o.PollInterval = defaultPoll
	}
	if o.EventBuffer <= 0 {
		o.EventBuffer = defaultEventBuffer
	}
	return o
}
