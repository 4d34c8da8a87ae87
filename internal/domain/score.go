package domain

import (
	"time"

	"github.com/google/uuid"
)

// TrashTag labels a side-bet event earned on a hole, independent of the
// main score.
type TrashTag string

const (
	TrashGreenie TrashTag = "greenie" // on the green in one on a par 3
	TrashSandie  TrashTag = "sandie"  // par or better out of a bunker
	TrashSnake   TrashTag = "snake"   // three-putt (a penalty dot)
	TrashPin     TrashTag = "pin"     // closest to the pin
)

// HoleScore is one player's recorded result on one hole. Exactly one row
// exists per (MatchID, HoleNumber, PlayerID); writes are idempotent
// upserts on that key and the last write physically committed wins.
type HoleScore struct {
	MatchID    uuid.UUID  `json:"match_id"`
	HoleNumber int        `json:"hole_number"`
	PlayerID   uuid.UUID  `json:"player_id"`
	Gross      int        `json:"gross"`
	Net        int        `json:"net"`
	TrashDots  []TrashTag `json:"trash_dots,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// HasDot reports whether the score carries the given trash dot.
func (s *HoleScore) HasDot(tag TrashTag) bool {
	for _, d := range s.TrashDots {
		if d == tag {
			return true
		}
	}
	return false
}

// ScoreKey is the upsert identity of a hole score.
type ScoreKey struct {
	MatchID    uuid.UUID
	HoleNumber int
	PlayerID   uuid.UUID
}

// Key returns the score's upsert identity.
func (s *HoleScore) Key() ScoreKey {
	return ScoreKey{MatchID: s.MatchID, HoleNumber: s.HoleNumber, PlayerID: s.PlayerID}
}

// Equal reports whether two scores carry the same recorded facts,
// ignoring UpdatedAt. Used by the synchronizer to decide whether an
// incoming row is actually a change.
func (s *HoleScore) Equal(o *HoleScore) bool {
	if s.Gross != o.Gross || s.Net != o.Net || len(s.TrashDots) != len(o.TrashDots) {
		return false
	}
	for i := range s.TrashDots {
		if s.TrashDots[i] != o.TrashDots[i] {
			return false
		}
	}
	return true
}

// PressStatus tracks a press sub-wager's lifecycle.
type PressStatus string

const (
	PressActive    PressStatus = "active"
	PressCompleted PressStatus = "completed"
)

// Press is a sub-wager opened mid-round, scored as an independent
// Nassau-style bet over holes >= StartHole. Immutable once created; it is
// never edited or cancelled, only implicitly closed when the round ends.
type Press struct {
	ID            uuid.UUID   `json:"id"`
	MatchID       uuid.UUID   `json:"match_id"`
	StartHole     int         `json:"start_hole"`
	PressedByTeam Team        `json:"pressed_by_team"`
	Status        PressStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}
