package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// PlayerInMatch is a participant of one match. Guests carry a locally
// generated stable UUID and are never resolved against the identity
// provider. Fields are immutable once the match starts except Handicap,
// which the scorekeeper may correct mid-round.
type PlayerInMatch struct {
	UserID          uuid.UUID `json:"user_id"`
	MatchID         uuid.UUID `json:"match_id"`
	Team            Team      `json:"team"`
	InitialHandicap float64   `json:"initial_handicap"`
	Handicap        float64   `json:"handicap"`
	DisplayName     string    `json:"display_name"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	IsGuest         bool      `json:"is_guest"`
	CreatedAt       time.Time `json:"created_at"`
}

// EffectiveHandicap is the handicap used for stroke allocation. A corrected
// handicap wins; a zero-value Handicap falls back to the value captured at
// match creation (stale-profile degradation, not an error).
func (p *PlayerInMatch) EffectiveHandicap() float64 {
	if p.Handicap != 0 {
		return p.Handicap
	}
	return p.InitialHandicap
}

// RoundedHandicap is the integer handicap fed to the allocator. Rounding
// happens here, once, before any stroke math.
func (p *PlayerInMatch) RoundedHandicap() int {
	return int(math.Round(p.EffectiveHandicap()))
}

// NewGuestPlayer builds a guest participant with a synthetic stable id.
func NewGuestPlayer(matchID uuid.UUID, team Team, name string, handicap float64) PlayerInMatch {
	return PlayerInMatch{
		UserID:          uuid.New(),
		MatchID:         matchID,
		Team:            team,
		InitialHandicap: handicap,
		Handicap:        handicap,
		DisplayName:     name,
		IsGuest:         true,
		CreatedAt:       time.Now(),
	}
}
