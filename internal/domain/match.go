package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchFormat enumerates the supported betting formats.
type MatchFormat string

const (
	FormatSingles MatchFormat = "1v1"
	FormatTeams   MatchFormat = "2v2"
	FormatSkins   MatchFormat = "skins"
)

// WagerType determines how the base wager is settled.
type WagerType string

const (
	WagerPerHole WagerType = "PER_HOLE"
	WagerNassau  WagerType = "NASSAU"
)

// MatchStatus tracks the match lifecycle.
type MatchStatus string

const (
	MatchSetup              MatchStatus = "setup"
	MatchInProgress         MatchStatus = "in_progress"
	MatchPendingAttestation MatchStatus = "pending_attestation"
	MatchCompleted          MatchStatus = "completed"
)

// Team identifies a side of a match.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// Opponent returns the other side.
func (t Team) Opponent() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// SideBetConfig is the per-match side-bet configuration bag.
// Money fields are integer cents, matching WagerAmount.
type SideBetConfig struct {
	BirdiesDouble bool       `json:"birdies_double"`
	Greenies      bool       `json:"greenies"`
	TrashBets     []TrashTag `json:"trash_bets,omitempty"`
	TrashValue    int64      `json:"trash_value,omitempty"`
	SkinValue     int64      `json:"skin_value,omitempty"`
	FixedPot      bool       `json:"fixed_pot"`
	TeamSkins     bool       `json:"team_skins"`
	BonusSkins    bool       `json:"bonus_skins"`
	Par3Contest   bool       `json:"par3_contest"`
	Par5Contest   bool       `json:"par5_contest"`
	ContestPot    int64      `json:"contest_pot,omitempty"`
}

// TrashEnabled reports whether the given trash tag is a live bet in this match.
func (c SideBetConfig) TrashEnabled(tag TrashTag) bool {
	for _, t := range c.TrashBets {
		if t == tag {
			return true
		}
	}
	return false
}

// Match represents one wagering match. GroupID links sibling matches that
// share a course and date and are net-settled together.
type Match struct {
	ID          uuid.UUID     `json:"id"`
	JoinCode    string        `json:"join_code"`
	CourseID    uuid.UUID     `json:"course_id"`
	GroupID     *uuid.UUID    `json:"group_id,omitempty"`
	Format      MatchFormat   `json:"format"`
	WagerAmount int64         `json:"wager_amount"`
	WagerType   WagerType     `json:"wager_type"`
	Status      MatchStatus   `json:"status"`
	SideBets    SideBetConfig `json:"side_bets"`
	CreatedBy   uuid.UUID     `json:"created_by"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TeamPlay reports whether the format scores sides as teams.
func (m *Match) TeamPlay() bool {
	return m.Format == FormatTeams
}

// Attestation is a player's confirmation that the posted scores are accurate.
// The pending_attestation -> completed transition is enforced by the
// persistence service once every non-scorekeeper has attested; we only read
// and write the rows.
type Attestation struct {
	MatchID    uuid.UUID `json:"match_id"`
	UserID     uuid.UUID `json:"user_id"`
	AttestedAt time.Time `json:"attested_at"`
}
