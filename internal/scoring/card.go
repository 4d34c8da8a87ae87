// Package scoring implements the derived-on-read scoring engine: net
// score allocation, per-hole match-play points, running status labels,
// press windows, and the skins carry model.
//
// Everything here is a pure function over a Card snapshot. Points,
// labels, and ledgers are never stored; they are recomputed from the raw
// score log on every read, which is what makes concurrent merging safe:
// there is no derived state to reconcile.
package scoring

import (
	"sort"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/google/uuid"
)

// Card is an immutable joined view of one match's raw facts: the match
// row, its course, participants, the score log, and open presses.
type Card struct {
	Match   domain.Match
	Course  domain.Course
	Players []domain.PlayerInMatch
	Scores  []domain.HoleScore
	Presses []domain.Press

	scoreIdx map[scoreIdxKey]*domain.HoleScore
}

type scoreIdxKey struct {
	hole   int
	player uuid.UUID
}

// NewCard builds a card and indexes its score log.
func NewCard(match domain.Match, course domain.Course, players []domain.PlayerInMatch, scores []domain.HoleScore, presses []domain.Press) *Card {
	c := &Card{
		Match:   match,
		Course:  course,
		Players: players,
		Scores:  scores,
		Presses: presses,
		scoreIdx: make(map[scoreIdxKey]*domain.HoleScore, len(scores)),
	}
	for i := range scores {
		s := &scores[i]
		c.scoreIdx[scoreIdxKey{hole: s.HoleNumber, player: s.PlayerID}] = s
	}
	return c
}

// Player returns the participant with the given id, or nil.
func (c *Card) Player(id uuid.UUID) *domain.PlayerInMatch {
	for i := range c.Players {
		if c.Players[i].UserID == id {
			return &c.Players[i]
		}
	}
	return nil
}

// TeamPlayers returns the participants on one side, in join order.
func (c *Card) TeamPlayers(team domain.Team) []domain.PlayerInMatch {
	var out []domain.PlayerInMatch
	for _, p := range c.Players {
		if p.Team == team {
			out = append(out, p)
		}
	}
	return out
}

// TeamOf returns the side a player is on, or "" if not a participant.
func (c *Card) TeamOf(id uuid.UUID) domain.Team {
	if p := c.Player(id); p != nil {
		return p.Team
	}
	return ""
}

// ScoreFor returns the recorded score for (hole, player), or nil.
func (c *Card) ScoreFor(hole int, player uuid.UUID) *domain.HoleScore {
	return c.scoreIdx[scoreIdxKey{hole: hole, player: player}]
}

// HoleComplete reports whether every participant has a recorded score on
// the hole. Holes with partial data contribute nothing anywhere: no
// points, no skins, no holes-played count.
func (c *Card) HoleComplete(hole int) bool {
	if len(c.Players) == 0 {
		return false
	}
	for _, p := range c.Players {
		if c.ScoreFor(hole, p.UserID) == nil {
			return false
		}
	}
	return true
}

// CompleteHoles returns the fully scored hole numbers in ascending order.
func (c *Card) CompleteHoles() []int {
	var holes []int
	for n := 1; n <= 18; n++ {
		if c.HoleComplete(n) {
			holes = append(holes, n)
		}
	}
	return holes
}

// CurrentHole is the lowest hole number without a complete score, capped
// at 18. Used as the default press start and the UI cursor.
func (c *Card) CurrentHole() int {
	for n := 1; n <= 18; n++ {
		if !c.HoleComplete(n) {
			return n
		}
	}
	return 18
}

// sortedPresses returns presses ordered by start hole then creation time,
// the order they appear in the ledger.
func (c *Card) sortedPresses() []domain.Press {
	out := make([]domain.Press, len(c.Presses))
	copy(out, c.Presses)
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartHole != out[j].StartHole {
			return out[i].StartHole < out[j].StartHole
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
