package scoring

import (
	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/google/uuid"
)

// Allocations returns each participant's adjusted handicap for stroke
// purposes, computed from the players actually present in this pairing,
// never globally. A player's allocation differs across sibling matches in
// the same group when the opponents differ.
//
// 1v1 and individual skins: rounded handicap minus the lowest rounded
// handicap in the match, floored at zero, so the lowest player always
// plays at scratch. 2v2 disables individual allocation entirely in favor
// of the team spot; team skins takes no strokes at all.
func (c *Card) Allocations() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(c.Players))
	if c.Match.TeamPlay() || (c.Match.Format == domain.FormatSkins && c.Match.SideBets.TeamSkins) {
		for _, p := range c.Players {
			out[p.UserID] = 0
		}
		return out
	}

	low := 0
	for i, p := range c.Players {
		h := p.RoundedHandicap()
		if i == 0 || h < low {
			low = h
		}
	}
	for _, p := range c.Players {
		adj := p.RoundedHandicap() - low
		if adj < 0 {
			adj = 0
		}
		out[p.UserID] = adj
	}
	return out
}

// TeamSpot is the stroke allowance granted to the higher-combined-handicap
// team in 2v2 play.
type TeamSpot struct {
	Team    domain.Team
	Strokes int
}

// TeamSpot computes the 2v2 spot: the difference between the teams'
// combined rounded handicaps, granted to the higher side.
func (c *Card) TeamSpot() TeamSpot {
	sumA, sumB := 0, 0
	for _, p := range c.Players {
		if p.Team == domain.TeamA {
			sumA += p.RoundedHandicap()
		} else {
			sumB += p.RoundedHandicap()
		}
	}
	if sumA > sumB {
		return TeamSpot{Team: domain.TeamA, Strokes: sumA - sumB}
	}
	return TeamSpot{Team: domain.TeamB, Strokes: sumB - sumA}
}

// applySpotStrokes subtracts spot strokes from a team's hole nets, one at
// a time, each going to whichever teammate currently has the lower net.
func applySpotStrokes(nets []int, strokes int) {
	for s := 0; s < strokes; s++ {
		low := 0
		for i := 1; i < len(nets); i++ {
			if nets[i] < nets[low] {
				low = i
			}
		}
		nets[low]--
	}
}
