package scoring

import (
	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/google/uuid"
)

// SkinWin records one hole's skin: the sole low-net winner and the pot
// units collected (1 base plus any holes carried in).
type SkinWin struct {
	Hole     int
	WinnerID uuid.UUID
	Units    int
	Carried  int
}

// BonusSkin is an add-on unit earned on a hole independently of the main
// skin: a "pin" dot, a gross birdie, or a gross eagle-or-better. Units
// settle against every other player individually, never pooled and never
// subject to carry.
type BonusSkin struct {
	Hole     int
	PlayerID uuid.UUID
	Units    int
	Reason   string
}

// SkinsResult is the full skins computation for a match snapshot.
type SkinsResult struct {
	Wins      []SkinWin
	OpenCarry int
	Counts    map[uuid.UUID]int // total units won per player
	Bonuses   []BonusSkin
}

// Skins runs the carry-tracking core over all complete holes in order.
// Individual mode plays net off the match differential; team mode is
// best-ball gross with no strokes. Both payout topologies (per-hole cash
// and fixed pot) are settled elsewhere from the same Wins/Counts.
func (c *Card) Skins() SkinsResult {
	res := SkinsResult{Counts: make(map[uuid.UUID]int)}
	if c.Match.Format != domain.FormatSkins {
		return res
	}
	alloc := c.Allocations()

	carry := 0
	for _, n := range c.CompleteHoles() {
		h := c.Course.HoleByNumber(n)
		if h == nil {
			continue
		}
		winner, sole := c.skinWinner(h, alloc)
		if !sole {
			carry++
			continue
		}
		win := SkinWin{Hole: n, WinnerID: winner, Units: 1 + carry, Carried: carry}
		res.Wins = append(res.Wins, win)
		res.Counts[winner] += win.Units
		carry = 0
	}
	res.OpenCarry = carry

	if c.Match.SideBets.BonusSkins {
		res.Bonuses = c.bonusSkins()
	}
	return res
}

// skinWinner finds the sole low scorer on a hole. In team mode the
// "players" are the two sides' best balls; the returned id is the low
// teammate's so the payout still lands on a person.
func (c *Card) skinWinner(h *domain.Hole, alloc map[uuid.UUID]int) (uuid.UUID, bool) {
	type entry struct {
		id  uuid.UUID
		val int
	}
	var entries []entry

	if c.Match.SideBets.TeamSkins {
		for _, team := range []domain.Team{domain.TeamA, domain.TeamB} {
			best := 0
			var bestID uuid.UUID
			first := true
			for _, p := range c.TeamPlayers(team) {
				s := c.ScoreFor(h.Number, p.UserID)
				if s == nil {
					return uuid.Nil, false
				}
				if first || s.Gross < best {
					best, bestID, first = s.Gross, p.UserID, false
				}
			}
			if first {
				return uuid.Nil, false
			}
			entries = append(entries, entry{id: bestID, val: best})
		}
	} else {
		for _, p := range c.Players {
			s := c.ScoreFor(h.Number, p.UserID)
			if s == nil {
				return uuid.Nil, false
			}
			entries = append(entries, entry{
				id:  p.UserID,
				val: NetScore(s.Gross, alloc[p.UserID], h.StrokeIndex),
			})
		}
	}

	low := entries[0]
	tied := false
	for _, e := range entries[1:] {
		switch {
		case e.val < low.val:
			low, tied = e, false
		case e.val == low.val:
			tied = true
		}
	}
	if tied {
		return uuid.Nil, false
	}
	return low.id, true
}

// bonusSkins collects the add-on units over complete holes: +1 for a pin
// dot, +1 for a gross birdie, +2 for a gross eagle or better.
func (c *Card) bonusSkins() []BonusSkin {
	var out []BonusSkin
	for _, n := range c.CompleteHoles() {
		h := c.Course.HoleByNumber(n)
		if h == nil {
			continue
		}
		for _, p := range c.Players {
			s := c.ScoreFor(n, p.UserID)
			if s == nil {
				continue
			}
			if s.HasDot(domain.TrashPin) {
				out = append(out, BonusSkin{Hole: n, PlayerID: p.UserID, Units: 1, Reason: "pin"})
			}
			switch diff := s.Gross - h.Par; {
			case diff == -1:
				out = append(out, BonusSkin{Hole: n, PlayerID: p.UserID, Units: 1, Reason: "birdie"})
			case diff <= -2:
				out = append(out, BonusSkin{Hole: n, PlayerID: p.UserID, Units: 2, Reason: "eagle"})
			}
		}
	}
	return out
}
