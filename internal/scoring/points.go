package scoring

import (
	"github.com/dt604/bloodsheet-golf/internal/domain"
)

// Points holds both sides' match-play points for one hole.
type Points struct {
	A int
	B int
}

// HolePoints computes the match-play points for one hole. ok is false
// when the hole is not fully scored (it then contributes nothing and is
// excluded from holes-played) or when the format is skins.
func (c *Card) HolePoints(hole int) (Points, bool) {
	if c.Match.Format == domain.FormatSkins {
		return Points{}, false
	}
	if !c.HoleComplete(hole) {
		return Points{}, false
	}
	h := c.Course.HoleByNumber(hole)
	if h == nil {
		return Points{}, false
	}

	var pts Points
	switch c.Match.Format {
	case domain.FormatSingles:
		pts = c.singlesPoints(h)
	case domain.FormatTeams:
		pts = c.teamPoints(h)
	}

	// Greenie bonus rides on top of the net-score outcome, par 3s only.
	if c.Match.SideBets.Greenies && h.Par == 3 {
		if c.sideHasDot(domain.TeamA, h.Number, domain.TrashGreenie) {
			pts.A++
		}
		if c.sideHasDot(domain.TeamB, h.Number, domain.TrashGreenie) {
			pts.B++
		}
	}
	return pts, true
}

// singlesPoints scores a 1v1 hole: lower net wins one point, two when
// birdies-double is on and the winner's gross beat par.
func (c *Card) singlesPoints(h *domain.Hole) Points {
	alloc := c.Allocations()
	a := c.TeamPlayers(domain.TeamA)
	b := c.TeamPlayers(domain.TeamB)
	if len(a) == 0 || len(b) == 0 {
		return Points{}
	}
	sa := c.ScoreFor(h.Number, a[0].UserID)
	sb := c.ScoreFor(h.Number, b[0].UserID)
	netA := NetScore(sa.Gross, alloc[a[0].UserID], h.StrokeIndex)
	netB := NetScore(sb.Gross, alloc[b[0].UserID], h.StrokeIndex)

	switch {
	case netA < netB:
		return Points{A: c.winValue(sa.Gross, h.Par)}
	case netB < netA:
		return Points{B: c.winValue(sb.Gross, h.Par)}
	default:
		return Points{}
	}
}

// teamPoints scores a 2v2 hole as two independent sub-contests: low ball
// and aggregate. Individual allocation is off; the team spot subtracts
// strokes from the spotted side's lower net on holes inside the allowance.
func (c *Card) teamPoints(h *domain.Hole) Points {
	netsA, grossA := c.teamHoleNets(domain.TeamA, h)
	netsB, grossB := c.teamHoleNets(domain.TeamB, h)
	if len(netsA) == 0 || len(netsB) == 0 {
		return Points{}
	}

	spot := c.TeamSpot()
	if spot.Strokes > 0 {
		holeSpot := StrokesReceived(spot.Strokes, h.StrokeIndex)
		if spot.Team == domain.TeamA {
			applySpotStrokes(netsA, holeSpot)
		} else {
			applySpotStrokes(netsB, holeSpot)
		}
	}

	var pts Points

	// Low ball: best individual net of each pair.
	lowA, lowB := minOf(netsA), minOf(netsB)
	switch {
	case lowA < lowB:
		pts.A += c.teamWinValue(grossA, h.Par)
	case lowB < lowA:
		pts.B += c.teamWinValue(grossB, h.Par)
	}

	// Aggregate: sum of both teammates' nets.
	sumA, sumB := sumOf(netsA), sumOf(netsB)
	switch {
	case sumA < sumB:
		pts.A += c.teamWinValue(grossA, h.Par)
	case sumB < sumA:
		pts.B += c.teamWinValue(grossB, h.Par)
	}

	return pts
}

// winValue is the 1v1 hole value: 1, or 2 when birdies double and the
// winning gross beat par.
func (c *Card) winValue(winnerGross, par int) int {
	if c.Match.SideBets.BirdiesDouble && winnerGross < par {
		return 2
	}
	return 1
}

// teamWinValue is a 2v2 sub-contest value: 1 plus 1 for each qualifying
// gross birdie on the winning side. Per-player doubling is additive, not
// multiplicative.
func (c *Card) teamWinValue(winnerGross []int, par int) int {
	v := 1
	if !c.Match.SideBets.BirdiesDouble {
		return v
	}
	for _, g := range winnerGross {
		if g < par {
			v++
		}
	}
	return v
}

// teamHoleNets returns one side's nets (pre-spot) and grosses for a hole.
func (c *Card) teamHoleNets(team domain.Team, h *domain.Hole) (nets []int, gross []int) {
	for _, p := range c.TeamPlayers(team) {
		s := c.ScoreFor(h.Number, p.UserID)
		if s == nil {
			return nil, nil
		}
		nets = append(nets, s.Gross)
		gross = append(gross, s.Gross)
	}
	return nets, gross
}

// sideHasDot reports whether any teammate earned the given dot on a hole.
func (c *Card) sideHasDot(team domain.Team, hole int, tag domain.TrashTag) bool {
	for _, p := range c.TeamPlayers(team) {
		if s := c.ScoreFor(hole, p.UserID); s != nil && s.HasDot(tag) {
			return true
		}
	}
	return false
}

// PointsByHole computes points for every complete hole, keyed by hole
// number. The map is the input to the status tracker and press windows.
func (c *Card) PointsByHole() map[int]Points {
	out := make(map[int]Points)
	for n := 1; n <= 18; n++ {
		if pts, ok := c.HolePoints(n); ok {
			out[n] = pts
		}
	}
	return out
}

func minOf(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func sumOf(xs []int) int {
	s := 0
	for _, x := range xs {
		s += x
	}
	return s
}
