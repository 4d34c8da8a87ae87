package settle

import (
	"fmt"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/dt604/bloodsheet-golf/internal/scoring"
	"github.com/google/uuid"
)

// nassauItems settles a 1v1 or 2v2 match: base wager segments (or the
// per-hole running bet), presses, trash bets, and mini-contests.
// Incomplete segments are omitted rather than forced to a push.
func nassauItems(c *scoring.Card, viewer uuid.UUID) []LineItem {
	team := c.TeamOf(viewer)
	sign := int64(1) // non-participants see the ledger from team A's side
	if team == domain.TeamB {
		sign = -1
	}

	var items []LineItem
	wager := c.Match.WagerAmount

	switch c.Match.WagerType {
	case domain.WagerPerHole:
		st := c.SegmentStatus(scoring.Overall)
		if st.HolesPlayed > 0 {
			items = append(items, LineItem{
				Label:    "Holes",
				Sublabel: fmt.Sprintf("%d played", st.HolesPlayed),
				Amount:   sign * int64(st.HolesUp()) * wager,
			})
		}
	default: // NASSAU
		for _, seg := range []scoring.Segment{scoring.Front, scoring.Back, scoring.Overall} {
			st := c.SegmentStatus(seg)
			if !st.Complete {
				continue
			}
			items = append(items, LineItem{
				Label:    seg.Name,
				Sublabel: segmentSublabel(st),
				Amount:   sign * sgn(st.HolesUp()) * wager,
			})
		}
	}

	for _, w := range c.PressWindows() {
		if !w.Status.Complete {
			continue
		}
		items = append(items, LineItem{
			Label:    w.Name(),
			Sublabel: segmentSublabel(w.Status),
			Amount:   sign * sgn(w.Status.HolesUp()) * wager,
			IsPress:  true,
		})
	}

	items = append(items, trashItemsTeamScaled(c, team)...)
	items = append(items, contestItems(c, viewer)...)
	return items
}

func segmentSublabel(st scoring.SegmentStatus) string {
	up := st.HolesUp()
	switch {
	case up == 0:
		return "Push"
	case up > 0:
		return fmt.Sprintf("A wins %d", up)
	default:
		return fmt.Sprintf("B wins %d", -up)
	}
}

// trashItemsTeamScaled settles each enabled trash bet as net dots won
// minus lost, scaled by the opposing team size when the sides are uneven.
// This scaling rule is specific to the team-match branch; skins settles
// trash flat (see trashItemsFlat).
func trashItemsTeamScaled(c *scoring.Card, team domain.Team) []LineItem {
	if team == "" {
		team = domain.TeamA
	}
	mine := c.TeamPlayers(team)
	theirs := c.TeamPlayers(team.Opponent())

	var items []LineItem
	for _, tag := range c.Match.SideBets.TrashBets {
		won := teamDots(c, mine, tag)
		lost := teamDots(c, theirs, tag)
		net := int64(won - lost)
		amount := net * c.Match.SideBets.TrashValue
		if len(mine) != len(theirs) {
			amount *= int64(len(theirs))
		}
		if won == 0 && lost == 0 {
			continue
		}
		items = append(items, LineItem{
			Label:    trashLabel(tag),
			Sublabel: fmt.Sprintf("%d won, %d lost", won, lost),
			Amount:   amount,
		})
	}
	return items
}

// teamDots counts a side's dots of one tag over complete holes only.
func teamDots(c *scoring.Card, players []domain.PlayerInMatch, tag domain.TrashTag) int {
	n := 0
	for _, hole := range c.CompleteHoles() {
		for _, p := range players {
			if s := c.ScoreFor(hole, p.UserID); s != nil && s.HasDot(tag) {
				n++
			}
		}
	}
	return n
}

func trashLabel(tag domain.TrashTag) string {
	switch tag {
	case domain.TrashGreenie:
		return "Greenies"
	case domain.TrashSandie:
		return "Sandies"
	case domain.TrashSnake:
		return "Snakes"
	case domain.TrashPin:
		return "Pins"
	default:
		return string(tag)
	}
}

// contestItems settles the par-3 and par-5 lowest-gross mini-contests.
// A contest pays only when every applicable hole is fully scored; the
// sole low scorer collects the pot from each other player, ties pay
// nothing.
func contestItems(c *scoring.Card, viewer uuid.UUID) []LineItem {
	var items []LineItem
	if c.Match.SideBets.Par3Contest {
		if it, ok := contestItem(c, viewer, 3, "Par 3s"); ok {
			items = append(items, it)
		}
	}
	if c.Match.SideBets.Par5Contest {
		if it, ok := contestItem(c, viewer, 5, "Par 5s"); ok {
			items = append(items, it)
		}
	}
	return items
}

func contestItem(c *scoring.Card, viewer uuid.UUID, par int, label string) (LineItem, bool) {
	totals := make(map[uuid.UUID]int, len(c.Players))
	holes := 0
	for _, h := range c.Course.Holes {
		if h.Par != par {
			continue
		}
		holes++
		if !c.HoleComplete(h.Number) {
			return LineItem{}, false
		}
		for _, p := range c.Players {
			totals[p.UserID] += c.ScoreFor(h.Number, p.UserID).Gross
		}
	}
	if holes == 0 || len(totals) == 0 {
		return LineItem{}, false
	}

	var winner uuid.UUID
	best := 0
	first := true
	tied := false
	for id, total := range totals {
		switch {
		case first || total < best:
			winner, best, first, tied = id, total, false, false
		case total == best:
			tied = true
		}
	}
	if tied {
		return LineItem{Label: label, Sublabel: "Tied, no payout", Amount: 0}, true
	}

	pot := c.Match.SideBets.ContestPot
	n := int64(len(c.Players))
	var amount int64
	if winner == viewer {
		amount = pot * (n - 1)
	} else if c.Player(viewer) != nil {
		amount = -pot
	}
	return LineItem{
		Label:    label,
		Sublabel: fmt.Sprintf("Low gross %d", best),
		Amount:   amount,
	}, true
}
