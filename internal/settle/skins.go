package settle

import (
	"fmt"

	"github.com/dt604/bloodsheet-golf/internal/scoring"
	"github.com/google/uuid"
)

// skinsItems settles a skins match: one item per won hole (or carried
// range), the flat trash settlement, bonus-skin holes, and in fixed-pot
// mode a single end-of-round distribution instead of per-hole cash.
func skinsItems(c *scoring.Card, viewer uuid.UUID) []LineItem {
	res := c.Skins()
	var items []LineItem

	if c.Match.SideBets.FixedPot {
		if it, ok := fixedPotItem(c, res, viewer); ok {
			items = append(items, it)
		}
	} else {
		for _, win := range res.Wins {
			items = append(items, skinItem(c, win, viewer))
		}
	}

	if c.Match.SideBets.BonusSkins {
		items = append(items, bonusItems(c, res, viewer)...)
	}

	items = append(items, trashItemsFlat(c, viewer)...)
	return items
}

// skinItem prices one won hole from the viewer's seat: the winner
// collects the pot from every other player, each other player owes one
// pot.
func skinItem(c *scoring.Card, win scoring.SkinWin, viewer uuid.UUID) LineItem {
	pot := int64(win.Units) * c.Match.SideBets.SkinValue
	sublabel := fmt.Sprintf("Hole %d", win.Hole)
	if win.Carried > 0 {
		sublabel = fmt.Sprintf("Holes %d-%d, %d carried", win.Hole-win.Carried, win.Hole, win.Carried)
	}

	var amount int64
	others := int64(len(c.Players) - 1)
	switch {
	case win.WinnerID == viewer:
		amount = pot * others
	case c.Player(viewer) != nil:
		amount = -pot
	default:
		amount = pot // context view prices the pot itself
	}
	return LineItem{Label: "Skin", Sublabel: sublabel, Amount: amount}
}

// fixedPotItem distributes skinValue x numPlayers at the end of the round
// to whoever won the most skins. It needs the full 18 counted; a tie at
// the top pays nothing.
func fixedPotItem(c *scoring.Card, res scoring.SkinsResult, viewer uuid.UUID) (LineItem, bool) {
	if len(c.CompleteHoles()) < 18 {
		return LineItem{}, false
	}

	var leader uuid.UUID
	best := 0
	tied := false
	for _, p := range c.Players {
		n := res.Counts[p.UserID]
		switch {
		case n > best:
			leader, best, tied = p.UserID, n, false
		case n == best && n > 0:
			tied = true
		}
	}
	if best == 0 {
		return LineItem{}, false
	}
	if tied {
		return LineItem{Label: "Skins pot", Sublabel: "Tied, no payout", Amount: 0}, true
	}

	value := c.Match.SideBets.SkinValue
	var amount int64
	if leader == viewer {
		amount = value * int64(len(c.Players)-1)
	} else if c.Player(viewer) != nil {
		amount = -value
	}
	return LineItem{
		Label:    "Skins pot",
		Sublabel: fmt.Sprintf("Most skins (%d)", best),
		Amount:   amount,
	}, true
}

// bonusItems settles each bonus-skin hole. Units settle against every
// other player individually: the viewer collects a unit value from each
// opponent per unit earned and owes one per unit earned against them.
func bonusItems(c *scoring.Card, res scoring.SkinsResult, viewer uuid.UUID) []LineItem {
	if c.Player(viewer) == nil {
		return nil
	}
	byHole := map[int][]scoring.BonusSkin{}
	var holes []int
	for _, b := range res.Bonuses {
		if _, seen := byHole[b.Hole]; !seen {
			holes = append(holes, b.Hole)
		}
		byHole[b.Hole] = append(byHole[b.Hole], b)
	}

	value := c.Match.SideBets.SkinValue
	others := int64(len(c.Players) - 1)
	var items []LineItem
	for _, hole := range holes {
		var mine, theirs int64
		for _, b := range byHole[hole] {
			if b.PlayerID == viewer {
				mine += int64(b.Units)
			} else {
				theirs += int64(b.Units)
			}
		}
		amount := mine*others*value - theirs*value
		items = append(items, LineItem{
			Label:    "Bonus skins",
			Sublabel: fmt.Sprintf("Hole %d", hole),
			Amount:   amount,
		})
	}
	return items
}

// trashItemsFlat settles enabled trash bets in skins play: flat net-dot
// settlement against the field, no team scaling. This branch keeps its
// own formula deliberately; see trashItemsTeamScaled for the match-play
// rule.
func trashItemsFlat(c *scoring.Card, viewer uuid.UUID) []LineItem {
	if c.Player(viewer) == nil {
		return nil
	}
	var items []LineItem
	for _, tag := range c.Match.SideBets.TrashBets {
		var mine, theirs int
		for _, hole := range c.CompleteHoles() {
			for _, p := range c.Players {
				s := c.ScoreFor(hole, p.UserID)
				if s == nil || !s.HasDot(tag) {
					continue
				}
				if p.UserID == viewer {
					mine++
				} else {
					theirs++
				}
			}
		}
		if mine == 0 && theirs == 0 {
			continue
		}
		items = append(items, LineItem{
			Label:    trashLabel(tag),
			Sublabel: fmt.Sprintf("%d won, %d against", mine, theirs),
			Amount:   int64(mine-theirs) * c.Match.SideBets.TrashValue,
		})
	}
	return items
}
