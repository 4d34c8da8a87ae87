// Package settle turns a match snapshot into the itemized monetary
// ledger. Like the scoring package it is derived-on-read: the ledger is a
// pure function of the score/press log and recomputing it from an
// unchanged log yields identical items.
package settle

import (
	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/dt604/bloodsheet-golf/internal/scoring"
	"github.com/google/uuid"
)

// LineItem is one row of the settlement breakdown, signed from the
// requesting player's perspective.
type LineItem struct {
	Label    string `json:"label"`
	Sublabel string `json:"sublabel,omitempty"`
	Amount   int64  `json:"amount"`
	IsPress  bool   `json:"is_press,omitempty"`
}

// Ledger is the full settlement view of one match for one viewer.
// Participant is false when the viewer is not a player in the match; the
// ledger is then context-only and excluded from group totals.
type Ledger struct {
	MatchID     uuid.UUID  `json:"match_id"`
	Items       []LineItem `json:"items"`
	Total       int64      `json:"total"`
	Participant bool       `json:"participant"`
}

// Compute builds the ledger for one match from the viewer's perspective.
func Compute(c *scoring.Card, viewer uuid.UUID) Ledger {
	l := Ledger{MatchID: c.Match.ID}
	if c.Match.Format == domain.FormatSkins {
		l.Items = skinsItems(c, viewer)
	} else {
		l.Items = nassauItems(c, viewer)
	}
	l.Participant = c.Player(viewer) != nil
	for _, it := range l.Items {
		l.Total += it.Amount
	}
	return l
}

// GroupLedger is the net settlement across sibling matches. Matches the
// viewer does not play in appear for context but never move the total.
type GroupLedger struct {
	Matches []Ledger `json:"matches"`
	Total   int64    `json:"total"`
}

// ComputeGroup settles each sibling match independently and nets the
// viewer's participating totals.
func ComputeGroup(cards []*scoring.Card, viewer uuid.UUID) GroupLedger {
	g := GroupLedger{}
	for _, c := range cards {
		l := Compute(c, viewer)
		g.Matches = append(g.Matches, l)
		if l.Participant {
			g.Total += l.Total
		}
	}
	return g
}

// sgn collapses a holes-up figure to win/push/loss.
func sgn(n int) int64 {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
