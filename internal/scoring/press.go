package scoring

import (
	"fmt"

	"github.com/dt604/bloodsheet-golf/internal/domain"
)

// PressWindow is one press scored over its own hole range. It reuses the
// parent match's per-hole point results; a press never re-simulates
// scoring, it only windows it.
type PressWindow struct {
	Press  domain.Press
	Status SegmentStatus
}

// Label renders the press standing from team A's perspective.
func (w PressWindow) Label() string {
	return w.Status.Label()
}

// Name is the ledger label for the press, e.g. "Press (hole 14)".
func (w PressWindow) Name() string {
	return fmt.Sprintf("Press (hole %d)", w.Press.StartHole)
}

// PressWindows computes every press's window over the shared per-hole
// points, ordered by start hole. Presses are monotonically additive:
// each settles independently, never netted against another.
func (c *Card) PressWindows() []PressWindow {
	points := c.PointsByHole()
	presses := c.sortedPresses()
	out := make([]PressWindow, 0, len(presses))
	for _, p := range presses {
		seg := Segment{
			Name:  fmt.Sprintf("Press (hole %d)", p.StartHole),
			First: p.StartHole,
			Last:  18,
		}
		out = append(out, PressWindow{
			Press:  p,
			Status: segmentStatus(points, seg),
		})
	}
	return out
}
