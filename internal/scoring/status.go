package scoring

import "fmt"

// Segment is a Nassau settlement window over consecutive holes.
type Segment struct {
	Name  string
	First int
	Last  int
}

// The three standard Nassau segments.
var (
	Front   = Segment{Name: "Front 9", First: 1, Last: 9}
	Back    = Segment{Name: "Back 9", First: 10, Last: 18}
	Overall = Segment{Name: "Overall", First: 1, Last: 18}
)

// Holes returns the segment's hole count.
func (s Segment) Holes() int {
	return s.Last - s.First + 1
}

// Contains reports whether the hole falls inside the segment.
func (s Segment) Contains(hole int) bool {
	return hole >= s.First && hole <= s.Last
}

// SegmentStatus is the running state of one segment: cumulative points,
// complete-hole count, and whether the segment has all its holes counted
// on both sides (the precondition for settling it).
type SegmentStatus struct {
	Segment     Segment
	PointsA     int
	PointsB     int
	HolesPlayed int
	Complete    bool
}

// HolesUp is the A-positive holes-up figure.
func (s SegmentStatus) HolesUp() int {
	return s.PointsA - s.PointsB
}

// Label renders the running status from team A's perspective.
func (s SegmentStatus) Label() string {
	return MatchLabel(s.HolesUp(), s.HolesPlayed, s.Segment.Holes())
}

// SegmentStatus aggregates per-hole points over one segment.
func (c *Card) SegmentStatus(seg Segment) SegmentStatus {
	return segmentStatus(c.PointsByHole(), seg)
}

// segmentStatus is the shared aggregation used by both the parent match
// and press windows, which reuse the parent's per-hole points.
func segmentStatus(points map[int]Points, seg Segment) SegmentStatus {
	st := SegmentStatus{Segment: seg}
	for n := seg.First; n <= seg.Last; n++ {
		pts, ok := points[n]
		if !ok {
			continue
		}
		st.PointsA += pts.A
		st.PointsB += pts.B
		st.HolesPlayed++
	}
	st.Complete = st.HolesPlayed == seg.Holes()
	return st
}

// MatchLabel renders a match-play status given holes up and holes played:
// FINAL once the lead exceeds the holes remaining, AS at level, DORMIE
// when the lead equals the holes remaining, otherwise "N UP"/"N DN".
// Positive holesUp means the viewing side leads.
func MatchLabel(holesUp, holesPlayed, totalHoles int) string {
	remaining := totalHoles - holesPlayed
	up := holesUp
	if up < 0 {
		up = -up
	}
	switch {
	case up > remaining:
		return "FINAL"
	case holesUp == 0:
		return "AS"
	case up == remaining:
		return "DORMIE"
	case holesUp > 0:
		return fmt.Sprintf("%d UP", up)
	default:
		return fmt.Sprintf("%d DN", up)
	}
}
