package scoring

// StrokesReceived returns the handicap strokes a player receives on a
// hole, given an already-adjusted (differential, rounded) handicap and
// the hole's stroke index. A rounded handicap spreads one stroke to each
// hole in ascending difficulty order, wrapping for handicaps over 18:
// the full wraps land on every hole, the remainder lands on the
// `adjusted mod 18` hardest holes.
func StrokesReceived(adjustedHandicap, strokeIndex int) int {
	if adjustedHandicap <= 0 {
		return 0
	}
	strokes := adjustedHandicap / 18
	if adjustedHandicap%18 >= strokeIndex {
		strokes++
	}
	return strokes
}

// NetScore is the handicap-adjusted score for one hole. No rounding
// happens here; callers round handicaps to an integer differential before
// calling.
func NetScore(gross, adjustedHandicap, strokeIndex int) int {
	return gross - StrokesReceived(adjustedHandicap, strokeIndex)
}
