package domain

import "fmt"

// Validation happens once, here, when a value crosses the persistence or
// HTTP boundary. Downstream code trusts validated values and never
// re-checks them ad hoc.

// MaxGross caps a recordable hole score. High enough for any blowup hole,
// low enough to catch fat-fingered input.
const MaxGross = 20

var validTrashTags = map[TrashTag]bool{
	TrashGreenie: true,
	TrashSandie:  true,
	TrashSnake:   true,
	TrashPin:     true,
}

// ValidateGross checks a gross hole score. Malformed scores are rejected
// locally and never sent to the persistence layer.
func ValidateGross(gross int) error {
	if gross < 1 {
		return fmt.Errorf("gross score must be at least 1, got %d", gross)
	}
	if gross > MaxGross {
		return fmt.Errorf("gross score must be at most %d, got %d", MaxGross, gross)
	}
	return nil
}

// ValidateHoleNumber checks a hole number is on the card.
func ValidateHoleNumber(n int) error {
	if n < 1 || n > 18 {
		return fmt.Errorf("hole number must be 1-18, got %d", n)
	}
	return nil
}

// ValidateStrokeIndex checks a stroke index difficulty rank.
func ValidateStrokeIndex(idx int) error {
	if idx < 1 || idx > 18 {
		return fmt.Errorf("stroke index must be 1-18, got %d", idx)
	}
	return nil
}

// ValidateHandicap checks a raw handicap index. The USGA range is -10 to
// 54; anything outside is a data-entry error.
func ValidateHandicap(h float64) error {
	if h < -10 || h > 54 {
		return fmt.Errorf("handicap must be between -10 and 54, got %.1f", h)
	}
	return nil
}

// ValidateTrashDots checks that every dot is a known tag and none repeats.
func ValidateTrashDots(dots []TrashTag) error {
	seen := map[TrashTag]bool{}
	for _, d := range dots {
		if !validTrashTags[d] {
			return fmt.Errorf("unknown trash dot: %s", d)
		}
		if seen[d] {
			return fmt.Errorf("duplicate trash dot: %s", d)
		}
		seen[d] = true
	}
	return nil
}

// ValidateMatchFormat checks the match format.
func ValidateMatchFormat(f MatchFormat) error {
	switch f {
	case FormatSingles, FormatTeams, FormatSkins:
		return nil
	}
	return fmt.Errorf("unknown match format: %s", f)
}

// ValidateWagerAmount checks that a wager is non-negative (in cents).
// Zero is allowed: a friendly match with only trash bets live.
func ValidateWagerAmount(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("wager amount must not be negative, got %d", amount)
	}
	return nil
}
