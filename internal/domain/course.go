package domain

import "github.com/google/uuid"

// Hole is one hole of a course as supplied by the course directory.
// StrokeIndex 1 is the hardest hole and receives handicap strokes first.
type Hole struct {
	Number      int `json:"number"`
	Par         int `json:"par"`
	StrokeIndex int `json:"stroke_index"`
	Yardage     int `json:"yardage"`
}

// Course is the ordered 18-hole layout. The stroke index of a hole may be
// corrected by the scorekeeper and persisted back to the directory.
type Course struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Holes []Hole    `json:"holes"`
}

// HoleByNumber returns the hole definition, or nil if out of range.
func (c *Course) HoleByNumber(n int) *Hole {
	for i := range c.Holes {
		if c.Holes[i].Number == n {
			return &c.Holes[i]
		}
	}
	return nil
}
