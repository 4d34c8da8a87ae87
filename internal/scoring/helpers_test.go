package scoring

import (
	"time"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/google/uuid"
)

// testCourse builds an 18-hole course where hole n has stroke index n
// (hole 1 hardest), par 3 on holes 3/7/12/16, par 5 on holes 5/9/13/17,
// par 4 elsewhere.
func testCourse() domain.Course {
	c := domain.Course{ID: uuid.New(), Name: "Test National"}
	for n := 1; n <= 18; n++ {
		par := 4
		switch n {
		case 3, 7, 12, 16:
			par = 3
		case 5, 9, 13, 17:
			par = 5
		}
		c.Holes = append(c.Holes, domain.Hole{
			Number:      n,
			Par:         par,
			StrokeIndex: n,
			Yardage:     150 + 20*n,
		})
	}
	return c
}

type cardBuilder struct {
	match   domain.Match
	course  domain.Course
	players []domain.PlayerInMatch
	scores  []domain.HoleScore
	presses []domain.Press
}

func newCardBuilder(format domain.MatchFormat, cfg domain.SideBetConfig) *cardBuilder {
	return &cardBuilder{
		match: domain.Match{
			ID:          uuid.New(),
			Format:      format,
			WagerAmount: 1000,
			WagerType:   domain.WagerNassau,
			Status:      domain.MatchInProgress,
			SideBets:    cfg,
		},
		course: testCourse(),
	}
}

func (b *cardBuilder) player(team domain.Team, handicap float64) uuid.UUID {
	p := domain.PlayerInMatch{
		UserID:          uuid.New(),
		MatchID:         b.match.ID,
		Team:            team,
		InitialHandicap: handicap,
		Handicap:        handicap,
		DisplayName:     string(team),
	}
	b.players = append(b.players, p)
	return p.UserID
}

func (b *cardBuilder) score(hole int, player uuid.UUID, gross int, dots ...domain.TrashTag) {
	b.scores = append(b.scores, domain.HoleScore{
		MatchID:    b.match.ID,
		HoleNumber: hole,
		PlayerID:   player,
		Gross:      gross,
		TrashDots:  dots,
		UpdatedAt:  time.Now(),
	})
}

func (b *cardBuilder) press(startHole int, team domain.Team) {
	b.presses = append(b.presses, domain.Press{
		ID:            uuid.New(),
		MatchID:       b.match.ID,
		StartHole:     startHole,
		PressedByTeam: team,
		Status:        domain.PressActive,
		CreatedAt:     time.Now(),
	})
}

func (b *cardBuilder) build() *Card {
	return NewCard(b.match, b.course, b.players, b.scores, b.presses)
}
