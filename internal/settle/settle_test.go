package settle

import (
	"testing"
	"time"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/dt604/bloodsheet-golf/internal/scoring"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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
		c.Holes = append(c.Holes, domain.Hole{Number: n, Par: par, StrokeIndex: n, Yardage: 300})
	}
	return c
}

type fixture struct {
	match   domain.Match
	players []domain.PlayerInMatch
	scores  []domain.HoleScore
	presses []domain.Press
	course  domain.Course
}

func newFixture(format domain.MatchFormat, wager int64, cfg domain.SideBetConfig) *fixture {
	return &fixture{
		match: domain.Match{
			ID:          uuid.New(),
			Format:      format,
			WagerAmount: wager,
			WagerType:   domain.WagerNassau,
			Status:      domain.MatchInProgress,
			SideBets:    cfg,
		},
		course: testCourse(),
	}
}

func (f *fixture) player(team domain.Team, handicap float64) uuid.UUID {
	p := domain.PlayerInMatch{
		UserID:   uuid.New(),
		MatchID:  f.match.ID,
		Team:     team,
		Handicap: handicap, InitialHandicap: handicap,
		DisplayName: string(team),
	}
	f.players = append(f.players, p)
	return p.UserID
}

func (f *fixture) score(hole int, player uuid.UUID, gross int, dots ...domain.TrashTag) {
	f.scores = append(f.scores, domain.HoleScore{
		MatchID: f.match.ID, HoleNumber: hole, PlayerID: player,
		Gross: gross, TrashDots: dots, UpdatedAt: time.Now(),
	})
}

func (f *fixture) press(startHole int, team domain.Team) {
	f.presses = append(f.presses, domain.Press{
		ID: uuid.New(), MatchID: f.match.ID, StartHole: startHole,
		PressedByTeam: team, Status: domain.PressActive, CreatedAt: time.Now(),
	})
}

func (f *fixture) card() *scoring.Card {
	return scoring.NewCard(f.match, f.course, f.players, f.scores, f.presses)
}

func TestCompute_SinglesEndToEnd(t *testing.T) {
	// Handicaps 5 and 10: adjusted differentials 0 and 5. B strokes on
	// index 1-5 holes only.
	f := newFixture(domain.FormatSingles, 1000, domain.SideBetConfig{})
	a := f.player(domain.TeamA, 5)
	b := f.player(domain.TeamB, 10)

	// Hole 3 (index 3, par 3): A 4 net 4, B 5 net 4 -> push.
	f.score(3, a, 4)
	f.score(3, b, 5)
	// Hole 10 (index 10, no stroke): A 4 vs B 6 -> A wins a point.
	f.score(10, a, 4)
	f.score(10, b, 6)

	c := f.card()
	front := c.SegmentStatus(scoring.Front)
	assert.Equal(t, 0, front.PointsA)
	overall := c.SegmentStatus(scoring.Overall)
	assert.Equal(t, 1, overall.HolesUp())

	// No segment is complete, so the ledger is empty for both viewers.
	assert.Empty(t, Compute(c, a).Items)
	assert.Empty(t, Compute(c, b).Items)
}

func TestCompute_NassauSegments(t *testing.T) {
	f := newFixture(domain.FormatSingles, 1000, domain.SideBetConfig{})
	a := f.player(domain.TeamA, 0)
	b := f.player(domain.TeamB, 0)
	// A wins the front 2-1, B wins the back 3-0; overall B by 2.
	for n := 1; n <= 18; n++ {
		ga, gb := 4, 4
		switch n {
		case 1, 2:
			gb = 5
		case 9:
			ga = 5
		case 10, 11, 12:
			ga = 5
		}
		f.score(n, a, ga)
		f.score(n, b, gb)
	}

	l := Compute(f.card(), a)
	require.Len(t, l.Items, 3)
	assert.Equal(t, "Front 9", l.Items[0].Label)
	assert.Equal(t, int64(1000), l.Items[0].Amount)
	assert.Equal(t, "Back 9", l.Items[1].Label)
	assert.Equal(t, int64(-1000), l.Items[1].Amount)
	assert.Equal(t, "Overall", l.Items[2].Label)
	assert.Equal(t, int64(-1000), l.Items[2].Amount)
	assert.Equal(t, int64(-1000), l.Total)

	// The same ledger from B's seat is the mirror image.
	lb := Compute(f.card(), b)
	assert.Equal(t, int64(1000), lb.Total)
	assert.True(t, lb.Participant)
}

func TestCompute_IncompleteSegmentOmitted(t *testing.T) {
	f := newFixture(domain.FormatSingles, 1000, domain.SideBetConfig{})
	a := f.player(domain.TeamA, 0)
	b := f.player(domain.TeamB, 0)
	for n := 1; n <= 12; n++ {
		f.score(n, a, 4)
		f.score(n, b, 5)
	}
	l := Compute(f.card(), a)
	// Front settles; back and overall are incomplete and omitted, never
	// forced to a push.
	require.Len(t, l.Items, 1)
	assert.Equal(t, "Front 9", l.Items[0].Label)
	assert.Equal(t, int64(1000), l.Total)
}

func TestCompute_PressItems(t *testing.T) {
	f := newFixture(domain.FormatSingles, 1000, domain.SideBetConfig{})
	a := f.player(domain.TeamA, 0)
	b := f.player(domain.TeamB, 0)
	for n := 1; n <= 18; n++ {
		ga := 4
		gb := 5
		if n >= 15 {
			ga, gb = 5, 4 // B takes the closing stretch
		}
		f.score(n, a, ga)
		f.score(n, b, gb)
	}
	f.press(15, domain.TeamB)
	f.press(17, domain.TeamB)

	l := Compute(f.card(), b)
	var pressItems []LineItem
	for _, it := range l.Items {
		if it.IsPress {
			pressItems = append(pressItems, it)
		}
	}
	require.Len(t, pressItems, 2)
	assert.Equal(t, "Press (hole 15)", pressItems[0].Label)
	assert.Equal(t, int64(1000), pressItems[0].Amount)
	assert.Equal(t, "Press (hole 17)", pressItems[1].Label)
	assert.Equal(t, int64(1000), pressItems[1].Amount)
}

func TestCompute_TrashScalingUnevenTeams(t *testing.T) {
	// 1v2: the solo player's net dots scale by the opposing team size.
	f := newFixture(domain.FormatSingles, 0, domain.SideBetConfig{
		TrashBets:  []domain.TrashTag{domain.TrashSandie},
		TrashValue: 200,
	})
	solo := f.player(domain.TeamA, 0)
	b1 := f.player(domain.TeamB, 0)
	b2 := f.player(domain.TeamB, 0)
	f.score(1, solo, 4, domain.TrashSandie)
	f.score(1, b1, 4)
	f.score(1, b2, 4)

	l := Compute(f.card(), solo)
	require.Len(t, l.Items, 1)
	// 1 net dot x 200 x 2 opponents.
	assert.Equal(t, int64(400), l.Items[0].Amount)
}

func TestCompute_TrashEvenTeamsUnscaled(t *testing.T) {
	f := newFixture(domain.FormatSingles, 0, domain.SideBetConfig{
		TrashBets:  []domain.TrashTag{domain.TrashSnake},
		TrashValue: 200,
	})
	a := f.player(domain.TeamA, 0)
	b := f.player(domain.TeamB, 0)
	f.score(1, a, 4)
	f.score(1, b, 4, domain.TrashSnake)
	f.score(2, a, 4, domain.TrashSnake)
	f.score(2, b, 4, domain.TrashSnake)

	l := Compute(f.card(), a)
	require.Len(t, l.Items, 1)
	// 1 won vs 2 lost: net -1 x 200.
	assert.Equal(t, int64(-200), l.Items[0].Amount)
}

func TestCompute_Par3Contest(t *testing.T) {
	f := newFixture(domain.FormatSingles, 0, domain.SideBetConfig{
		Par3Contest: true,
		ContestPot:  500,
	})
	a := f.player(domain.TeamA, 0)
	b := f.player(domain.TeamB, 0)
	// Par 3s are holes 3, 7, 12, 16. A wins the aggregate by one.
	for i, n := range []int{3, 7, 12, 16} {
		ga := 3
		if i == 0 {
			ga = 2
		}
		f.score(n, a, ga)
		f.score(n, b, 3)
	}

	l := Compute(f.card(), a)
	require.Len(t, l.Items, 1)
	assert.Equal(t, "Par 3s", l.Items[0].Label)
	assert.Equal(t, int64(500), l.Items[0].Amount)

	lb := Compute(f.card(), b)
	assert.Equal(t, int64(-500), lb.Items[0].Amount)
}

func TestCompute_Par3ContestWaitsForAllPar3s(t *testing.T) {
	f := newFixture(domain.FormatSingles, 0, domain.SideBetConfig{
		Par3Contest: true,
		ContestPot:  500,
	})
	a := f.player(domain.TeamA, 0)
	b := f.player(domain.TeamB, 0)
	f.score(3, a, 2)
	f.score(3, b, 3)
	l := Compute(f.card(), a)
	assert.Empty(t, l.Items)
}

func TestCompute_SkinsCarryPayout(t *testing.T) {
	// Spec scenario: ties on holes 1-2, sole winner on hole 3 with a $5
	// skin: pot is $15 and the winner's item in a foursome is $45.
	f := newFixture(domain.FormatSkins, 0, domain.SideBetConfig{SkinValue: 500})
	var ids [4]uuid.UUID
	ids[0] = f.player(domain.TeamA, 0)
	ids[1] = f.player(domain.TeamA, 0)
	ids[2] = f.player(domain.TeamB, 0)
	ids[3] = f.player(domain.TeamB, 0)
	for hole := 1; hole <= 2; hole++ {
		for _, id := range ids {
			f.score(hole, id, 4)
		}
	}
	f.score(3, ids[0], 2)
	f.score(3, ids[1], 3)
	f.score(3, ids[2], 3)
	f.score(3, ids[3], 3)

	l := Compute(f.card(), ids[0])
	require.Len(t, l.Items, 1)
	assert.Equal(t, "Skin", l.Items[0].Label)
	assert.Equal(t, int64(4500), l.Items[0].Amount)
	assert.Equal(t, "Holes 1-3, 2 carried", l.Items[0].Sublabel)

	loser := Compute(f.card(), ids[1])
	assert.Equal(t, int64(-1500), loser.Items[0].Amount)
}

func TestCompute_FixedPot(t *testing.T) {
	f := newFixture(domain.FormatSkins, 0, domain.SideBetConfig{SkinValue: 500, FixedPot: true})
	a := f.player(domain.TeamA, 0)
	b := f.player(domain.TeamB, 0)
	// A takes hole 1, the rest halve: A has the most skins at the end.
	f.score(1, a, 3)
	f.score(1, b, 4)
	for n := 2; n <= 18; n++ {
		f.score(n, a, 4)
		f.score(n, b, 4)
	}

	l := Compute(f.card(), a)
	require.Len(t, l.Items, 1)
	assert.Equal(t, "Skins pot", l.Items[0].Label)
	assert.Equal(t, int64(500), l.Items[0].Amount)

	// Mid-round the fixed pot pays nothing.
	f2 := newFixture(domain.FormatSkins, 0, domain.SideBetConfig{SkinValue: 500, FixedPot: true})
	a2 := f2.player(domain.TeamA, 0)
	b2 := f2.player(domain.TeamB, 0)
	f2.score(1, a2, 3)
	f2.score(1, b2, 4)
	assert.Empty(t, Compute(f2.card(), a2).Items)
}

func TestCompute_BonusSkinItems(t *testing.T) {
	f := newFixture(domain.FormatSkins, 0, domain.SideBetConfig{SkinValue: 500, BonusSkins: true})
	a := f.player(domain.TeamA, 0)
	b := f.player(domain.TeamB, 0)
	c := f.player(domain.TeamB, 0)
	// Hole 5 (par 5): A eagles for 2 units; halved otherwise so no skin
	// confusion... B and C par.
	f.score(5, a, 3)
	f.score(5, b, 5)
	f.score(5, c, 5)

	l := Compute(f.card(), a)
	var bonus *LineItem
	for i := range l.Items {
		if l.Items[i].Label == "Bonus skins" {
			bonus = &l.Items[i]
		}
	}
	require.NotNil(t, bonus)
	// 2 units x 2 opponents x 500.
	assert.Equal(t, int64(2000), bonus.Amount)

	lb := Compute(f.card(), b)
	for _, it := range lb.Items {
		if it.Label == "Bonus skins" {
			assert.Equal(t, int64(-1000), it.Amount)
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	f := newFixture(domain.FormatSingles, 1000, domain.SideBetConfig{
		TrashBets:  []domain.TrashTag{domain.TrashGreenie},
		TrashValue: 100,
	})
	a := f.player(domain.TeamA, 4)
	b := f.player(domain.TeamB, 11)
	for n := 1; n <= 18; n++ {
		f.score(n, a, 4)
		f.score(n, b, 5, domain.TrashGreenie)
	}
	f.press(12, domain.TeamB)

	first := Compute(f.card(), a)
	second := Compute(f.card(), a)
	assert.Equal(t, first, second)
}

func TestComputeGroup(t *testing.T) {
	shared := uuid.New()

	// Match 1: shared player wins the overall only.
	f1 := newFixture(domain.FormatSingles, 1000, domain.SideBetConfig{})
	f1.players = append(f1.players, domain.PlayerInMatch{
		UserID: shared, MatchID: f1.match.ID, Team: domain.TeamA, DisplayName: "A",
	})
	opp1 := f1.player(domain.TeamB, 0)
	for n := 1; n <= 18; n++ {
		gb := 4
		if n == 1 {
			gb = 5
		}
		f1.score(n, shared, 4)
		f1.score(n, opp1, gb)
	}

	// Match 2: the shared player is not in it.
	f2 := newFixture(domain.FormatSingles, 2000, domain.SideBetConfig{})
	x := f2.player(domain.TeamA, 0)
	y := f2.player(domain.TeamB, 0)
	for n := 1; n <= 18; n++ {
		f2.score(n, x, 4)
		f2.score(n, y, 5)
	}

	g := ComputeGroup([]*scoring.Card{f1.card(), f2.card()}, shared)
	require.Len(t, g.Matches, 2)
	assert.True(t, g.Matches[0].Participant)
	assert.False(t, g.Matches[1].Participant)
	// Front +1000, back push, overall +1000; the context match never
	// enters the shared player's net.
	assert.Equal(t, int64(2000), g.Total)
}
