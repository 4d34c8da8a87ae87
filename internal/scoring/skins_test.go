package scoring

import (
	"testing"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skinsFoursome(cfg domain.SideBetConfig) (*cardBuilder, [4]uuid.UUID) {
	b := newCardBuilder(domain.FormatSkins, cfg)
	var ids [4]uuid.UUID
	ids[0] = b.player(domain.TeamA, 0)
	ids[1] = b.player(domain.TeamA, 0)
	ids[2] = b.player(domain.TeamB, 0)
	ids[3] = b.player(domain.TeamB, 0)
	return b, ids
}

func TestSkins_CarryOver(t *testing.T) {
	b, ids := skinsFoursome(domain.SideBetConfig{SkinValue: 500})
	// Holes 1-2 tie, hole 3 has a sole winner: the pot is 1 base + 2
	// carried units.
	for hole := 1; hole <= 2; hole++ {
		for _, id := range ids {
			b.score(hole, id, 4)
		}
	}
	b.score(3, ids[0], 2)
	b.score(3, ids[1], 4)
	b.score(3, ids[2], 4)
	b.score(3, ids[3], 4)
	res := b.build().Skins()

	require.Len(t, res.Wins, 1)
	win := res.Wins[0]
	assert.Equal(t, 3, win.Hole)
	assert.Equal(t, ids[0], win.WinnerID)
	assert.Equal(t, 3, win.Units)
	assert.Equal(t, 2, win.Carried)
	assert.Zero(t, res.OpenCarry)
	assert.Equal(t, 3, res.Counts[ids[0]])
}

func TestSkins_TieLeavesCarryOpen(t *testing.T) {
	b, ids := skinsFoursome(domain.SideBetConfig{SkinValue: 500})
	for _, id := range ids {
		b.score(1, id, 4)
	}
	res := b.build().Skins()
	assert.Empty(t, res.Wins)
	assert.Equal(t, 1, res.OpenCarry)
}

func TestSkins_IncompleteHoleDoesNotCount(t *testing.T) {
	b, ids := skinsFoursome(domain.SideBetConfig{SkinValue: 500})
	b.score(1, ids[0], 3)
	b.score(1, ids[1], 4)
	b.score(1, ids[2], 4)
	// ids[3] has not scored hole 1 yet.
	res := b.build().Skins()
	assert.Empty(t, res.Wins)
	assert.Zero(t, res.OpenCarry)
}

func TestSkins_IndividualNetOffDifferential(t *testing.T) {
	b := newCardBuilder(domain.FormatSkins, domain.SideBetConfig{SkinValue: 500})
	low := b.player(domain.TeamA, 4)
	high := b.player(domain.TeamB, 9)
	// Differential gives high 5 strokes; hole 2 (index 2) strokes.
	b.score(2, low, 4)
	b.score(2, high, 4) // nets 3
	res := b.build().Skins()
	require.Len(t, res.Wins, 1)
	assert.Equal(t, high, res.Wins[0].WinnerID)
}

func TestSkins_TeamBestBallGross(t *testing.T) {
	b, ids := skinsFoursome(domain.SideBetConfig{SkinValue: 500, TeamSkins: true})
	// Handicaps are ignored in team skins; best ball gross decides.
	b.score(1, ids[0], 3)
	b.score(1, ids[1], 6)
	b.score(1, ids[2], 4)
	b.score(1, ids[3], 4)
	res := b.build().Skins()
	require.Len(t, res.Wins, 1)
	assert.Equal(t, ids[0], res.Wins[0].WinnerID)
}

func TestSkins_TeamBestBallTieCarries(t *testing.T) {
	b, ids := skinsFoursome(domain.SideBetConfig{SkinValue: 500, TeamSkins: true})
	b.score(1, ids[0], 3)
	b.score(1, ids[1], 6)
	b.score(1, ids[2], 3)
	b.score(1, ids[3], 5)
	res := b.build().Skins()
	assert.Empty(t, res.Wins)
	assert.Equal(t, 1, res.OpenCarry)
}

func TestSkins_BonusUnits(t *testing.T) {
	b, ids := skinsFoursome(domain.SideBetConfig{SkinValue: 500, BonusSkins: true})
	// Hole 5 is par 5: ids[0] eagles (3 under... gross 3 is -2), ids[1]
	// birdies with a pin dot, others par.
	b.score(5, ids[0], 3)
	b.score(5, ids[1], 4, domain.TrashPin)
	b.score(5, ids[2], 5)
	b.score(5, ids[3], 5)
	res := b.build().Skins()

	units := map[uuid.UUID]int{}
	for _, bonus := range res.Bonuses {
		units[bonus.PlayerID] += bonus.Units
	}
	assert.Equal(t, 2, units[ids[0]], "eagle is two units")
	assert.Equal(t, 2, units[ids[1]], "pin dot plus birdie")
	assert.Zero(t, units[ids[2]])
}

func TestSkins_BonusDisabled(t *testing.T) {
	b, ids := skinsFoursome(domain.SideBetConfig{SkinValue: 500})
	b.score(5, ids[0], 3)
	b.score(5, ids[1], 5)
	b.score(5, ids[2], 5)
	b.score(5, ids[3], 5)
	res := b.build().Skins()
	assert.Empty(t, res.Bonuses)
}
