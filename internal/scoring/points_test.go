package scoring

import (
	"testing"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolePoints_Singles(t *testing.T) {
	t.Run("stroke hole pushes on equal nets", func(t *testing.T) {
		b := newCardBuilder(domain.FormatSingles, domain.SideBetConfig{})
		a := b.player(domain.TeamA, 5)
		bp := b.player(domain.TeamB, 10)
		// Hole 3: par 3, stroke index 3 <= 5 so B strokes.
		b.score(3, a, 4)
		b.score(3, bp, 5)
		pts, ok := b.build().HolePoints(3)
		require.True(t, ok)
		assert.Equal(t, Points{}, pts)
	})

	t.Run("non-stroke hole plays straight up", func(t *testing.T) {
		b := newCardBuilder(domain.FormatSingles, domain.SideBetConfig{})
		a := b.player(domain.TeamA, 5)
		bp := b.player(domain.TeamB, 10)
		// Hole 10: stroke index 10 > 5, no stroke for B.
		b.score(10, a, 4)
		b.score(10, bp, 6)
		pts, ok := b.build().HolePoints(10)
		require.True(t, ok)
		assert.Equal(t, Points{A: 1}, pts)
	})

	t.Run("birdies double on the winner gross", func(t *testing.T) {
		b := newCardBuilder(domain.FormatSingles, domain.SideBetConfig{BirdiesDouble: true})
		a := b.player(domain.TeamA, 0)
		bp := b.player(domain.TeamB, 0)
		// Hole 10 is par 4; a gross 3 is a birdie.
		b.score(10, a, 3)
		b.score(10, bp, 5)
		pts, ok := b.build().HolePoints(10)
		require.True(t, ok)
		assert.Equal(t, Points{A: 2}, pts)
	})

	t.Run("net win without a gross birdie stays single", func(t *testing.T) {
		b := newCardBuilder(domain.FormatSingles, domain.SideBetConfig{BirdiesDouble: true})
		a := b.player(domain.TeamA, 0)
		bp := b.player(domain.TeamB, 18)
		// B nets 3 on a par 4 via the stroke, but gross 4 is no birdie.
		b.score(10, a, 4)
		b.score(10, bp, 4)
		pts, ok := b.build().HolePoints(10)
		require.True(t, ok)
		assert.Equal(t, Points{B: 1}, pts)
	})

	t.Run("incomplete hole yields nothing", func(t *testing.T) {
		b := newCardBuilder(domain.FormatSingles, domain.SideBetConfig{})
		a := b.player(domain.TeamA, 5)
		b.player(domain.TeamB, 10)
		b.score(4, a, 4)
		_, ok := b.build().HolePoints(4)
		assert.False(t, ok)
	})
}

func TestHolePoints_SinglesZeroSum(t *testing.T) {
	// Without bonuses, a 1v1 hole is zero-sum: at most one side scores.
	b := newCardBuilder(domain.FormatSingles, domain.SideBetConfig{})
	a := b.player(domain.TeamA, 5)
	bp := b.player(domain.TeamB, 12)
	grosses := [][2]int{{4, 5}, {5, 4}, {4, 4}, {3, 6}, {6, 3}}
	for i, g := range grosses {
		b.score(i+1, a, g[0])
		b.score(i+1, bp, g[1])
	}
	c := b.build()
	for n := 1; n <= len(grosses); n++ {
		pts, ok := c.HolePoints(n)
		require.True(t, ok)
		total := pts.A + pts.B
		assert.LessOrEqual(t, total, 1, "hole %d", n)
		assert.False(t, pts.A > 0 && pts.B > 0, "hole %d both sides scored", n)
	}
}

func TestHolePoints_TeamsHighLow(t *testing.T) {
	t.Run("split contests", func(t *testing.T) {
		b := newCardBuilder(domain.FormatTeams, domain.SideBetConfig{})
		a1 := b.player(domain.TeamA, 10)
		a2 := b.player(domain.TeamA, 10)
		b1 := b.player(domain.TeamB, 10)
		b2 := b.player(domain.TeamB, 10)
		// Hole 18 (no spot strokes reach index 18 for level teams).
		// A takes low ball (3), B takes aggregate (4+7=11 vs 5+5=10).
		b.score(18, a1, 3)
		b.score(18, a2, 8)
		b.score(18, b1, 5)
		b.score(18, b2, 5)
		pts, ok := b.build().HolePoints(18)
		require.True(t, ok)
		assert.Equal(t, Points{A: 1, B: 1}, pts)
	})

	t.Run("sweep is worth two", func(t *testing.T) {
		b := newCardBuilder(domain.FormatTeams, domain.SideBetConfig{})
		a1 := b.player(domain.TeamA, 10)
		a2 := b.player(domain.TeamA, 10)
		b1 := b.player(domain.TeamB, 10)
		b2 := b.player(domain.TeamB, 10)
		b.score(18, a1, 4)
		b.score(18, a2, 4)
		b.score(18, b1, 5)
		b.score(18, b2, 5)
		pts, ok := b.build().HolePoints(18)
		require.True(t, ok)
		assert.Equal(t, Points{A: 2}, pts)
	})

	t.Run("team spot lands on the low ball", func(t *testing.T) {
		// Team B is spotted 2 strokes (combined 22 vs 20): stroke index 1
		// and 2 holes. On hole 1 B's low ball gets a stroke.
		b := newCardBuilder(domain.FormatTeams, domain.SideBetConfig{})
		a1 := b.player(domain.TeamA, 10)
		a2 := b.player(domain.TeamA, 10)
		b1 := b.player(domain.TeamB, 10)
		b2 := b.player(domain.TeamB, 12)
		b.score(1, a1, 4)
		b.score(1, a2, 5)
		b.score(1, b1, 4) // nets 3 after the spot stroke
		b.score(1, b2, 5)
		pts, ok := b.build().HolePoints(1)
		require.True(t, ok)
		// B wins low ball 3 vs 4 and aggregate 8 vs 9.
		assert.Equal(t, Points{B: 2}, pts)
	})

	t.Run("additive birdie doubling", func(t *testing.T) {
		b := newCardBuilder(domain.FormatTeams, domain.SideBetConfig{BirdiesDouble: true})
		a1 := b.player(domain.TeamA, 10)
		a2 := b.player(domain.TeamA, 10)
		b1 := b.player(domain.TeamB, 10)
		b2 := b.player(domain.TeamB, 10)
		// Hole 18 par 4: A birdies once, wins both contests.
		b.score(18, a1, 3)
		b.score(18, a2, 5)
		b.score(18, b1, 5)
		b.score(18, b2, 5)
		pts, ok := b.build().HolePoints(18)
		require.True(t, ok)
		// Low ball 2 (birdie bump) + aggregate 2 (same birdie on the side).
		assert.Equal(t, Points{A: 4}, pts)
	})
}

func TestHolePoints_GreenieBonus(t *testing.T) {
	t.Run("par three with a greenie dot", func(t *testing.T) {
		b := newCardBuilder(domain.FormatSingles, domain.SideBetConfig{Greenies: true})
		a := b.player(domain.TeamA, 0)
		bp := b.player(domain.TeamB, 0)
		// Hole 3 is par 3. B wins the hole but A holds the greenie.
		b.score(3, a, 4, domain.TrashGreenie)
		b.score(3, bp, 3)
		pts, ok := b.build().HolePoints(3)
		require.True(t, ok)
		assert.Equal(t, Points{A: 1, B: 1}, pts)
	})

	t.Run("greenie ignored off par threes", func(t *testing.T) {
		b := newCardBuilder(domain.FormatSingles, domain.SideBetConfig{Greenies: true})
		a := b.player(domain.TeamA, 0)
		bp := b.player(domain.TeamB, 0)
		b.score(10, a, 4, domain.TrashGreenie)
		b.score(10, bp, 4)
		pts, ok := b.build().HolePoints(10)
		require.True(t, ok)
		assert.Equal(t, Points{}, pts)
	})

	t.Run("greenie disabled is inert", func(t *testing.T) {
		b := newCardBuilder(domain.FormatSingles, domain.SideBetConfig{})
		a := b.player(domain.TeamA, 0)
		bp := b.player(domain.TeamB, 0)
		b.score(3, a, 3, domain.TrashGreenie)
		b.score(3, bp, 3)
		pts, ok := b.build().HolePoints(3)
		require.True(t, ok)
		assert.Equal(t, Points{}, pts)
	})
}
