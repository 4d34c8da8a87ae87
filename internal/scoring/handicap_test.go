package scoring

import (
	"testing"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocations_LowestPlaysScratch(t *testing.T) {
	tests := []struct {
		name      string
		handicaps []float64
		want      []int
	}{
		{"even pairing", []float64{10, 10}, []int{0, 0}},
		{"five stroke spread", []float64{5, 10}, []int{0, 5}},
		{"rounding happens before differencing", []float64{5.4, 10.6}, []int{0, 6}},
		{"plus handicap stays at scratch", []float64{-2, 8}, []int{0, 10}},
		{"foursome differential off the low man", []float64{3, 9, 12, 20}, []int{0, 6, 9, 17}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newCardBuilder(domain.FormatSingles, domain.SideBetConfig{})
			for i, h := range tt.handicaps {
				team := domain.TeamA
				if i%2 == 1 {
					team = domain.TeamB
				}
				b.player(team, h)
			}
			alloc := b.build().Allocations()
			for i, p := range b.players {
				assert.Equal(t, tt.want[i], alloc[p.UserID], "player %d", i)
			}
		})
	}
}

func TestAllocations_TeamPlayDisablesIndividualStrokes(t *testing.T) {
	b := newCardBuilder(domain.FormatTeams, domain.SideBetConfig{})
	b.player(domain.TeamA, 2)
	b.player(domain.TeamA, 8)
	b.player(domain.TeamB, 11)
	b.player(domain.TeamB, 17)
	alloc := b.build().Allocations()
	for _, p := range b.players {
		assert.Zero(t, alloc[p.UserID])
	}
}

func TestAllocations_TeamSkinsTakesNoStrokes(t *testing.T) {
	b := newCardBuilder(domain.FormatSkins, domain.SideBetConfig{TeamSkins: true})
	b.player(domain.TeamA, 4)
	b.player(domain.TeamA, 9)
	b.player(domain.TeamB, 15)
	b.player(domain.TeamB, 22)
	alloc := b.build().Allocations()
	for _, p := range b.players {
		assert.Zero(t, alloc[p.UserID])
	}
}

func TestTeamSpot(t *testing.T) {
	tests := []struct {
		name        string
		a, b        [2]float64
		wantTeam    domain.Team
		wantStrokes int
	}{
		{"B is spotted the combined difference", [2]float64{2, 8}, [2]float64{11, 17}, domain.TeamB, 18},
		{"A is spotted when heavier", [2]float64{14, 20}, [2]float64{5, 7}, domain.TeamA, 22},
		{"level teams spot nothing", [2]float64{6, 10}, [2]float64{8, 8}, domain.TeamB, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newCardBuilder(domain.FormatTeams, domain.SideBetConfig{})
			b.player(domain.TeamA, tt.a[0])
			b.player(domain.TeamA, tt.a[1])
			b.player(domain.TeamB, tt.b[0])
			b.player(domain.TeamB, tt.b[1])
			spot := b.build().TeamSpot()
			require.Equal(t, tt.wantStrokes, spot.Strokes)
			if tt.wantStrokes > 0 {
				assert.Equal(t, tt.wantTeam, spot.Team)
			}
		})
	}
}

func TestApplySpotStrokes_OneAtATimeToTheLowBall(t *testing.T) {
	// Each stroke goes to whichever teammate is currently low, so the low
	// ball keeps absorbing them.
	nets := []int{4, 6}
	applySpotStrokes(nets, 2)
	assert.Equal(t, []int{2, 6}, nets)

	nets = []int{6, 4}
	applySpotStrokes(nets, 1)
	assert.Equal(t, []int{6, 3}, nets)
}
