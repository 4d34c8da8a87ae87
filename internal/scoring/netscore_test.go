package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrokesReceived(t *testing.T) {
	tests := []struct {
		name        string
		handicap    int
		strokeIndex int
		want        int
	}{
		{"scratch gets nothing", 0, 1, 0},
		{"negative allocation gets nothing", -3, 1, 0},
		{"five strokes cover the five hardest", 5, 5, 1},
		{"five strokes miss index six", 5, 6, 0},
		{"eighteen is a full sweep", 18, 18, 1},
		{"eighteen leaves no extras on index one", 18, 1, 1},
		{"twenty wraps onto the two hardest", 20, 2, 2},
		{"twenty single stroke past the wrap", 20, 3, 1},
		{"thirty six is two full sweeps", 36, 18, 2},
		{"thirty six no extras anywhere", 36, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StrokesReceived(tt.handicap, tt.strokeIndex))
		})
	}
}

func TestNetScore_NeverExceedsGross(t *testing.T) {
	for adj := 0; adj <= 54; adj++ {
		for si := 1; si <= 18; si++ {
			assert.LessOrEqual(t, NetScore(5, adj, si), 5, "adj=%d si=%d", adj, si)
		}
	}
}

func TestNetScore_ExtraStrokesLandOnHardestHoles(t *testing.T) {
	// An adjusted handicap of 7 puts the extra stroke on exactly stroke
	// indexes 1-7; every hole still gets the zero full sweeps.
	adj := 7
	for si := 1; si <= 18; si++ {
		net := NetScore(4, adj, si)
		if si <= 7 {
			assert.Equal(t, 3, net, "index %d should stroke", si)
		} else {
			assert.Equal(t, 4, net, "index %d should not stroke", si)
		}
	}
}

func TestNetScore_MultipleOf18AbsorbsExtras(t *testing.T) {
	// adj of exactly 18k: fullStrokes absorbs everything, extra is
	// deterministically false on every hole.
	for si := 1; si <= 18; si++ {
		assert.Equal(t, 4-1, NetScore(4, 18, si))
		assert.Equal(t, 4-2, NetScore(4, 36, si))
	}
}

func TestNetScore_GrossWhenNoAllocation(t *testing.T) {
	assert.Equal(t, 6, NetScore(6, 0, 10))
	assert.Equal(t, 6, NetScore(6, -4, 10))
}
