package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexIsBijection(t *testing.T) {
	for _, l := range []Serpentine{
		New(8, 10),
		New(16, 16),
		New(3, 1),
		{Width: 8, Height: 10, QuirkColumn: -1},
	} {
		seen := make(map[int][2]int, l.Count())
		for x := 0; x < l.Width; x++ {
			for y := 0; y < l.Height; y++ {
				i := l.Index(x, y)
				require.GreaterOrEqual(t, i, 0)
				require.Less(t, i, l.Count())
				prev, dup := seen[i]
				require.Falsef(t, dup, "%dx%d: (%d,%d) aliases (%d,%d) at %d", l.Width, l.Height, x, y, prev[0], prev[1], i)
				seen[i] = [2]int{x, y}
			}
		}
		assert.Len(t, seen, l.Count())
	}
}

func TestIndexSerpentineWithQuirk(t *testing.T) {
	l := New(8, 10)
	cases := []struct {
		x, y, want int
	}{
		{0, 0, 0},
		{0, 9, 9},
		{1, 0, 19},
		{1, 9, 10},
		{2, 3, 23},
		{5, 0, 59},
		// column 7 runs upward like the even columns
		{7, 0, 70},
		{7, 9, 79},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, l.Index(c.x, c.y), "Index(%d,%d)", c.x, c.y)
	}
}

func TestIndexWithoutQuirk(t *testing.T) {
	l := Serpentine{Width: 8, Height: 10, QuirkColumn: -1}
	assert.Equal(t, 79, l.Index(7, 0))
	assert.Equal(t, 70, l.Index(7, 9))
}

func TestContains(t *testing.T) {
	l := New(8, 10)
	assert.True(t, l.Contains(0, 0))
	assert.True(t, l.Contains(7, 9))
	assert.False(t, l.Contains(-1, 0))
	assert.False(t, l.Contains(8, 0))
	assert.False(t, l.Contains(0, 10))
	assert.False(t, l.Contains(0, -1))
}
