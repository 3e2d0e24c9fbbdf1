package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/smart-lamp/internal/driver/fake"
	"github.com/coreman2200/smart-lamp/internal/layout"
	"github.com/coreman2200/smart-lamp/internal/render"
)

// fixed always returns lo+off, clamped into [lo, hi).
type fixed struct{ off int }

func (f fixed) Range(lo, hi int) int {
	if lo+f.off >= hi {
		return hi - 1
	}
	return lo + f.off
}

var (
	always = fixed{0}
	never  = fixed{1 << 20}
)

func newContext(t *testing.T, w, h int, src render.Source) *render.Context {
	t.Helper()
	fb, err := render.NewFramebuffer(layout.New(w, h), &fake.Driver{})
	require.NoError(t, err)
	return &render.Context{Width: w, Height: h, Count: w * h, FB: fb, Rand: src}
}

func columnBlack(fb *render.Framebuffer, x int) bool {
	for y := 0; y < fb.Height(); y++ {
		if !fb.Pixel(x, y).IsBlack() {
			return false
		}
	}
	return true
}

func TestSparkMovesOneRowPerTick(t *testing.T) {
	ctx := newContext(t, 8, 10, never)
	ctx.FB.DrawPixel(3, 9, render.FromPacked(Spark))

	require.NoError(t, New().Draw(ctx))

	assert.Equal(t, render.FromPacked(Spark-Fade), ctx.FB.Pixel(3, 8))
	assert.Equal(t, render.FromPacked(Spark-Fade), ctx.FB.Pixel(3, 9))
	assert.True(t, ctx.FB.Pixel(3, 7).IsBlack())
}

func TestSparkDecaysWithinBound(t *testing.T) {
	const h = 10
	ctx := newContext(t, 8, h, never)
	ctx.FB.DrawPixel(3, h-1, render.FromPacked(Spark))
	e := New()
	// 8 ticks to fade out on the last row, then h-2 more to scroll off.
	last := 8 + h - 2
	for i := 1; i < last; i++ {
		require.NoError(t, e.Draw(ctx))
	}
	assert.False(t, columnBlack(ctx.FB, 3))
	require.NoError(t, e.Draw(ctx))
	assert.True(t, columnBlack(ctx.FB, 3))
}

func TestEmptyColumnsSpawn(t *testing.T) {
	ctx := newContext(t, 8, 10, always)
	require.NoError(t, New().Draw(ctx))
	for x := 0; x < 8; x++ {
		assert.Equal(t, render.FromPacked(Spark), ctx.FB.Pixel(x, 9))
		assert.Equal(t, render.FromPacked(Spark), ctx.FB.Pixel(x, 8))
		assert.True(t, ctx.FB.Pixel(x, 7).IsBlack())
	}
}

func TestDimPixelGoesDark(t *testing.T) {
	ctx := newContext(t, 1, 3, never)
	ctx.FB.DrawPixel(0, 2, render.FromPacked(0x001F00))
	require.NoError(t, New().Draw(ctx))
	assert.True(t, columnBlack(ctx.FB, 0))
}

func TestFadeIsPackedSubtraction(t *testing.T) {
	ctx := newContext(t, 1, 2, never)
	ctx.FB.DrawPixel(0, 1, render.FromPacked(0xFF1000))
	require.NoError(t, New().Draw(ctx))
	assert.Equal(t, uint32(0xFEF000), ctx.FB.Pixel(0, 1).Packed())
}
