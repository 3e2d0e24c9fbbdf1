package snow

import "github.com/coreman2200/smart-lamp/internal/render"

const (
	// SpawnOdds is the 1-in-N chance a flake is seeded in a free column.
	SpawnOdds = 10
	// Flake is the brightest flake colour; dimmer ones subtract FlakeStep.
	Flake     uint32 = 0xE0FFFF
	FlakeStep uint32 = 0x101010
	// FlakeLevels is the number of brightness steps a flake can take.
	FlakeLevels = 4
)

// Effect seeds near-white flakes on the last row and moves every row one
// step toward row 0 per tick.
type Effect struct{}

func New() *Effect { return &Effect{} }

func (e *Effect) Name() string { return "snow" }

func (e *Effect) Draw(ctx *render.Context) error {
	fb := ctx.FB
	for x := 0; x < ctx.Width; x++ {
		for y := 0; y < ctx.Height-1; y++ {
			fb.DrawPixel(x, y, fb.Pixel(x, y+1))
		}
	}
	last := ctx.Height - 1
	for x := 0; x < ctx.Width; x++ {
		// a flake needs a free cell in front of it
		if fb.Pixel(x, last-1).IsBlack() && ctx.Rand.Range(0, SpawnOdds) == 0 {
			level := uint32(ctx.Rand.Range(0, FlakeLevels))
			fb.DrawPixel(x, last, render.FromPacked(Flake-FlakeStep*level))
		} else {
			fb.DrawPixel(x, last, render.Black)
		}
	}
	return fb.Apply()
}
