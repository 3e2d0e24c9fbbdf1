package matrix

import "github.com/coreman2200/smart-lamp/internal/render"

const (
	// SparkOdds is the 1-in-N chance an empty column spawns a spark.
	SparkOdds = 8
	// Spark is the colour of a fresh drop.
	Spark uint32 = 0x00FF00
	// Fade is subtracted from the packed colour each tick; anything below it
	// goes dark.
	Fade uint32 = 0x002000
)

// Effect is the green "digital rain": drops spawn on row height-1, fade in
// place there and are carried one row toward row 0 per tick.
type Effect struct{}

func New() *Effect { return &Effect{} }

func (e *Effect) Name() string { return "matrix" }

func (e *Effect) Draw(ctx *render.Context) error {
	fb := ctx.FB
	bottom := ctx.Height - 1
	for x := 0; x < ctx.Width; x++ {
		c := fb.Pixel(x, bottom).Packed()
		switch {
		case c == 0:
			var v uint32
			if ctx.Rand.Range(0, SparkOdds) == 0 {
				v = Spark
			}
			fb.DrawPixel(x, bottom, render.FromPacked(v))
		case c < Fade:
			fb.DrawPixel(x, bottom, render.Black)
		default:
			fb.DrawPixel(x, bottom, render.FromPacked(c-Fade))
		}
	}
	for x := 0; x < ctx.Width; x++ {
		for y := 0; y < ctx.Height-1; y++ {
			fb.DrawPixel(x, y, fb.Pixel(x, y+1))
		}
	}
	return fb.Apply()
}
