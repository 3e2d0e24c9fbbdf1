package fire

import "github.com/coreman2200/smart-lamp/internal/render"

const (
	// Rows and Cols size the heat simulation regardless of the panel.
	Rows = 8
	Cols = 16

	// ProgressFull is where the heat grid scrolls by one row; each tick
	// adds ProgressStep, so a scroll lands every fourth tick.
	ProgressFull = 100
	ProgressStep = 30

	// BaseHue is the orange the hue mask is added to.
	BaseHue = 40

	// Ember values are drawn from [EmberMin, EmberMax).
	EmberMin = 64
	EmberMax = 255

	// TipOdds is the 1-in-N chance the flame tip row keeps a lit pixel.
	TipOdds = 20
)

// valueMask darkens the flame toward its edges and top.
var valueMask = [Rows][Cols]uint8{
	{32, 0, 0, 0, 0, 0, 0, 32, 32, 0, 0, 0, 0, 0, 0, 32},
	{64, 0, 0, 0, 0, 0, 0, 64, 64, 0, 0, 0, 0, 0, 0, 64},
	{96, 32, 0, 0, 0, 0, 32, 96, 96, 32, 0, 0, 0, 0, 32, 96},
	{128, 64, 32, 0, 0, 32, 64, 128, 128, 64, 32, 0, 0, 32, 64, 128},
	{160, 96, 64, 32, 32, 64, 96, 160, 160, 96, 64, 32, 32, 64, 96, 160},
	{192, 128, 96, 64, 64, 96, 128, 192, 192, 128, 96, 64, 64, 96, 128, 192},
	{255, 160, 128, 96, 96, 128, 160, 255, 255, 160, 128, 96, 96, 128, 160, 255},
	{255, 192, 160, 128, 128, 160, 192, 255, 255, 192, 160, 128, 128, 160, 192, 255},
}

// hueMask shifts the core of the flame toward yellow.
var hueMask = [Rows][Cols]uint8{
	{1, 11, 19, 25, 25, 22, 11, 1, 1, 11, 19, 25, 25, 22, 11, 1},
	{1, 8, 13, 19, 25, 19, 8, 1, 1, 8, 13, 19, 25, 19, 8, 1},
	{1, 8, 13, 16, 19, 16, 8, 1, 1, 8, 13, 16, 19, 16, 8, 1},
	{1, 5, 11, 13, 13, 13, 5, 1, 1, 5, 11, 13, 13, 13, 5, 1},
	{1, 5, 11, 11, 11, 11, 5, 1, 1, 5, 11, 11, 11, 11, 5, 1},
	{0, 1, 5, 8, 8, 5, 1, 0, 0, 1, 5, 8, 8, 5, 1, 0},
	{0, 0, 1, 5, 5, 1, 0, 0, 0, 0, 1, 5, 5, 1, 0, 0},
	{0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0},
}

// Effect is a scrolling heat simulation. Between scrolls each frame blends
// a row with the one beneath it by progress/100, so the flame rises smoothly.
type Effect struct {
	heat     [Rows][Cols]uint8
	ember    [Cols]uint8
	primed   bool
	progress int
	shifts   int
}

func New() *Effect { return &Effect{} }

func (e *Effect) Name() string { return "fire" }

// Progress is the interpolation weight the next frame is drawn with once
// any pending scroll has happened.
func (e *Effect) Progress() int { return e.progress }

// Shifts counts heat grid scrolls since start.
func (e *Effect) Shifts() int { return e.shifts }

func (e *Effect) EmberLine() [Cols]uint8 { return e.ember }

func (e *Effect) Heat() [Rows][Cols]uint8 { return e.heat }

func (e *Effect) Draw(ctx *render.Context) error {
	if !e.primed {
		e.primed = true
		e.generateLine(ctx)
	}
	if e.progress >= ProgressFull {
		e.shiftUp(ctx)
		e.generateLine(ctx)
		e.progress = 0
		e.shifts++
	}
	e.drawFrame(ctx)
	e.progress += ProgressStep
	return ctx.FB.Apply()
}

// column folds panel columns onto the 16 simulated ones; past 15 the
// simulation restarts at column 1.
func column(x int) int {
	if x > Cols-1 {
		return (x - (Cols - 1)) % Cols
	}
	return x
}

func usedCols(width int) int {
	if width < Cols {
		return width
	}
	return Cols
}

func (e *Effect) generateLine(ctx *render.Context) {
	for c := 0; c < usedCols(ctx.Width); c++ {
		e.ember[c] = uint8(ctx.Rand.Range(EmberMin, EmberMax))
	}
}

// shiftUp moves every simulated row up by one and feeds the ember line in
// at row 0. Rows above the panel are left alone.
func (e *Effect) shiftUp(ctx *render.Context) {
	top := ctx.Height - 1
	if top > Rows-1 {
		top = Rows - 1
	}
	n := usedCols(ctx.Width)
	for y := top; y > 0; y-- {
		for c := 0; c < n; c++ {
			e.heat[y][c] = e.heat[y-1][c]
		}
	}
	for c := 0; c < n; c++ {
		e.heat[0][c] = e.ember[c]
	}
}

// drawFrame walks rows from the top down, so rows at and above the tip
// copy what the row beneath showed on the previous frame.
func (e *Effect) drawFrame(ctx *render.Context) {
	fb := ctx.FB
	p := float64(e.progress)
	for y := ctx.Height - 1; y > 0; y-- {
		for x := 0; x < ctx.Width; x++ {
			c := column(x)
			switch {
			case y < Rows:
				blend := ((100.0-p)*float64(e.heat[y][c]) + p*float64(e.heat[y-1][c])) / 100.0
				v := int(blend - float64(valueMask[y][c]))
				fb.DrawPixel(x, y, render.HSV(BaseHue+hueMask[y][c], 255, clamp8(v)))
			case y == Rows:
				below := fb.Pixel(x, y-1)
				if ctx.Rand.Range(0, TipOdds) == 0 && !below.IsBlack() {
					fb.DrawPixel(x, y, below)
				} else {
					fb.DrawPixel(x, y, render.Black)
				}
			default:
				fb.DrawPixel(x, y, fb.Pixel(x, y-1))
			}
		}
	}
	for x := 0; x < ctx.Width; x++ {
		c := column(x)
		v := int(((100.0-p)*float64(e.heat[0][c]) + p*float64(e.ember[c])) / 100.0)
		fb.DrawPixel(x, 0, render.HSV(BaseHue+hueMask[0][c], 255, clamp8(v)))
	}
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
