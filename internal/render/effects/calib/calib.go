package calib

import "github.com/coreman2200/smart-lamp/internal/render"

var White = render.Color{R: 255, G: 255, B: 255}

// Effect walks a single white pixel through the panel, column by column and
// bottom to top, so the wiring order can be checked by eye.
type Effect struct {
	step int
}

func New() *Effect { return &Effect{} }

func (e *Effect) Name() string { return "calib" }

// Position returns the logical coordinate lit by the next Draw.
func (e *Effect) Position(height int) (x, y int) {
	if height <= 0 {
		return 0, 0
	}
	return e.step / height, e.step % height
}

func (e *Effect) Draw(ctx *render.Context) error {
	if e.step >= ctx.Count {
		e.step = 0
	}
	x, y := e.Position(ctx.Height)
	ctx.FB.FillAll(render.Black)
	ctx.FB.DrawPixel(x, y, White)
	e.step++
	if e.step >= ctx.Count {
		e.step = 0
	}
	return ctx.FB.Apply()
}
