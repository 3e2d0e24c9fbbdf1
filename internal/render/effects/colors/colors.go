package colors

import "github.com/coreman2200/smart-lamp/internal/render"

// Effect fills the whole panel with one hue that walks the colour wheel.
type Effect struct {
	hue uint8
}

func New() *Effect { return &Effect{} }

func (e *Effect) Name() string { return "colors" }

func (e *Effect) Hue() uint8 { return e.hue }

func (e *Effect) Draw(ctx *render.Context) error {
	e.hue++ // wraps at 256
	ctx.FB.FillAll(render.HSV(e.hue, 255, 255))
	return ctx.FB.Apply()
}
