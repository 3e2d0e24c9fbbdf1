package render

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	redOffset   = 16
	greenOffset = 8
	blueOffset  = 0
)

// Color is one LED's RGB value.
type Color struct{ R, G, B uint8 }

var Black = Color{}

// FromPacked unpacks 0xRRGGBB.
func FromPacked(v uint32) Color {
	return Color{
		R: uint8(v >> redOffset),
		G: uint8(v >> greenOffset),
		B: uint8(v >> blueOffset),
	}
}

// Packed returns the colour as 0xRRGGBB. Effects that fade by subtracting a
// packed constant rely on this exact form.
func (c Color) Packed() uint32 {
	return uint32(c.R)<<redOffset | uint32(c.G)<<greenOffset | uint32(c.B)<<blueOffset
}

func (c Color) IsBlack() bool { return c == Black }

// HSV converts 8-bit hue/saturation/value to RGB. The hue wheel is spread over
// the full byte, so 0 and 256 are both red.
func HSV(h, s, v uint8) Color {
	r, g, b := colorful.Hsv(float64(h)*360.0/256.0, float64(s)/255.0, float64(v)/255.0).RGB255()
	return Color{R: r, G: g, B: b}
}

// Source yields random integers in [lo, hi).
type Source interface {
	Range(lo, hi int) int
}

type mathSource struct{ r *rand.Rand }

// NewSource returns a math/rand backed Source.
func NewSource(seed int64) Source {
	return &mathSource{r: rand.New(rand.NewSource(seed))}
}

func (m *mathSource) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + m.r.Intn(hi-lo)
}

// Context is handed to the active effect on every tick.
type Context struct {
	Width  int
	Height int
	Count  int
	Seed   uint32

	FB   *Framebuffer
	Rand Source
}

// Effect is one animation. Draw renders a frame into ctx.FB and flushes it.
type Effect interface {
	Name() string
	Draw(ctx *Context) error
}
