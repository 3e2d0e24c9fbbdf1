package fake

import (
	"fmt"
	"io"

	"github.com/coreman2200/smart-lamp/internal/render"
)

// Driver records every frame shown, useful for headless runs and tests.
// If Out is set, a one-line summary of each frame is printed to it.
type Driver struct {
	Out io.Writer

	InitCount  int
	Brightness uint8
	Shows      int
	Pixels     []render.Color
	Last       []render.Color
	ShowErr    error
}

func (d *Driver) Init(count int) error {
	if count <= 0 {
		return fmt.Errorf("invalid LED count: %d", count)
	}
	d.InitCount = count
	d.Pixels = make([]render.Color, count)
	return nil
}

func (d *Driver) SetBrightness(level uint8) { d.Brightness = level }

func (d *Driver) Set(i int, c render.Color) {
	if i < 0 || i >= len(d.Pixels) {
		return
	}
	d.Pixels[i] = c
}

func (d *Driver) Show() error {
	if d.ShowErr != nil {
		return d.ShowErr
	}
	d.Shows++
	d.Last = make([]render.Color, len(d.Pixels))
	copy(d.Last, d.Pixels)
	if d.Out != nil {
		d.summary()
	}
	return nil
}

// Lit counts non-black pixels in the last frame.
func (d *Driver) Lit() int {
	n := 0
	for _, c := range d.Last {
		if !c.IsBlack() {
			n++
		}
	}
	return n
}

func (d *Driver) summary() {
	var r, g, b float64
	for _, c := range d.Last {
		r += float64(c.R)
		g += float64(c.G)
		b += float64(c.B)
	}
	n := float64(len(d.Last))
	if n == 0 {
		n = 1
	}
	var first render.Color
	if len(d.Last) > 0 {
		first = d.Last[0]
	}
	fmt.Fprintf(d.Out, "[frame %04d] lit=%d avg=(%.1f,%.1f,%.1f) first=#%06x\n",
		d.Shows, d.Lit(), r/n, g/n, b/n, first.Packed())
}
