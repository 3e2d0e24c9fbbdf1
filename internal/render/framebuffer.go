package render

import (
	"errors"
	"fmt"

	"github.com/coreman2200/smart-lamp/internal/layout"
)

// Driver abstracts the LED transport (SPI, console, sim).
type Driver interface {
	Init(count int) error
	SetBrightness(level uint8)
	// Set writes one pixel at its physical index; nothing is sent until Show.
	Set(i int, c Color)
	Show() error
}

// Framebuffer holds the logical panel contents and remaps them to the
// physical wiring order on Apply.
type Framebuffer struct {
	layout     layout.Serpentine
	leds       []Color
	drv        Driver
	brightness uint8
}

// NewFramebuffer allocates the pixel store and initialises the driver.
func NewFramebuffer(l layout.Serpentine, drv Driver) (*Framebuffer, error) {
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", l.Width, l.Height)
	}
	if drv == nil {
		return nil, errors.New("driver is nil")
	}
	if err := drv.Init(l.Count()); err != nil {
		return nil, fmt.Errorf("driver init: %w", err)
	}
	return &Framebuffer{
		layout: l,
		leds:   make([]Color, l.Count()),
		drv:    drv,
	}, nil
}

func (f *Framebuffer) Width() int  { return f.layout.Width }
func (f *Framebuffer) Height() int { return f.layout.Height }
func (f *Framebuffer) Count() int  { return len(f.leds) }

func (f *Framebuffer) FillAll(c Color) {
	for i := range f.leds {
		f.leds[i] = c
	}
}

// DrawPixel is a no-op outside the panel.
func (f *Framebuffer) DrawPixel(x, y int, c Color) {
	if !f.layout.Contains(x, y) {
		return
	}
	f.leds[f.layout.Index(x, y)] = c
}

// Pixel returns Black outside the panel.
func (f *Framebuffer) Pixel(x, y int) Color {
	if !f.layout.Contains(x, y) {
		return Black
	}
	return f.leds[f.layout.Index(x, y)]
}

// Physical returns the pixel stored at physical index i.
func (f *Framebuffer) Physical(i int) Color {
	if i < 0 || i >= len(f.leds) {
		return Black
	}
	return f.leds[i]
}

// Apply pushes every pixel to the driver and shows the frame.
func (f *Framebuffer) Apply() error {
	for i, c := range f.leds {
		f.drv.Set(i, c)
	}
	return f.drv.Show()
}

// SetBrightness forwards the level to the driver and re-shows the frame.
func (f *Framebuffer) SetBrightness(level uint8) error {
	f.brightness = level
	f.drv.SetBrightness(level)
	return f.Apply()
}

func (f *Framebuffer) Brightness() uint8 { return f.brightness }
