package led

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/smart-lamp/internal/render"
)

// RefreshRate is the WS2812 bit rate; the SPI clock runs at three times it.
const RefreshRate physic.Frequency = 800 * physic.KiloHertz

// Strip drives a 1xN pixel display.Drawer: an nrzled chain on SPI or the
// periph console screen. Brightness is applied in software before Draw.
type Strip struct {
	drawer display.Drawer
	closer io.Closer

	pixels []render.Color
	lut    BrightnessLUT
	img    *image.NRGBA
}

// NewStrip wraps any drawer whose bounds are count pixels wide.
func NewStrip(d display.Drawer) *Strip {
	return &Strip{drawer: d, lut: NewBrightnessLUT(255)}
}

// OpenSPI opens a WS2812 chain on the named SPI port. host.Init must have
// run already.
func OpenSPI(port string, count int) (*Strip, error) {
	p, err := spireg.Open(port)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", port, err)
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      RefreshRate*3 + 100*physic.KiloHertz,
	})
	if err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	s := NewStrip(d)
	s.closer = p
	return s, nil
}

// NewConsole renders the strip as coloured cells on the terminal.
func NewConsole(count int) *Strip {
	return NewStrip(screen.New(count))
}

func (s *Strip) Init(count int) error {
	if count <= 0 {
		return fmt.Errorf("invalid LED count: %d", count)
	}
	if w := s.drawer.Bounds().Dx(); w != count {
		return fmt.Errorf("%s is %d pixels wide, want %d", s.drawer, w, count)
	}
	s.pixels = make([]render.Color, count)
	s.img = image.NewNRGBA(image.Rect(0, 0, count, 1))
	return nil
}

func (s *Strip) SetBrightness(level uint8) { s.lut = NewBrightnessLUT(level) }

func (s *Strip) Set(i int, c render.Color) {
	if i < 0 || i >= len(s.pixels) {
		return
	}
	s.pixels[i] = c
}

func (s *Strip) Show() error {
	if s.img == nil {
		return fmt.Errorf("%s: not initialised", s.drawer)
	}
	for i, c := range s.pixels {
		s.img.SetNRGBA(i, 0, color.NRGBA{R: s.lut[c.R], G: s.lut[c.G], B: s.lut[c.B], A: 255})
	}
	return s.drawer.Draw(s.drawer.Bounds(), s.img, image.Point{})
}

// Close blanks the LEDs and releases the port.
func (s *Strip) Close() error {
	err := s.drawer.Halt()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (s *Strip) String() string { return s.drawer.String() }
