package led

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/smart-lamp/internal/render"
)

// Sim accepts frames and drops them. Every LogEvery frames it logs a
// summary at debug level.
type Sim struct {
	LogEvery uint64

	count      int
	brightness uint8
	frames     uint64
	lit        int
	pixels     []render.Color
}

func NewSim() *Sim { return &Sim{LogEvery: 100} }

func (s *Sim) Init(count int) error {
	if count <= 0 {
		return fmt.Errorf("invalid LED count: %d", count)
	}
	s.count = count
	s.pixels = make([]render.Color, count)
	return nil
}

func (s *Sim) SetBrightness(level uint8) { s.brightness = level }

func (s *Sim) Set(i int, c render.Color) {
	if i < 0 || i >= len(s.pixels) {
		return
	}
	s.pixels[i] = c
}

func (s *Sim) Show() error {
	s.frames++
	s.lit = 0
	for _, c := range s.pixels {
		if !c.IsBlack() {
			s.lit++
		}
	}
	if s.LogEvery > 0 && s.frames%s.LogEvery == 0 {
		log.Debug().
			Uint64("frame", s.frames).
			Int("lit", s.lit).
			Int("count", s.count).
			Uint8("brightness", s.brightness).
			Msg("sim frame")
	}
	return nil
}

func (s *Sim) Frames() uint64 { return s.frames }
func (s *Sim) Lit() int       { return s.lit }
func (s *Sim) Close() error   { return nil }
