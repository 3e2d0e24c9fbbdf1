package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/smart-lamp/internal/diagnostics"
	"github.com/coreman2200/smart-lamp/internal/layout"
	"github.com/coreman2200/smart-lamp/internal/render"
	"github.com/coreman2200/smart-lamp/internal/render/effects/calib"
	"github.com/coreman2200/smart-lamp/internal/render/effects/colors"
	"github.com/coreman2200/smart-lamp/internal/render/effects/fire"
	"github.com/coreman2200/smart-lamp/internal/render/effects/matrix"
	"github.com/coreman2200/smart-lamp/internal/render/effects/snow"
	"github.com/coreman2200/smart-lamp/internal/sequence"
)

// BootColor is shown from power-on until the first frame is drawn.
var BootColor = render.Color{G: 0xFF}

type Core struct {
	FB    *render.Framebuffer
	Sched *render.Scheduler
	Seq   *sequence.Player

	reporter diag.Reporter
}

type Options struct {
	Layout     layout.Serpentine
	Driver     render.Driver
	Brightness uint8
	// SwitchEvery is the number of ticks per effect; <= 0 holds.
	SwitchEvery int
	Seed        int64
	// Calibrate replaces the rotation with the wiring sweep.
	Calibrate bool
	Reporter  diag.Reporter
}

// DefaultEffects is the rotation in the order the lamp cycles through it.
func DefaultEffects() []render.Effect {
	return []render.Effect{
		snow.New(),
		colors.New(),
		matrix.New(),
		fire.New(),
	}
}

// InitCore builds the framebuffer, scheduler and rotation, then shows the
// boot colour at the configured brightness.
func InitCore(o Options) (*Core, error) {
	fb, err := render.NewFramebuffer(o.Layout, o.Driver)
	if err != nil {
		return nil, err
	}

	effects := DefaultEffects()
	every := o.SwitchEvery
	if o.Calibrate {
		effects = []render.Effect{calib.New()}
		every = 0
	}
	sched, err := render.NewScheduler(fb, render.NewSource(o.Seed), effects...)
	if err != nil {
		return nil, err
	}

	c := &Core{FB: fb, Sched: sched, reporter: o.Reporter}
	c.Seq = sequence.NewPlayer(every, sequence.Hooks{
		Advance:  sched.Advance,
		Switched: c.switched,
	})

	fb.FillAll(BootColor)
	if err := fb.SetBrightness(o.Brightness); err != nil {
		return nil, fmt.Errorf("boot frame: %w", err)
	}
	return c, nil
}

func (c *Core) switched(tick uint64) {
	name := c.Sched.Effect().Name()
	log.Info().Str("effect", name).Uint64("tick", tick).Msg("effect switched")
	if c.reporter != nil {
		c.reporter.Report(diag.Switched(name, tick))
	}
}

// Jump moves the rotation to the named effect. Unlike SelectEffect it can
// reach the first effect, by advancing around the ring.
func (c *Core) Jump(name string) bool {
	for i := 0; i < c.Sched.Len(); i++ {
		if c.Sched.Effect().Name() == name {
			return true
		}
		c.Sched.Advance()
	}
	return false
}

// Step renders one frame and counts it toward the next switch.
func (c *Core) Step() error {
	err := c.Sched.Tick()
	c.Seq.Tick()
	return err
}

// Run ticks until ctx ends. Failed frames are logged and skipped.
func (c *Core) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid tick interval %s", interval)
	}
	c.Seq.Start()
	defer c.Seq.Stop()

	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			if err := c.Step(); err != nil {
				name := c.Sched.Effect().Name()
				log.Warn().Err(err).Str("effect", name).Uint32("seed", c.Sched.Seed()).Msg("frame dropped")
				if c.reporter != nil {
					c.reporter.Report(diag.FlushFailed(err, name, c.Sched.Seed()))
				}
			}
		}
	}
}
