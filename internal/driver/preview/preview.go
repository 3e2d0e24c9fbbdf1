package preview

import (
	"sync"
	"time"

	"github.com/coreman2200/smart-lamp/internal/render"
)

// Publisher receives shown frames; *ws.Hub satisfies it.
type Publisher interface {
	Publish(effect string, brightness uint8, leds []render.Color)
}

// Driver tees every shown frame to a Publisher before forwarding Show to
// the wrapped driver. Publishing is throttled so slow browsers never hold
// up the lamp.
type Driver struct {
	Next     render.Driver
	Pub      Publisher
	Effect   func() string
	Throttle time.Duration

	mu         sync.Mutex
	leds       []render.Color
	brightness uint8
	lastEmit   time.Time
	now        func() time.Time
}

func New(next render.Driver, pub Publisher, effect func() string) *Driver {
	return &Driver{
		Next:     next,
		Pub:      pub,
		Effect:   effect,
		Throttle: 50 * time.Millisecond, // ~20 FPS to the browser
		now:      time.Now,
	}
}

func (d *Driver) Init(count int) error {
	if err := d.Next.Init(count); err != nil {
		return err
	}
	d.leds = make([]render.Color, count)
	return nil
}

func (d *Driver) SetBrightness(level uint8) {
	d.brightness = level
	d.Next.SetBrightness(level)
}

func (d *Driver) Set(i int, c render.Color) {
	if i >= 0 && i < len(d.leds) {
		d.leds[i] = c
	}
	d.Next.Set(i, c)
}

func (d *Driver) Show() error {
	d.emit()
	return d.Next.Show()
}

func (d *Driver) emit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	if d.Pub == nil || d.lastEmit.Add(d.Throttle).After(now) {
		return
	}
	d.lastEmit = now
	name := ""
	if d.Effect != nil {
		name = d.Effect()
	}
	d.Pub.Publish(name, d.brightness, append([]render.Color(nil), d.leds...))
}
