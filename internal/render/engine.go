package render

import "errors"

// Scheduler owns the fixed effect list, the selected effect and the frame
// counter handed to effects as their seed.
type Scheduler struct {
	effects []Effect
	current int
	seed    uint32
	ctx     Context
}

// NewScheduler wires effects to fb. The first effect starts active.
func NewScheduler(fb *Framebuffer, rnd Source, effects ...Effect) (*Scheduler, error) {
	if fb == nil {
		return nil, errors.New("framebuffer is nil")
	}
	if rnd == nil {
		return nil, errors.New("random source is nil")
	}
	if len(effects) == 0 {
		return nil, errors.New("no effects registered")
	}
	for _, e := range effects {
		if e == nil {
			return nil, errors.New("nil effect in list")
		}
	}
	list := make([]Effect, len(effects))
	copy(list, effects)
	return &Scheduler{
		effects: list,
		ctx: Context{
			Width:  fb.Width(),
			Height: fb.Height(),
			Count:  fb.Count(),
			FB:     fb,
			Rand:   rnd,
		},
	}, nil
}

// SelectEffect switches to effect i. Only 1 <= i < Len() is accepted; index 0
// is reachable through Advance alone, matching the lamp firmware.
func (s *Scheduler) SelectEffect(i int) bool {
	if i > 0 && i < len(s.effects) {
		s.current = i
		return true
	}
	return false
}

// Advance moves to the next effect, wrapping after the last.
func (s *Scheduler) Advance() {
	if s.current == len(s.effects)-1 {
		s.current = 0
	} else {
		s.current++
	}
}

// Tick draws one frame of the current effect. The frame counter moves
// whether or not the draw succeeded.
func (s *Scheduler) Tick() error {
	s.ctx.Seed = s.seed
	err := s.effects[s.current].Draw(&s.ctx)
	s.seed++
	return err
}

func (s *Scheduler) Current() int   { return s.current }
func (s *Scheduler) Effect() Effect { return s.effects[s.current] }
func (s *Scheduler) Seed() uint32   { return s.seed }
func (s *Scheduler) Len() int       { return len(s.effects) }

// Names lists effects in rotation order.
func (s *Scheduler) Names() []string {
	out := make([]string, 0, len(s.effects))
	for _, e := range s.effects {
		out = append(out, e.Name())
	}
	return out
}
