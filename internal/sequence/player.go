package sequence

// NewPlayer constructs an idle Player with provided hooks.
func NewPlayer(every int, h Hooks) *Player {
	return &Player{
		State: Idle,
		Every: every,
		hooks: h,
	}
}

// Start moves to Running. Tick counting resumes where it stopped.
func (p *Player) Start() { p.State = Running }

// Pause holds the current effect; ticks are not counted.
func (p *Player) Pause() {
	if p.State == Running {
		p.State = Paused
	}
}

// Resume resumes counting.
func (p *Player) Resume() {
	if p.State == Paused {
		p.State = Running
	}
}

// Stop stops and resets the tick count.
func (p *Player) Stop() {
	p.State = Idle
	p.ticks = 0
	p.switches = 0
}

// Tick records one rendered frame and advances once the threshold is hit.
// It reports whether a switch happened.
func (p *Player) Tick() bool {
	if p.State != Running {
		return false
	}
	p.ticks++
	if p.Every <= 0 || p.ticks%uint64(p.Every) != 0 {
		return false
	}
	p.switches++
	if p.hooks.Advance != nil {
		p.hooks.Advance()
	}
	if p.hooks.Switched != nil {
		p.hooks.Switched(p.ticks)
	}
	return true
}

func (p *Player) Ticks() uint64 { return p.ticks }
func (p *Player) Switches() int { return p.switches }
