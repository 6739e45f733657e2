// Package anim provides the animation coordination primitives the bot core
// drives: playing clip instances with authored timeline signals, and small
// named-state machines built from them. Actual pose blending and mesh work
// belong to the host; the core only needs timing, state, and signals.
package anim

// Signal is an authored timeline marker inside a clip.
type Signal struct {
	ID   string
	Time float32
}

// Event is an emitted signal waiting to be drained from a playback.
type Event struct {
	Signal string
	Time   float32
}

// Clip is immutable clip content: a name, a length in seconds, and the
// authored signals. Instances of a playing clip are Playbacks.
type Clip struct {
	Name    string
	Length  float32
	Loop    bool
	Signals []Signal
}

// Keep the queue bounded; a playback whose events are never drained must not
// grow without limit.
const maxQueuedEvents = 16

// Playback is one playing instance of a clip. It advances by dt*speed per
// tick while enabled, emits crossed signals into a drainable queue, and
// reports when a non-looping clip has finished.
type Playback struct {
	clip    Clip
	enabled bool
	speed   float32
	pos     float32
	events  []Event
}

// NewPlayback creates a disabled playback at position zero with speed 1.
func NewPlayback(clip Clip) *Playback {
	return &Playback{clip: clip, speed: 1}
}

// Clip returns the clip content.
func (p *Playback) Clip() Clip {
	if p == nil {
		return Clip{}
	}
	return p.clip
}

// Enabled reports whether the playback advances.
func (p *Playback) Enabled() bool {
	return p != nil && p.enabled
}

// SetEnabled starts or stops advancement. Disabling keeps the position.
func (p *Playback) SetEnabled(enabled bool) *Playback {
	if p != nil {
		p.enabled = enabled
	}
	return p
}

// Speed returns the playback speed factor.
func (p *Playback) Speed() float32 {
	if p == nil {
		return 0
	}
	return p.speed
}

// SetSpeed sets the playback speed factor.
func (p *Playback) SetSpeed(speed float32) *Playback {
	if p != nil {
		p.speed = speed
	}
	return p
}

// Rewind moves the playback back to the start.
func (p *Playback) Rewind() *Playback {
	if p != nil {
		p.pos = 0
	}
	return p
}

// Position returns the current clip time in seconds.
func (p *Playback) Position() float32 {
	if p == nil {
		return 0
	}
	return p.pos
}

// HasEnded reports whether a non-looping playback reached the clip end.
func (p *Playback) HasEnded() bool {
	if p == nil || p.clip.Loop {
		return false
	}
	return p.pos >= p.clip.Length
}

// Update advances the playback and emits any signals whose timestamps were
// crossed this tick.
func (p *Playback) Update(dt float32) {
	if p == nil || !p.enabled || p.clip.Length <= 0 {
		return
	}
	step := dt * p.speed
	if step <= 0 {
		return
	}
	prev := p.pos
	next := prev + step
	if next < p.clip.Length || p.clip.Loop {
		p.emitRange(prev, minf(next, p.clip.Length))
	} else {
		p.emitRange(prev, p.clip.Length)
	}
	if next >= p.clip.Length {
		if p.clip.Loop {
			next -= p.clip.Length
			for next >= p.clip.Length {
				next -= p.clip.Length
			}
			p.emitRange(0, next)
		} else {
			next = p.clip.Length
		}
	}
	p.pos = next
}

// emitRange queues signals with from < time <= to.
func (p *Playback) emitRange(from, to float32) {
	for _, s := range p.clip.Signals {
		if s.Time > from && s.Time <= to {
			p.push(Event{Signal: s.ID, Time: s.Time})
		}
	}
}

func (p *Playback) push(ev Event) {
	if len(p.events) >= maxQueuedEvents {
		p.events = p.events[1:]
	}
	p.events = append(p.events, ev)
}

// PopEvent drains one emitted signal in emission order.
func (p *Playback) PopEvent() (Event, bool) {
	if p == nil || len(p.events) == 0 {
		return Event{}, false
	}
	ev := p.events[0]
	p.events = p.events[1:]
	return ev, true
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
