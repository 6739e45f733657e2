package anim

// Machine is a small state graph over named states, each optionally backed by
// a playback. Transition gating lives with the owner; the machine only tracks
// the active state and starts/stops the backing playbacks.
type Machine struct {
	states map[string]*Playback
	active string
}

// NewMachine creates a machine. The initial state's playback, if any, is
// enabled immediately.
func NewMachine(initial string, states map[string]*Playback) *Machine {
	m := &Machine{states: states, active: initial}
	if p := states[initial]; p != nil {
		p.SetEnabled(true)
	}
	return m
}

// Active returns the current state name.
func (m *Machine) Active() string {
	if m == nil {
		return ""
	}
	return m.active
}

// Playback returns the playback backing a state, or nil.
func (m *Machine) Playback(state string) *Playback {
	if m == nil {
		return nil
	}
	return m.states[state]
}

// Transition switches to another state, disabling the old state's playback
// and enabling the new one. When rewind is set the new playback restarts from
// the beginning; callers pass false when another driver already positioned
// the clip.
func (m *Machine) Transition(to string, rewind bool) {
	if m == nil || to == m.active {
		return
	}
	if p := m.states[m.active]; p != nil {
		p.SetEnabled(false)
	}
	if p := m.states[to]; p != nil {
		p.SetEnabled(true)
		if rewind {
			p.Rewind()
		}
	}
	m.active = to
}

// Update advances every enabled playback owned by the machine. Clips keep
// running while another state is active so end-of-clip checks stay accurate.
func (m *Machine) Update(dt float32) {
	if m == nil {
		return
	}
	for _, p := range m.states {
		p.Update(dt)
	}
}
