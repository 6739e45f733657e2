package bot

import (
	"github.com/milk9111/stationfall/anim"
	"github.com/milk9111/stationfall/defs"
)

// Locomotion state names.
const (
	LocoIdle   = "idle"
	LocoWalk   = "walk"
	LocoScream = "scream"
	LocoDead   = "dead"
)

// LocomotionInput is the per-tick input assembled from the behavior tree's
// output intents plus the death flag.
type LocomotionInput struct {
	Walk                bool
	Scream              bool
	Dead                bool
	MovementSpeedFactor float32
}

// LocomotionMachine drives the lower body: idle, walk, scream, dead.
type LocomotionMachine struct {
	machine *anim.Machine
	walk    *anim.Playback
	scream  *anim.Playback
}

func newLocomotionMachine(def *defs.Definition) *LocomotionMachine {
	idle := anim.NewPlayback(anim.Clip{Name: def.IdleClip.Name, Length: def.IdleClip.Length, Loop: true})
	walk := anim.NewPlayback(anim.Clip{Name: def.WalkClip.Name, Length: def.WalkClip.Length, Loop: true})
	scream := anim.NewPlayback(anim.Clip{Name: def.ScreamClip.Name, Length: def.ScreamClip.Length})
	dead := anim.NewPlayback(anim.Clip{Name: def.DyingClip.Name, Length: def.DyingClip.Length})

	return &LocomotionMachine{
		machine: anim.NewMachine(LocoIdle, map[string]*anim.Playback{
			LocoIdle:   idle,
			LocoWalk:   walk,
			LocoScream: scream,
			LocoDead:   dead,
		}),
		walk:   walk,
		scream: scream,
	}
}

// Apply advances the machine for the tick. Called exactly once per tick,
// after the behavior tree has produced its outputs.
func (m *LocomotionMachine) Apply(dt float32, in LocomotionInput) {
	if m == nil {
		return
	}
	desired := LocoIdle
	switch {
	case in.Dead:
		desired = LocoDead
	case in.Scream:
		desired = LocoScream
	case in.Walk:
		desired = LocoWalk
	}
	// One-shot states restart from the top; loops resume where they were.
	rewind := desired == LocoScream || desired == LocoDead
	m.machine.Transition(desired, rewind)
	m.walk.SetSpeed(in.MovementSpeedFactor)
	m.machine.Update(dt)
}

// ActiveState returns the current locomotion state name.
func (m *LocomotionMachine) ActiveState() string {
	if m == nil {
		return ""
	}
	return m.machine.Active()
}

// ScreamEnded reports whether the scream clip has finished playing.
func (m *LocomotionMachine) ScreamEnded() bool {
	return m != nil && m.scream.HasEnded()
}
