package bot

import (
	"github.com/milk9111/stationfall/anim"
	"github.com/milk9111/stationfall/defs"
)

// Combat state names.
const (
	CombatIdle   = "idle"
	CombatAim    = "aim"
	CombatAttack = "attack"
	CombatDying  = "dying"
)

// HitSignal identifies the authored contact marker on attack clips. Draining
// it while the machine is in the attack state is what turns a swing into
// damage.
const HitSignal = "hit"

// CombatInput is the per-tick input assembled from the behavior tree's
// output intents plus the death flag.
type CombatInput struct {
	Attack               bool
	Aim                  bool
	Dead                 bool
	AttackAnimationIndex int
}

// CombatMachine drives the upper body: aiming, attacking, dying. It owns one
// instantiated playback per attack definition, persisted for the bot's
// lifetime.
type CombatMachine struct {
	machine *anim.Machine
	attacks []*anim.Playback
	dying   *anim.Playback
	index   int
}

func newCombatMachine(def *defs.Definition) *CombatMachine {
	attacks := make([]*anim.Playback, len(def.Attacks))
	for i, atk := range def.Attacks {
		attacks[i] = anim.NewPlayback(anim.Clip{
			Name:    atk.Clip.Name,
			Length:  atk.Clip.Length,
			Signals: []anim.Signal{{ID: HitSignal, Time: atk.HitTime}},
		})
		attacks[i].SetSpeed(atk.Speed)
	}

	var aim *anim.Playback
	if def.CanUseWeapons {
		aim = anim.NewPlayback(anim.Clip{Name: def.AimClip.Name, Length: def.AimClip.Length, Loop: true})
	}
	dying := anim.NewPlayback(anim.Clip{Name: def.DyingClip.Name, Length: def.DyingClip.Length})

	return &CombatMachine{
		machine: anim.NewMachine(CombatIdle, map[string]*anim.Playback{
			CombatIdle:   nil,
			CombatAim:    aim,
			CombatAttack: nil, // attack clips are driven by the melee protocol
			CombatDying:  dying,
		}),
		attacks: attacks,
		dying:   dying,
	}
}

// Apply advances the machine for the tick. Called exactly once per tick,
// after the behavior tree has produced its outputs. The machine stays in the
// attack state until the selected attack clip finishes, so mid-swing hit
// signals register even when the attack intent was only set on the starting
// tick.
func (m *CombatMachine) Apply(dt float32, in CombatInput) {
	if m == nil {
		return
	}
	// The index is only meaningful on ticks that start a swing. Adopting it
	// on other ticks would re-key stickiness to a clip that never runs.
	if in.Attack && in.AttackAnimationIndex >= 0 && in.AttackAnimationIndex < len(m.attacks) {
		m.index = in.AttackAnimationIndex
	}

	desired := CombatIdle
	switch {
	case in.Dead:
		desired = CombatDying
	case in.Attack || (m.machine.Active() == CombatAttack && !m.attacks[m.index].HasEnded()):
		desired = CombatAttack
	case in.Aim:
		desired = CombatAim
	}
	// The melee protocol owns attack clip restarts; entering the attack
	// state must not reposition the clip.
	m.machine.Transition(desired, desired != CombatAttack)
	m.machine.Update(dt)
	for _, p := range m.attacks {
		p.Update(dt)
	}
}

// ActiveState returns the current combat state name.
func (m *CombatMachine) ActiveState() string {
	if m == nil {
		return ""
	}
	return m.machine.Active()
}

// AttackPlayback returns the instantiated clip for an attack index.
func (m *CombatMachine) AttackPlayback(i int) *anim.Playback {
	if m == nil || i < 0 || i >= len(m.attacks) {
		return nil
	}
	return m.attacks[i]
}

// AttackCount returns how many attack clips the species has.
func (m *CombatMachine) AttackCount() int {
	if m == nil {
		return 0
	}
	return len(m.attacks)
}

// SelectedIndex returns the attack index the machine is currently showing.
func (m *CombatMachine) SelectedIndex() int {
	if m == nil {
		return 0
	}
	return m.index
}

// DyingEnded reports whether the dying clip has finished playing.
func (m *CombatMachine) DyingEnded() bool {
	return m != nil && m.dying.HasEnded()
}
