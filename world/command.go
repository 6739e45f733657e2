package world

import "github.com/milk9111/stationfall/common"

// Command is a deferred cross-cutting effect delivered to a combatant's
// inbox. The set is closed: Damage and Impact.
type Command interface {
	isCommand()
}

// Hitbox marks which body region a damage event landed on.
type Hitbox struct {
	Name string
	Head bool
}

// Damage reduces a combatant's health. Source may be NoEntity when the
// attacker is unknown; consumers then skip target acquisition.
type Damage struct {
	Source EntityID
	Amount float32
	Hitbox *Hitbox
	// CritProbability is the chance a head hit becomes a critical. Ranged
	// paths pass a real probability; melee always passes zero.
	CritProbability float32
}

// Impact is a physical force delivered to a combatant's body.
type Impact struct {
	Point     common.Vec3
	Direction common.Vec3
}

func (Damage) isCommand() {}
func (Impact) isCommand() {}
