// Package world defines the contracts the bot core consumes from its host:
// entity and spatial queries, combatant inboxes, navigation, audio, and
// physics impact delivery. The core never owns or traverses host structures.
package world

import (
	"github.com/milk9111/stationfall/common"
	"github.com/milk9111/stationfall/defs"
)

// EntityID references an entity owned by the host scene. Zero means "no
// entity"; a stale ID is never an error, lookups just report absence.
type EntityID uint64

// NoEntity is the zero entity reference.
const NoEntity EntityID = 0

// Hit is one ordered result of a raycast.
type Hit struct {
	Entity   EntityID
	Position common.Vec3
	Normal   common.Vec3
	Distance float32
}

// World is the host scene service.
type World interface {
	// Position looks up an entity's world position. ok is false when the
	// entity is gone.
	Position(id EntityID) (pos common.Vec3, ok bool)
	// Raycast returns obstructions between two points ordered by distance.
	// Static geometry reports NoEntity.
	Raycast(from, to common.Vec3) []Hit
	// Actors enumerates the combatant entities currently in the scene.
	Actors() []EntityID
	// Combatant resolves an entity to its combatant interface.
	Combatant(id EntityID) (Combatant, bool)
	// OwnerOf resolves a weapon or projectile entity to its owning entity.
	OwnerOf(id EntityID) (EntityID, bool)
}

// Combatant is anything that can take damage: bots and the player. Producers
// deliver cross-cutting effects only through Enqueue; nothing reaches into
// another combatant's state directly.
type Combatant interface {
	ID() EntityID
	Position() common.Vec3
	Alive() bool
	// Species reports the bot kind, or ok=false for non-bot combatants such
	// as the player.
	Species() (kind defs.Kind, ok bool)
	// Enqueue appends a command to the combatant's inbox. Safe to call from
	// other combatants' updates.
	Enqueue(cmd Command)
}

// Navigator produces a desired movement direction toward a goal. Path
// construction happens elsewhere; the core only consumes the latest result.
type Navigator interface {
	Update(dt float32, position, goal common.Vec3)
	Direction() common.Vec3
	Path() []common.Vec3
}

// Audio plays one-shot spatial sounds. Fire and forget.
type Audio interface {
	Play(position common.Vec3, clip string, gain, pitch, rolloff float32)
}

// ImpactSink applies a physical force to a combatant's body.
type ImpactSink interface {
	Apply(point, direction common.Vec3)
}
