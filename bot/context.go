package bot

import (
	"math/rand"

	"github.com/milk9111/stationfall/common"
	"github.com/milk9111/stationfall/defs"
	"github.com/milk9111/stationfall/world"
)

// Target is the hostile a bot is currently tracking.
type Target struct {
	Entity   world.EntityID
	Position common.Vec3
}

// TickContext is the transient per-tick view handed to behavior leaves. It is
// built fresh every tick; leaves keep their own temporal state and write
// their decisions into the output intent fields. The intents are consumed
// once, after the tree finishes, to drive the animation machines and report
// movement back to the host.
type TickContext struct {
	Dt      float32
	Elapsed float32

	World world.World
	Audio world.Audio
	Rand  *rand.Rand

	BotID      world.EntityID
	Position   common.Vec3
	Definition *defs.Definition
	Locomotion *LocomotionMachine
	Combat     *CombatMachine
	Navigator  world.Navigator

	Target          *Target
	RestorationTime float32
	MoveSpeed       float32
	TargetMoveSpeed *float32
	ThreatenTimeout *float32
	VRecoil         *common.SmoothAngle
	HRecoil         *common.SmoothAngle

	AcquireTarget func(id world.EntityID, position common.Vec3)
	DropTarget    func()

	// Output intents. Zeroed each tick except MovementSpeedFactor, which
	// starts at 1.
	MovementSpeedFactor  float32
	AttackAnimationIndex int
	IsMoving             bool
	IsAttacking          bool
	IsAiming             bool
	IsScreaming          bool
	MoveDirection        common.Vec3
	ShootRequested       bool
}
