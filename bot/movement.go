package bot

import (
	"github.com/milk9111/stationfall/bt"
)

// isTargetCloseBy succeeds when the tracked target is within close combat
// range.
type isTargetCloseBy struct{}

func (isTargetCloseBy) Tick(ctx *TickContext) bt.Status {
	if ctx.Target == nil {
		return bt.Failure
	}
	if ctx.Position.DistanceTo(ctx.Target.Position) <= ctx.Definition.CloseCombatDistance {
		return bt.Success
	}
	return bt.Failure
}

// moveToTarget steers toward the target until close combat range is reached.
type moveToTarget struct{}

func (moveToTarget) Tick(ctx *TickContext) bt.Status {
	if ctx.Target == nil {
		return bt.Failure
	}
	*ctx.TargetMoveSpeed = 0
	if ctx.Position.DistanceTo(ctx.Target.Position) <= ctx.Definition.CloseCombatDistance {
		return bt.Success
	}

	if ctx.Navigator != nil {
		ctx.Navigator.Update(ctx.Dt, ctx.Position, ctx.Target.Position)
		ctx.MoveDirection = ctx.Navigator.Direction()
	} else {
		ctx.MoveDirection = ctx.Target.Position.Sub(ctx.Position).Normalized()
	}
	ctx.IsMoving = true
	ctx.MovementSpeedFactor = 1.0
	*ctx.TargetMoveSpeed = ctx.Definition.WalkSpeed
	return bt.Running
}
