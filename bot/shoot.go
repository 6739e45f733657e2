package bot

import (
	"github.com/milk9111/stationfall/bt"
)

// canUseWeapon gates the ranged branch: the species is armed and the target
// is visible.
type canUseWeapon struct{}

func (canUseWeapon) Tick(ctx *TickContext) bt.Status {
	if ctx.Target == nil || !ctx.Definition.CanUseWeapons {
		return bt.Failure
	}
	if !hasLineOfSight(ctx.World, ctx.BotID, ctx.Position, ctx.Target.Entity, ctx.Target.Position) {
		return bt.Failure
	}
	return bt.Success
}

// aimAndShoot holds the aim pose and requests a shot on an interval. Each
// shot kicks the recoil angles; they smooth back toward rest between shots.
type aimAndShoot struct {
	shotTimer float32
}

func (a *aimAndShoot) Tick(ctx *TickContext) bt.Status {
	if ctx.Target == nil {
		return bt.Failure
	}
	ctx.IsAiming = true
	*ctx.TargetMoveSpeed = 0

	a.shotTimer -= ctx.Dt
	// The first aiming tick never fires; the combat machine has to reach
	// the aim state before a shot makes sense.
	if a.shotTimer <= 0 && ctx.Combat.ActiveState() == CombatAim {
		ctx.ShootRequested = true
		ctx.VRecoil.SetTarget(-(minVerticalRecoil + ctx.Rand.Float32()*(maxVerticalRecoil-minVerticalRecoil)))
		ctx.HRecoil.SetTarget((ctx.Rand.Float32() - 0.5) * horizontalRecoilSpread)
		a.shotTimer = shotInterval
	} else if !ctx.ShootRequested {
		ctx.VRecoil.SetTarget(0)
		ctx.HRecoil.SetTarget(0)
	}
	return bt.Success
}
