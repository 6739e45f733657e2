package bot

import (
	"github.com/milk9111/stationfall/bt"
	"github.com/milk9111/stationfall/defs"
	"github.com/milk9111/stationfall/world"
)

// canMeleeAttack gates the melee action: a target is tracked and the
// post-hit stagger has elapsed.
type canMeleeAttack struct{}

func (canMeleeAttack) Tick(ctx *TickContext) bt.Status {
	if ctx.Target == nil {
		return bt.Failure
	}
	if ctx.RestorationTime <= 0 {
		return bt.Success
	}
	return bt.Failure
}

// canShoot reports whether the bot is currently presenting a weapon.
// A swing landed while aiming deals no melee damage.
func canShoot(combat *CombatMachine, def *defs.Definition) bool {
	return def.CanUseWeapons && combat.ActiveState() == CombatAim
}

// doMeleeAttack owns the swing cycle. Between swings it freezes the finished
// clip at its first frame so the pose holds, picks the next attack at random,
// and starts it at melee speed. Hit signals drain from the clip that was
// current at the top of the tick, and only register while the combat machine
// is actually showing the attack.
type doMeleeAttack struct {
	attackTimeout float32
	attackIndex   int
}

func (a *doMeleeAttack) Tick(ctx *TickContext) bt.Status {
	current := ctx.Combat.AttackPlayback(a.attackIndex)
	ended := current.HasEnded()

	if a.attackTimeout <= 0 && (ended || !current.Enabled()) {
		current.SetEnabled(true).SetSpeed(0).Rewind()

		a.attackIndex = ctx.Rand.Intn(ctx.Combat.AttackCount())
		next := ctx.Combat.AttackPlayback(a.attackIndex)
		next.SetEnabled(true).SetSpeed(meleeAttackSpeed).Rewind()
		ctx.IsAttacking = true
	}
	if a.attackTimeout < 0 && ended {
		a.attackTimeout = postAttackCooldown
	}
	a.attackTimeout -= ctx.Dt

	ctx.AttackAnimationIndex = a.attackIndex

	if ctx.Target == nil {
		return bt.Failure
	}

	for {
		ev, ok := current.PopEvent()
		if !ok {
			break
		}
		if ev.Signal != HitSignal {
			continue
		}
		if ctx.Combat.ActiveState() != CombatAttack {
			continue
		}
		if canShoot(ctx.Combat, ctx.Definition) {
			continue
		}
		if target, ok := ctx.World.Combatant(ctx.Target.Entity); ok {
			target.Enqueue(world.Damage{
				Source: world.NoEntity,
				Amount: ctx.Definition.Attacks[a.attackIndex].Damage,
				// Melee never crits.
				CritProbability: 0,
			})
		}
		if ctx.Audio != nil && len(ctx.Definition.AttackSounds) > 0 {
			clip := ctx.Definition.AttackSounds[ctx.Rand.Intn(len(ctx.Definition.AttackSounds))]
			ctx.Audio.Play(ctx.Position, clip, 1.0, 1.0, 1.0)
		}
	}

	return bt.Success
}
