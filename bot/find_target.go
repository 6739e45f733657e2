package bot

import (
	"math"

	"github.com/milk9111/stationfall/bt"
	"github.com/milk9111/stationfall/common"
	"github.com/milk9111/stationfall/defs"
	"github.com/milk9111/stationfall/world"
)

// findTarget validates the tracked target and scans for a new one when none
// is held. An existing target is kept until it dies or leaves the world, so
// a bot provoked by damage stays locked on its attacker.
type findTarget struct{}

func (findTarget) Tick(ctx *TickContext) bt.Status {
	if ctx.Target != nil {
		comb, ok := ctx.World.Combatant(ctx.Target.Entity)
		if ok && comb.Alive() {
			ctx.Target.Position = comb.Position()
		} else {
			ctx.DropTarget()
		}
	}
	if ctx.Target != nil {
		return bt.Success
	}

	var best world.EntityID
	var bestPos common.Vec3
	bestDist := float32(math.MaxFloat32)
	for _, id := range ctx.World.Actors() {
		if id == ctx.BotID {
			continue
		}
		comb, ok := ctx.World.Combatant(id)
		if !ok || !comb.Alive() {
			continue
		}
		if !hostileTo(ctx.Definition, comb) {
			continue
		}
		pos := comb.Position()
		d := ctx.Position.DistanceTo(pos)
		if d >= bestDist {
			continue
		}
		if !hasLineOfSight(ctx.World, ctx.BotID, ctx.Position, id, pos) {
			continue
		}
		best = id
		bestPos = pos
		bestDist = d
	}
	if best == world.NoEntity {
		return bt.Failure
	}
	ctx.AcquireTarget(best, bestPos)
	return bt.Success
}

func hostileTo(def *defs.Definition, other world.Combatant) bool {
	kind, isBot := other.Species()
	switch def.Hostility {
	case defs.HostileToEveryone:
		return true
	case defs.HostileToOtherSpecies:
		return !isBot || kind != def.Kind
	case defs.HostileToPlayer:
		return !isBot
	default:
		return false
	}
}

// hasLineOfSight walks the ordered raycast from the bot to the candidate.
// The first hit that is neither the bot itself nor the candidate blocks
// sight.
func hasLineOfSight(w world.World, self world.EntityID, from common.Vec3, target world.EntityID, to common.Vec3) bool {
	for _, hit := range w.Raycast(from, to) {
		if hit.Entity == self {
			continue
		}
		return hit.Entity == target
	}
	return true
}
