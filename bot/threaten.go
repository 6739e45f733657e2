package bot

import (
	"github.com/milk9111/stationfall/bt"
)

// threatenTarget plays the scream intimidation once per cooldown window. It
// holds the screaming intent while the clip runs, which keeps the bot
// planted, then sets a randomized cooldown so the display does not repeat
// every approach.
type threatenTarget struct {
	active bool
}

func (t *threatenTarget) Tick(ctx *TickContext) bt.Status {
	if ctx.Target == nil {
		t.active = false
		return bt.Failure
	}

	if !t.active {
		if *ctx.ThreatenTimeout > 0 {
			return bt.Failure
		}
		t.active = true
		if ctx.Audio != nil && len(ctx.Definition.ScreamSounds) > 0 {
			clip := ctx.Definition.ScreamSounds[ctx.Rand.Intn(len(ctx.Definition.ScreamSounds))]
			ctx.Audio.Play(ctx.Position, clip, 1.0, 1.0, 1.0)
		}
		ctx.IsScreaming = true
		*ctx.TargetMoveSpeed = 0
		// The locomotion machine rewinds the scream clip when it enters the
		// state later this tick; the end check starts next tick.
		return bt.Running
	}

	ctx.IsScreaming = true
	*ctx.TargetMoveSpeed = 0
	if ctx.Locomotion.ActiveState() == LocoScream && ctx.Locomotion.ScreamEnded() {
		t.active = false
		*ctx.ThreatenTimeout = threatenCooldown + ctx.Rand.Float32()*threatenCooldownJitter
		return bt.Success
	}
	return bt.Running
}
