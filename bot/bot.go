// Package bot implements the per-actor decision and combat core: a behavior
// tree evaluated every tick, two animation machines, a thread-safe command
// queue, and the damage rules that tie them together.
package bot

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/stationfall/bt"
	"github.com/milk9111/stationfall/common"
	"github.com/milk9111/stationfall/defs"
	"github.com/milk9111/stationfall/world"
)

const (
	meleeAttackSpeed   = 1.3
	postAttackCooldown = 0.3

	staggerThreshold   = 20.0
	staggerDuration    = 0.8
	headShotMultiplier = 1000.0

	moveSpeedSmoothing = 0.1

	threatenCooldown       = 20.0
	threatenCooldownJitter = 10.0

	shotInterval           = 0.35
	recoilSpeed            = 1.5
	minVerticalRecoil      = 0.04
	maxVerticalRecoil      = 0.07
	horizontalRecoilSpread = 0.03

	idleSoundMinInterval = 5.0
	idleSoundJitter      = 10.0
)

// Config carries everything a bot needs from its host.
type Config struct {
	ID   world.EntityID
	Kind defs.Kind

	World     world.World
	Audio     world.Audio
	Navigator world.Navigator
	Impacts   world.ImpactSink

	// Rand drives attack selection, crit rolls and sound picks. Optional;
	// a time-seeded source is used when nil. Tests pass a fixed seed.
	Rand *rand.Rand
}

// Bot is one autonomous actor. Not safe for concurrent use except for
// Enqueue, which may be called from any goroutine.
type Bot struct {
	id   world.EntityID
	kind defs.Kind
	def  *defs.Definition

	world   world.World
	audio   world.Audio
	nav     world.Navigator
	impacts world.ImpactSink
	rng     *rand.Rand

	health     float32
	lastHealth float32

	target     *Target
	locomotion *LocomotionMachine
	combat     *CombatMachine
	tree       *bt.Tree[TickContext]

	restorationTime float32
	threatenTimeout float32
	moveSpeed       float32
	targetMoveSpeed float32
	moveDirection   common.Vec3
	vRecoil         common.SmoothAngle
	hRecoil         common.SmoothAngle
	headDestroyed   bool
	shootRequested  bool
	idleSoundTimer  float32

	queue commandQueue
}

// New creates a bot of the given kind. The definition registry must be
// initialized first.
func New(cfg Config) (*Bot, error) {
	def, err := defs.Get(cfg.Kind)
	if err != nil {
		return nil, fmt.Errorf("spawn bot: %w", err)
	}
	if cfg.World == nil {
		return nil, fmt.Errorf("spawn bot %q: world is required", cfg.Kind)
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	b := &Bot{
		id:         cfg.ID,
		kind:       cfg.Kind,
		def:        def,
		world:      cfg.World,
		audio:      cfg.Audio,
		nav:        cfg.Navigator,
		impacts:    cfg.Impacts,
		rng:        rng,
		health:     def.Health,
		lastHealth: def.Health,
		locomotion: newLocomotionMachine(def),
		combat:     newCombatMachine(def),
		tree:       newBehaviorTree(def),
		vRecoil:    common.SmoothAngle{Speed: recoilSpeed},
		hRecoil:    common.SmoothAngle{Speed: recoilSpeed},
	}
	logrus.WithFields(logrus.Fields{
		"id":     cfg.ID,
		"kind":   cfg.Kind,
		"health": def.Health,
	}).Debug("bot spawned")
	return b, nil
}

// ID returns the bot's entity id.
func (b *Bot) ID() world.EntityID { return b.id }

// Kind returns the species.
func (b *Bot) Kind() defs.Kind { return b.kind }

// Definition returns the species definition the bot was built from.
func (b *Bot) Definition() *defs.Definition { return b.def }

// Health returns current health.
func (b *Bot) Health() float32 { return b.health }

// Alive reports whether health is above zero.
func (b *Bot) Alive() bool { return b.health > 0 }

// Species identifies the bot's kind to other combatants.
func (b *Bot) Species() (defs.Kind, bool) { return b.kind, true }

// Position looks the bot up in the world.
func (b *Bot) Position() common.Vec3 {
	if pos, ok := b.world.Position(b.id); ok {
		return pos
	}
	return common.Vec3{}
}

// Enqueue adds a command for the next tick. Safe to call from any goroutine.
func (b *Bot) Enqueue(cmd world.Command) { b.queue.push(cmd) }

// Target returns the currently tracked hostile, if any.
func (b *Bot) Target() (Target, bool) {
	if b.target == nil {
		return Target{}, false
	}
	return *b.target, true
}

// RestorationTime returns the remaining stagger time. Positive means the bot
// is recovering from a heavy hit and will not start melee swings.
func (b *Bot) RestorationTime() float32 { return b.restorationTime }

// HeadDestroyed reports whether a head crit landed. The host hides the head
// mesh when this flips.
func (b *Bot) HeadDestroyed() bool { return b.headDestroyed }

// DesiredVelocity is the movement the tree asked for this tick, already
// smoothed. The host integrates it however its physics wants.
func (b *Bot) DesiredVelocity() common.Vec3 {
	return b.moveDirection.Scale(b.moveSpeed)
}

// ShootRequested reports whether the tree asked for a weapon discharge this
// tick. The host consumes it once per tick.
func (b *Bot) ShootRequested() bool { return b.shootRequested }

// Recoil returns the current vertical and horizontal aim offsets.
func (b *Bot) Recoil() (v, h float32) { return b.vRecoil.Angle, b.hRecoil.Angle }

// LocomotionState returns the active lower body state name.
func (b *Bot) LocomotionState() string { return b.locomotion.ActiveState() }

// CombatState returns the active upper body state name.
func (b *Bot) CombatState() string { return b.combat.ActiveState() }

// CanBeRemoved reports whether the bot is dead and its dying animation has
// finished, so the host can despawn it.
func (b *Bot) CanBeRemoved() bool {
	return !b.Alive() && b.combat.DyingEnded()
}

// OnActorRemoved clears the target when the tracked entity leaves the world.
func (b *Bot) OnActorRemoved(id world.EntityID) {
	if b.target != nil && b.target.Entity == id {
		b.target = nil
	}
}

// Update runs one tick: drain commands, evaluate the tree, advance timers,
// then apply both animation machines exactly once.
func (b *Bot) Update(dt, elapsed float32) {
	b.pollCommands()

	ctx := TickContext{
		Dt:         dt,
		Elapsed:    elapsed,
		World:      b.world,
		Audio:      b.audio,
		Rand:       b.rng,
		BotID:      b.id,
		Position:   b.Position(),
		Definition: b.def,
		Locomotion: b.locomotion,
		Combat:     b.combat,
		Navigator:  b.nav,

		Target:          b.target,
		RestorationTime: b.restorationTime,
		MoveSpeed:       b.moveSpeed,
		TargetMoveSpeed: &b.targetMoveSpeed,
		ThreatenTimeout: &b.threatenTimeout,
		VRecoil:         &b.vRecoil,
		HRecoil:         &b.hRecoil,

		MovementSpeedFactor: 1.0,
	}
	ctx.AcquireTarget = func(id world.EntityID, position common.Vec3) {
		b.target = &Target{Entity: id, Position: position}
		ctx.Target = b.target
	}
	ctx.DropTarget = func() {
		b.target = nil
		ctx.Target = nil
	}

	if b.Alive() {
		b.tree.Tick(&ctx)
	} else {
		b.targetMoveSpeed = 0
	}

	b.restorationTime -= dt
	b.threatenTimeout -= dt
	b.moveSpeed += (b.targetMoveSpeed - b.moveSpeed) * moveSpeedSmoothing
	b.moveDirection = ctx.MoveDirection
	b.shootRequested = ctx.ShootRequested

	b.murmur(dt, ctx.Position)

	dead := !b.Alive()
	b.locomotion.Apply(dt, LocomotionInput{
		Walk:                ctx.IsMoving,
		Scream:              ctx.IsScreaming,
		Dead:                dead,
		MovementSpeedFactor: ctx.MovementSpeedFactor,
	})
	b.combat.Apply(dt, CombatInput{
		Attack:               ctx.IsAttacking,
		Aim:                  ctx.IsAiming,
		Dead:                 dead,
		AttackAnimationIndex: ctx.AttackAnimationIndex,
	})

	b.vRecoil.Update(dt)
	b.hRecoil.Update(dt)
}

// murmur plays an occasional idle sound while the bot has nothing to hunt.
func (b *Bot) murmur(dt float32, position common.Vec3) {
	b.idleSoundTimer -= dt
	if b.idleSoundTimer > 0 {
		return
	}
	b.idleSoundTimer = idleSoundMinInterval + b.rng.Float32()*idleSoundJitter
	if !b.Alive() || b.target != nil || b.audio == nil || len(b.def.IdleSounds) == 0 {
		return
	}
	clip := b.def.IdleSounds[b.rng.Intn(len(b.def.IdleSounds))]
	b.audio.Play(position, clip, 0.6, 1.0, 1.0)
}

func (b *Bot) pollCommands() {
	for _, cmd := range b.queue.drain() {
		switch c := cmd.(type) {
		case world.Damage:
			b.applyDamage(c)
		case world.Impact:
			if b.impacts != nil {
				b.impacts.Apply(c.Point, c.Direction)
			}
		}
	}
}

func (b *Bot) applyDamage(c world.Damage) {
	// Retaliate: lock on the attacker, or the owner of the attacking weapon.
	if c.Source != world.NoEntity && c.Source != b.id {
		if comb, ok := b.world.Combatant(c.Source); ok {
			b.target = &Target{Entity: c.Source, Position: comb.Position()}
		} else if owner, ok := b.world.OwnerOf(c.Source); ok {
			if comb, ok := b.world.Combatant(owner); ok {
				b.target = &Target{Entity: owner, Position: comb.Position()}
			}
		}
	}

	amount := c.Amount
	if c.Hitbox != nil && c.Hitbox.Head && common.Roll(b.rng, c.CritProbability) {
		amount *= headShotMultiplier
		b.headDestroyed = true
	}
	b.damage(amount)

	// One stagger and one pain sound per heavy-hit window. Heavy hits that
	// land while the window is still open re-baseline the accounting but
	// neither restagger nor vocalize.
	if b.lastHealth-b.health > staggerThreshold && b.Alive() {
		b.lastHealth = b.health
		if b.restorationTime <= 0 {
			b.restorationTime = staggerDuration
			if b.audio != nil && len(b.def.PainSounds) > 0 {
				clip := b.def.PainSounds[b.rng.Intn(len(b.def.PainSounds))]
				b.audio.Play(b.Position(), clip, 0.8, 1.0, 0.6)
			}
		}
	}
}

func (b *Bot) damage(amount float32) {
	if amount <= 0 || !b.Alive() {
		return
	}
	b.health -= amount
	if b.health <= 0 {
		logrus.WithFields(logrus.Fields{
			"id":   b.id,
			"kind": b.kind,
		}).Info("bot died")
	}
}
