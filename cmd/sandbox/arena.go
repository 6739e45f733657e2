package main

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/jakecoffman/cp/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/stationfall/bot"
	"github.com/milk9111/stationfall/common"
	"github.com/milk9111/stationfall/defs"
	"github.com/milk9111/stationfall/nav"
	"github.com/milk9111/stationfall/script"
	"github.com/milk9111/stationfall/world"
)

const (
	botRadius = 0.45
	botMass   = 60

	wallThickness = 0.1

	shotDamage          = 15.0
	shotCritProbability = 0.15
	shotHeadProbability = 0.2
	shotImpulse         = 40.0
)

// Arena hosts the simulation: a chipmunk space over the XZ plane, one dummy
// player, and any number of bots. Chipmunk is 2D; the space's Y axis carries
// the world's Z.
type Arena struct {
	space *cp.Space
	rng   *rand.Rand

	nextID  world.EntityID
	bodies  map[world.EntityID]*cp.Body
	shapes  map[*cp.Shape]world.EntityID
	bots    map[world.EntityID]*bot.Bot
	weapons map[world.EntityID]world.EntityID // weapon -> owning bot
	armed   map[world.EntityID]world.EntityID // bot -> weapon
	player  *Player

	grid    *nav.Grid
	blocked map[nav.Cell]bool
	walls   [][4]float32

	width   float32
	height  float32
	elapsed float32
}

// NewArena builds an empty walled arena of the given size in meters.
func NewArena(seed int64, width, height float32) *Arena {
	space := cp.NewSpace()
	space.Iterations = 10

	a := &Arena{
		space:   space,
		rng:     rand.New(rand.NewSource(seed)),
		bodies:  map[world.EntityID]*cp.Body{},
		shapes:  map[*cp.Shape]world.EntityID{},
		bots:    map[world.EntityID]*bot.Bot{},
		weapons: map[world.EntityID]world.EntityID{},
		armed:   map[world.EntityID]world.EntityID{},
		blocked: map[nav.Cell]bool{},
		width:   width,
		height:  height,
	}
	a.grid = &nav.Grid{
		Width:    int(width),
		Height:   int(height),
		CellSize: 1,
		Blocked:  func(x, y int) bool { return a.blocked[nav.Cell{X: x, Y: y}] },
	}

	a.AddWall(0, 0, width, 0)
	a.AddWall(0, height, width, height)
	a.AddWall(0, 0, 0, height)
	a.AddWall(width, 0, width, height)
	return a
}

func (a *Arena) allocID() world.EntityID {
	a.nextID++
	return a.nextID
}

// AddWall adds a static segment and marks the cells it crosses as blocked
// for navigation.
func (a *Arena) AddWall(x0, z0, x1, z1 float32) {
	shape := cp.NewSegment(a.space.StaticBody,
		cp.Vector{X: float64(x0), Y: float64(z0)},
		cp.Vector{X: float64(x1), Y: float64(z1)},
		wallThickness)
	shape.SetFriction(0.9)
	a.space.AddShape(shape)
	a.shapes[shape] = world.NoEntity
	a.walls = append(a.walls, [4]float32{x0, z0, x1, z1})

	seg := common.Vec3{X: x1 - x0, Z: z1 - z0}
	length := seg.Len()
	steps := int(length/(a.grid.CellSize*0.5)) + 1
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		p := common.Vec3{X: x0 + seg.X*t, Z: z0 + seg.Z*t}
		cx, cy := a.grid.Cell(p)
		a.blocked[nav.Cell{X: cx, Y: cy}] = true
	}
}

func (a *Arena) addCircleBody(pos common.Vec3) (*cp.Body, *cp.Shape) {
	body := cp.NewBody(botMass, cp.MomentForCircle(botMass, 0, botRadius, cp.Vector{}))
	body.SetPosition(cp.Vector{X: float64(pos.X), Y: float64(pos.Z)})
	shape := cp.NewCircle(body, botRadius, cp.Vector{})
	shape.SetFriction(0.7)
	shape.SetElasticity(0)
	a.space.AddBody(body)
	a.space.AddShape(shape)
	return body, shape
}

// SpawnBot creates a bot of the given kind at a position.
func (a *Arena) SpawnBot(kind defs.Kind, pos common.Vec3) (*bot.Bot, error) {
	id := a.allocID()
	body, shape := a.addCircleBody(pos)

	b, err := bot.New(bot.Config{
		ID:        id,
		Kind:      kind,
		World:     a,
		Audio:     logAudio{},
		Navigator: nav.NewGridAgent(a.grid),
		Impacts:   &bodyImpacts{body: body},
		Rand:      rand.New(rand.NewSource(a.rng.Int63())),
	})
	if err != nil {
		a.space.RemoveShape(shape)
		a.space.RemoveBody(body)
		return nil, err
	}

	a.bodies[id] = body
	a.shapes[shape] = id
	a.bots[id] = b
	if b.Definition().CanUseWeapons {
		wid := a.allocID()
		a.weapons[wid] = id
		a.armed[id] = wid
	}
	return b, nil
}

// SpawnPlayer creates the dummy player combatant.
func (a *Arena) SpawnPlayer(pos common.Vec3, health float32) *Player {
	id := a.allocID()
	body, shape := a.addCircleBody(pos)
	a.player = newPlayer(id, body, health)
	a.bodies[id] = body
	a.shapes[shape] = id
	return a.player
}

// Position implements world.World.
func (a *Arena) Position(id world.EntityID) (common.Vec3, bool) {
	body, ok := a.bodies[id]
	if !ok {
		return common.Vec3{}, false
	}
	p := body.Position()
	return common.Vec3{X: float32(p.X), Z: float32(p.Y)}, true
}

// Raycast implements world.World with a segment query against the space.
func (a *Arena) Raycast(from, to common.Vec3) []world.Hit {
	start := cp.Vector{X: float64(from.X), Y: float64(from.Z)}
	end := cp.Vector{X: float64(to.X), Y: float64(to.Z)}
	length := from.DistanceTo(to)

	var hits []world.Hit
	a.space.SegmentQuery(start, end, 0, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, _ any) {
		hits = append(hits, world.Hit{
			Entity:   a.shapes[shape],
			Position: common.Vec3{X: float32(point.X), Z: float32(point.Y)},
			Normal:   common.Vec3{X: float32(normal.X), Z: float32(normal.Y)},
			Distance: float32(alpha) * length,
		})
	}, nil)
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// Actors implements world.World.
func (a *Arena) Actors() []world.EntityID {
	out := make([]world.EntityID, 0, len(a.bots)+1)
	for id := range a.bots {
		out = append(out, id)
	}
	if a.player != nil {
		out = append(out, a.player.ID())
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Combatant implements world.World.
func (a *Arena) Combatant(id world.EntityID) (world.Combatant, bool) {
	if b, ok := a.bots[id]; ok {
		return b, true
	}
	if a.player != nil && a.player.ID() == id {
		return a.player, true
	}
	return nil, false
}

// OwnerOf implements world.World.
func (a *Arena) OwnerOf(id world.EntityID) (world.EntityID, bool) {
	owner, ok := a.weapons[id]
	return owner, ok
}

// Step advances the whole simulation by dt.
func (a *Arena) Step(dt float32) {
	a.elapsed += dt

	for _, id := range a.botIDs() {
		b := a.bots[id]
		b.Update(dt, a.elapsed)

		body := a.bodies[id]
		if !b.Alive() {
			body.SetVelocity(0, 0)
			continue
		}
		v := b.DesiredVelocity()
		body.SetVelocity(float64(v.X), float64(v.Z))
		if b.ShootRequested() {
			a.fireShot(b)
		}
	}

	if a.player != nil {
		a.player.update(dt)
	}

	a.space.Step(float64(dt))
	a.removeFinished()
}

func (a *Arena) botIDs() []world.EntityID {
	out := make([]world.EntityID, 0, len(a.bots))
	for id := range a.bots {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// fireShot resolves a bot's ranged attack as a hitscan toward its target.
func (a *Arena) fireShot(b *bot.Bot) {
	tgt, ok := b.Target()
	if !ok {
		return
	}
	from := b.Position()
	to := tgt.Position

	var victim world.Combatant
	var point common.Vec3
	for _, hit := range a.Raycast(from, to) {
		if hit.Entity == b.ID() {
			continue
		}
		if hit.Entity == world.NoEntity {
			return // wall in the way
		}
		c, ok := a.Combatant(hit.Entity)
		if !ok {
			return
		}
		victim = c
		point = hit.Position
		break
	}
	if victim == nil {
		return
	}

	weapon := a.armed[b.ID()]
	var hitbox *world.Hitbox
	if a.rng.Float32() < shotHeadProbability {
		hitbox = &world.Hitbox{Name: "head", Head: true}
	}
	victim.Enqueue(world.Damage{
		Source:          weapon,
		Amount:          shotDamage,
		Hitbox:          hitbox,
		CritProbability: shotCritProbability,
	})
	victim.Enqueue(world.Impact{
		Point:     point,
		Direction: to.Sub(from).Normalized().Scale(shotImpulse),
	})
	logrus.WithFields(logrus.Fields{
		"shooter": b.ID(),
		"victim":  victim.ID(),
	}).Debug("shot fired")
}

// removeFinished despawns bots whose dying animation completed.
func (a *Arena) removeFinished() {
	for _, id := range a.botIDs() {
		b := a.bots[id]
		if !b.CanBeRemoved() {
			continue
		}
		if body, ok := a.bodies[id]; ok {
			body.EachShape(func(shape *cp.Shape) {
				a.space.RemoveShape(shape)
				delete(a.shapes, shape)
			})
			a.space.RemoveBody(body)
			delete(a.bodies, id)
		}
		delete(a.bots, id)
		if wid, ok := a.armed[id]; ok {
			delete(a.weapons, wid)
			delete(a.armed, id)
		}
		for _, other := range a.bots {
			other.OnActorRemoved(id)
		}
		logrus.WithField("id", id).Info("bot removed")
	}
}

// Hooks exposes the arena to scenario scripts.
func (a *Arena) Hooks() script.Hooks {
	return script.Hooks{
		Spawn: func(kind string, x, y, z float64) (uint64, error) {
			b, err := a.SpawnBot(defs.Kind(kind), common.Vec3{X: float32(x), Y: float32(y), Z: float32(z)})
			if err != nil {
				return 0, err
			}
			return uint64(b.ID()), nil
		},
		Damage: func(target uint64, amount float64, source uint64) bool {
			c, ok := a.Combatant(world.EntityID(target))
			if !ok {
				return false
			}
			c.Enqueue(world.Damage{Source: world.EntityID(source), Amount: float32(amount)})
			return true
		},
		Impact: func(target uint64, px, py, pz, dx, dy, dz float64) bool {
			c, ok := a.Combatant(world.EntityID(target))
			if !ok {
				return false
			}
			c.Enqueue(world.Impact{
				Point:     common.Vec3{X: float32(px), Y: float32(py), Z: float32(pz)},
				Direction: common.Vec3{X: float32(dx), Y: float32(dy), Z: float32(dz)},
			})
			return true
		},
		Bots: func() []uint64 {
			ids := a.botIDs()
			out := make([]uint64, len(ids))
			for i, id := range ids {
				out[i] = uint64(id)
			}
			return out
		},
		Position: func(id uint64) (float64, float64, float64, bool) {
			pos, ok := a.Position(world.EntityID(id))
			if !ok {
				return 0, 0, 0, false
			}
			return float64(pos.X), float64(pos.Y), float64(pos.Z), true
		},
		Health: func(id uint64) (float64, bool) {
			if b, ok := a.bots[world.EntityID(id)]; ok {
				return float64(b.Health()), true
			}
			if a.player != nil && uint64(a.player.ID()) == id {
				return float64(a.player.Health()), true
			}
			return 0, false
		},
		Log: func(msg string) { logrus.WithField("scenario", true).Info(msg) },
	}
}

// Summary returns a one-line state description per combatant.
func (a *Arena) Summary() []string {
	var out []string
	for _, id := range a.botIDs() {
		b := a.bots[id]
		out = append(out, fmt.Sprintf("bot %d %s health=%.1f loco=%s combat=%s",
			id, b.Kind(), b.Health(), b.LocomotionState(), b.CombatState()))
	}
	if a.player != nil {
		out = append(out, fmt.Sprintf("player %d health=%.1f", a.player.ID(), a.player.Health()))
	}
	return out
}

// bodyImpacts applies command impacts as physics impulses.
type bodyImpacts struct {
	body *cp.Body
}

func (s *bodyImpacts) Apply(point, direction common.Vec3) {
	if s == nil || s.body == nil {
		return
	}
	s.body.ApplyImpulseAtWorldPoint(
		cp.Vector{X: float64(direction.X), Y: float64(direction.Z)},
		cp.Vector{X: float64(point.X), Y: float64(point.Z)},
	)
}

// logAudio stands in for a real mixer; the sandbox only logs sound cues.
type logAudio struct{}

func (logAudio) Play(position common.Vec3, clip string, gain, pitch, rolloff float32) {
	logrus.WithFields(logrus.Fields{
		"clip": clip,
		"x":    position.X,
		"z":    position.Z,
		"gain": gain,
	}).Debug("sound")
}
