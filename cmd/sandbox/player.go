package main

import (
	"sync"

	"github.com/jakecoffman/cp/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/stationfall/common"
	"github.com/milk9111/stationfall/defs"
	"github.com/milk9111/stationfall/world"
)

// Player is the dummy combatant the bots hunt. It takes damage through the
// same command inbox as bots, but has no behavior of its own beyond an
// optional patrol direction set by the view.
type Player struct {
	id     world.EntityID
	body   *cp.Body
	health float32

	mu    sync.Mutex
	inbox []world.Command

	moveX float32
	moveZ float32
	speed float32
}

func newPlayer(id world.EntityID, body *cp.Body, health float32) *Player {
	return &Player{id: id, body: body, health: health, speed: 3}
}

// ID implements world.Combatant.
func (p *Player) ID() world.EntityID { return p.id }

// Position implements world.Combatant.
func (p *Player) Position() common.Vec3 {
	pos := p.body.Position()
	return common.Vec3{X: float32(pos.X), Z: float32(pos.Y)}
}

// Alive implements world.Combatant.
func (p *Player) Alive() bool { return p.health > 0 }

// Species implements world.Combatant; the player is not a bot.
func (p *Player) Species() (defs.Kind, bool) { return "", false }

// Enqueue implements world.Combatant. Safe from any goroutine.
func (p *Player) Enqueue(cmd world.Command) {
	if cmd == nil {
		return
	}
	p.mu.Lock()
	p.inbox = append(p.inbox, cmd)
	p.mu.Unlock()
}

// Health returns remaining health.
func (p *Player) Health() float32 { return p.health }

// SetMove sets the patrol direction, normalized on use.
func (p *Player) SetMove(x, z float32) {
	p.moveX = x
	p.moveZ = z
}

func (p *Player) update(dt float32) {
	p.mu.Lock()
	inbox := p.inbox
	p.inbox = nil
	p.mu.Unlock()

	for _, cmd := range inbox {
		switch c := cmd.(type) {
		case world.Damage:
			if !p.Alive() {
				continue
			}
			p.health -= c.Amount
			logrus.WithFields(logrus.Fields{
				"amount": c.Amount,
				"health": p.health,
			}).Info("player hit")
		case world.Impact:
			p.body.ApplyImpulseAtWorldPoint(
				cp.Vector{X: float64(c.Direction.X), Y: float64(c.Direction.Z)},
				cp.Vector{X: float64(c.Point.X), Y: float64(c.Point.Z)},
			)
		}
	}

	if !p.Alive() {
		p.body.SetVelocity(0, 0)
		return
	}
	dir := common.Vec3{X: p.moveX, Z: p.moveZ}.Normalized()
	p.body.SetVelocity(float64(dir.X*p.speed), float64(dir.Z*p.speed))
}
