package bot

import (
	"math/rand"
	"os"
	"sort"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/stationfall/common"
	"github.com/milk9111/stationfall/defs"
	"github.com/milk9111/stationfall/world"
)

func TestMain(m *testing.M) {
	logrus.SetLevel(logrus.ErrorLevel)
	os.Exit(m.Run())
}

func testClip(name string, length float32) defs.ClipDef {
	return defs.ClipDef{Name: name, Length: length}
}

func testTable() map[defs.Kind]*defs.Definition {
	base := defs.Definition{
		Health:              100,
		WalkSpeed:           2,
		CloseCombatDistance: 1.5,
		Hostility:           defs.HostileToPlayer,
		PainSounds:          []string{"pain"},
		ScreamSounds:        []string{"scream"},
		AttackSounds:        []string{"swipe"},
		IdleSounds:          []string{"growl"},
		IdleClip:            testClip("idle", 1),
		WalkClip:            testClip("walk", 1),
		ScreamClip:          testClip("scream", 0.4),
		DyingClip:           testClip("dying", 0.5),
		Attacks: []defs.AttackDefinition{
			{Clip: testClip("attack", 1), HitTime: 0.5, Damage: 30, Speed: 1.3},
		},
	}

	mutant := base
	mutant.Kind = defs.Mutant

	zombie := base
	zombie.Kind = defs.Zombie
	zombie.CanUseWeapons = true
	zombie.AimClip = testClip("aim", 1)

	return map[defs.Kind]*defs.Definition{
		defs.Mutant: &mutant,
		defs.Zombie: &zombie,
	}
}

type fakeActor struct {
	id    world.EntityID
	pos   common.Vec3
	alive bool
	kind  defs.Kind
	isBot bool
	inbox []world.Command
}

func (a *fakeActor) ID() world.EntityID         { return a.id }
func (a *fakeActor) Position() common.Vec3      { return a.pos }
func (a *fakeActor) Alive() bool                { return a.alive }
func (a *fakeActor) Species() (defs.Kind, bool) { return a.kind, a.isBot }
func (a *fakeActor) Enqueue(cmd world.Command)  { a.inbox = append(a.inbox, cmd) }

func (a *fakeActor) damages() []world.Damage {
	var out []world.Damage
	for _, cmd := range a.inbox {
		if d, ok := cmd.(world.Damage); ok {
			out = append(out, d)
		}
	}
	return out
}

type fakeWorld struct {
	positions  map[world.EntityID]common.Vec3
	combatants map[world.EntityID]world.Combatant
	owners     map[world.EntityID]world.EntityID
	rays       []world.Hit
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		positions:  map[world.EntityID]common.Vec3{},
		combatants: map[world.EntityID]world.Combatant{},
		owners:     map[world.EntityID]world.EntityID{},
	}
}

func (w *fakeWorld) Position(id world.EntityID) (common.Vec3, bool) {
	pos, ok := w.positions[id]
	return pos, ok
}

func (w *fakeWorld) Raycast(from, to common.Vec3) []world.Hit { return w.rays }

func (w *fakeWorld) Actors() []world.EntityID {
	out := make([]world.EntityID, 0, len(w.combatants))
	for id := range w.combatants {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (w *fakeWorld) Combatant(id world.EntityID) (world.Combatant, bool) {
	c, ok := w.combatants[id]
	return c, ok
}

func (w *fakeWorld) OwnerOf(id world.EntityID) (world.EntityID, bool) {
	owner, ok := w.owners[id]
	return owner, ok
}

type audioLog struct {
	plays []string
}

func (a *audioLog) Play(_ common.Vec3, clip string, _, _, _ float32) {
	a.plays = append(a.plays, clip)
}

func (a *audioLog) count(clip string) int {
	n := 0
	for _, c := range a.plays {
		if c == clip {
			n++
		}
	}
	return n
}

type impactLog struct {
	points     []common.Vec3
	directions []common.Vec3
}

func (s *impactLog) Apply(point, direction common.Vec3) {
	s.points = append(s.points, point)
	s.directions = append(s.directions, direction)
}

const (
	testBotID    world.EntityID = 1
	testPlayerID world.EntityID = 2
)

// newTestBot builds a bot of the given kind at the origin with one living
// player combatant at playerPos. Raycasts are clear unless a test blocks
// them.
func newTestBot(t *testing.T, kind defs.Kind, playerPos common.Vec3) (*Bot, *fakeWorld, *fakeActor, *audioLog) {
	t.Helper()
	defs.Reset()
	if err := defs.Init(testTable()); err != nil {
		t.Fatalf("init defs: %v", err)
	}

	w := newFakeWorld()
	player := &fakeActor{id: testPlayerID, pos: playerPos, alive: true}
	w.combatants[testPlayerID] = player
	w.positions[testPlayerID] = playerPos
	w.positions[testBotID] = common.Vec3{}

	audio := &audioLog{}
	b, err := New(Config{
		ID:    testBotID,
		Kind:  kind,
		World: w,
		Audio: audio,
		Rand:  rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("new bot: %v", err)
	}
	w.combatants[testBotID] = b
	return b, w, player, audio
}

func step(b *Bot, n int, dt float32) {
	for i := 0; i < n; i++ {
		b.Update(dt, float32(i)*dt)
	}
}
