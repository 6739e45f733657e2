package script

import (
	"testing"
)

const testScenario = `
setup := func(engine, state) {
	state.mutants = 0
	id := engine.spawn("mutant", 1.0, 0.0, 2.0)
	if id != undefined {
		state.mutants += 1
	}
	engine.log("scenario ready")
}

tick := func(engine, state, elapsed) {
	state.ticks = (state.ticks != undefined ? state.ticks : 0) + 1
	if elapsed > 0.5 && state.hit == undefined {
		for id in engine.bots() {
			engine.damage(id, 25.0, 0)
		}
		state.hit = true
	}
}
`

func TestRuntime(t *testing.T) {
	var spawned []string
	var damaged []uint64
	var logged []string

	hooks := Hooks{
		Spawn: func(kind string, x, y, z float64) (uint64, error) {
			spawned = append(spawned, kind)
			return 7, nil
		},
		Damage: func(target uint64, amount float64, source uint64) bool {
			if amount != 25.0 {
				t.Fatalf("unexpected amount %v", amount)
			}
			damaged = append(damaged, target)
			return true
		},
		Bots: func() []uint64 { return []uint64{7} },
		Log:  func(msg string) { logged = append(logged, msg) },
	}

	rt, err := New([]byte(testScenario), hooks)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := rt.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if len(spawned) != 1 || spawned[0] != "mutant" {
		t.Fatalf("expected one mutant spawn, got %v", spawned)
	}
	if len(logged) != 1 || logged[0] != "scenario ready" {
		t.Fatalf("expected setup log, got %v", logged)
	}

	// Damage fires once, after the elapsed threshold.
	for i := 0; i < 3; i++ {
		if err := rt.Tick(float64(i) * 0.4); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	if len(damaged) != 1 || damaged[0] != 7 {
		t.Fatalf("expected one damage call to bot 7, got %v", damaged)
	}
}

func TestRuntimeRejectsBrokenScript(t *testing.T) {
	if _, err := New([]byte(`setup := func(engine`), Hooks{}); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestRuntimeNilHooks(t *testing.T) {
	rt, err := New([]byte(`
setup := func(engine, state) {
	engine.spawn("mutant", 0.0, 0.0, 0.0)
	engine.damage(1, 5.0)
	engine.log("x")
}
tick := func(engine, state, elapsed) {}
`), Hooks{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := rt.Setup(); err != nil {
		t.Fatalf("setup with nil hooks should be inert, got %v", err)
	}
}
