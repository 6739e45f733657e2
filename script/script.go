// Package script embeds a tengo interpreter for sandbox scenarios. A
// scenario defines setup(engine, state) and tick(engine, state, elapsed);
// the engine table exposes spawn, damage, impact and query hooks supplied by
// the host, and the state map persists between calls.
package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Hooks are the host callbacks a scenario can reach. Nil hooks make the
// matching engine function report failure instead of crashing the script.
type Hooks struct {
	Spawn    func(kind string, x, y, z float64) (uint64, error)
	Damage   func(target uint64, amount float64, source uint64) bool
	Impact   func(target uint64, px, py, pz, dx, dy, dz float64) bool
	Bots     func() []uint64
	Position func(id uint64) (x, y, z float64, ok bool)
	Health   func(id uint64) (float64, bool)
	Log      func(msg string)
}

const dispatchScript = `
if __phase == "setup" {
	setup(__engine, __state)
} else if __phase == "tick" {
	tick(__engine, __state, __elapsed)
}
`

// Runtime is one compiled scenario.
type Runtime struct {
	compiled  *tengo.Compiled
	stateData *tengo.Map
	hooks     Hooks
}

// New compiles a scenario source. The script must define setup and tick.
func New(src []byte, hooks Hooks) (*Runtime, error) {
	full := string(src) + "\n" + dispatchScript
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__elapsed", 0.0)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile scenario: %w", err)
	}

	return &Runtime{
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
		hooks:     hooks,
	}, nil
}

// Setup runs the scenario's setup phase once.
func (rt *Runtime) Setup() error {
	return rt.runPhase("setup", 0)
}

// Tick runs the scenario's tick phase with the elapsed simulation time.
func (rt *Runtime) Tick(elapsed float64) error {
	return rt.runPhase("tick", elapsed)
}

func (rt *Runtime) runPhase(phase string, elapsed float64) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil scenario runtime")
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", rt.buildEngine()); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Set("__elapsed", &tengo.Float{Value: elapsed}); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func (rt *Runtime) buildEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["spawn"] = &tengo.UserFunction{Name: "spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.hooks.Spawn == nil || len(args) < 4 {
			return tengo.UndefinedValue, nil
		}
		kind := strings.TrimSpace(objectAsString(args[0]))
		x, _ := tengo.ToFloat64(args[1])
		y, _ := tengo.ToFloat64(args[2])
		z, _ := tengo.ToFloat64(args[3])
		id, err := rt.hooks.Spawn(kind, x, y, z)
		if err != nil {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Int{Value: int64(id)}, nil
	}}

	values["damage"] = &tengo.UserFunction{Name: "damage", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.hooks.Damage == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		target, _ := tengo.ToInt64(args[0])
		amount, _ := tengo.ToFloat64(args[1])
		var source int64
		if len(args) >= 3 {
			source, _ = tengo.ToInt64(args[2])
		}
		if rt.hooks.Damage(uint64(target), amount, uint64(source)) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["impact"] = &tengo.UserFunction{Name: "impact", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.hooks.Impact == nil || len(args) < 7 {
			return tengo.FalseValue, nil
		}
		target, _ := tengo.ToInt64(args[0])
		var f [6]float64
		for i := 0; i < 6; i++ {
			f[i], _ = tengo.ToFloat64(args[i+1])
		}
		if rt.hooks.Impact(uint64(target), f[0], f[1], f[2], f[3], f[4], f[5]) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["bots"] = &tengo.UserFunction{Name: "bots", Value: func(args ...tengo.Object) (tengo.Object, error) {
		out := &tengo.Array{}
		if rt.hooks.Bots == nil {
			return out, nil
		}
		for _, id := range rt.hooks.Bots() {
			out.Value = append(out.Value, &tengo.Int{Value: int64(id)})
		}
		return out, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.hooks.Position == nil || len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		id, _ := tengo.ToInt64(args[0])
		x, y, z, ok := rt.hooks.Position(uint64(id))
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: x},
			&tengo.Float{Value: y},
			&tengo.Float{Value: z},
		}}, nil
	}}

	values["health"] = &tengo.UserFunction{Name: "health", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.hooks.Health == nil || len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		id, _ := tengo.ToInt64(args[0])
		h, ok := rt.hooks.Health(uint64(id))
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Float{Value: h}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.hooks.Log == nil || len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		rt.hooks.Log(objectAsString(args[0]))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(o tengo.Object) string {
	if s, ok := tengo.ToString(o); ok {
		return s
	}
	return ""
}
