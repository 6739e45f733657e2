// Command sandbox runs the bot core in a small walled arena against a dummy
// player, headless by default or with a debug view. Scenarios scripted in
// tengo can drive spawns and damage.
package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/stationfall/common"
	"github.com/milk9111/stationfall/defs"
	"github.com/milk9111/stationfall/script"
)

const tickRate = 1.0 / 60.0

func main() {
	defsPath := flag.String("defs", "", "bot definitions YAML (default: embedded table)")
	scenarioPath := flag.String("scenario", "", "tengo scenario script")
	seed := flag.Int64("seed", 1, "rng seed")
	duration := flag.Float64("duration", 30, "headless run length in seconds")
	view := flag.Bool("view", false, "open the debug view")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := initDefinitions(*defsPath); err != nil {
		logrus.WithError(err).Fatal("load bot definitions")
	}

	arena := NewArena(*seed, 24, 24)
	arena.SpawnPlayer(common.Vec3{X: 12, Z: 12}, 150)
	spawnInitialBots(arena)

	var scenario *script.Runtime
	if *scenarioPath != "" {
		src, err := os.ReadFile(*scenarioPath)
		if err != nil {
			logrus.WithError(err).Fatal("read scenario")
		}
		scenario, err = script.New(src, arena.Hooks())
		if err != nil {
			logrus.WithError(err).Fatal("compile scenario")
		}
		if err := scenario.Setup(); err != nil {
			logrus.WithError(err).Fatal("scenario setup")
		}
	}

	var watcher *defs.Watcher
	if *defsPath != "" {
		w, err := defs.NewWatcher(*defsPath)
		if err != nil {
			logrus.WithError(err).Warn("definition watching disabled")
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	if *view {
		runView(arena, scenario, watcher, *defsPath)
		return
	}
	runHeadless(arena, scenario, watcher, *defsPath, float32(*duration))
}

func initDefinitions(path string) error {
	if path == "" {
		return defs.InitDefault()
	}
	return defs.InitFromFile(path)
}

// spawnInitialBots places one bot of each registered kind around the arena
// edge.
func spawnInitialBots(arena *Arena) {
	spots := []common.Vec3{
		{X: 3, Z: 3},
		{X: 21, Z: 3},
		{X: 3, Z: 21},
		{X: 21, Z: 21},
	}
	for i, kind := range defs.All() {
		pos := spots[i%len(spots)]
		if _, err := arena.SpawnBot(kind, pos); err != nil {
			logrus.WithError(err).WithField("kind", kind).Warn("spawn failed")
		}
	}
}

// maybeReload reinstalls the definition table when the watched file changed.
// New tables apply to bots spawned afterward; live bots keep their
// definition.
func maybeReload(watcher *defs.Watcher, path string) {
	if watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-watcher.Events:
			if !ok {
				return
			}
			if err := defs.InitFromFile(path); err != nil {
				logrus.WithError(err).Warn("definition reload rejected")
				continue
			}
			logrus.WithField("file", name).Info("definitions reloaded")
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logrus.WithError(err).Warn("definition watcher")
		default:
			return
		}
	}
}

func runHeadless(arena *Arena, scenario *script.Runtime, watcher *defs.Watcher, defsPath string, duration float32) {
	logrus.WithField("duration", duration).Info("running headless")
	for elapsed := float32(0); elapsed < duration; elapsed += tickRate {
		maybeReload(watcher, defsPath)
		if scenario != nil {
			if err := scenario.Tick(float64(elapsed)); err != nil {
				logrus.WithError(err).Error("scenario tick")
				scenario = nil
			}
		}
		arena.Step(tickRate)
	}
	for _, line := range arena.Summary() {
		logrus.Info(line)
	}
}

func runView(arena *Arena, scenario *script.Runtime, watcher *defs.Watcher, defsPath string) {
	ebiten.SetWindowSize(960, 960)
	ebiten.SetWindowTitle("stationfall sandbox")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	v := newView(arena, scenario, watcher, defsPath)
	if err := ebiten.RunGame(v); err != nil {
		logrus.WithError(err).Fatal("view closed")
	}
}
