package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"

	"github.com/milk9111/stationfall/bot"
	"github.com/milk9111/stationfall/defs"
	"github.com/milk9111/stationfall/script"
)

const pixelsPerMeter = 40

// View is the debug renderer: top-down circles and lines, no assets. Arrow
// keys or WASD steer the player so the bots have something to chase.
type View struct {
	arena    *Arena
	scenario *script.Runtime
	watcher  *defs.Watcher
	defsPath string
}

func newView(arena *Arena, scenario *script.Runtime, watcher *defs.Watcher, defsPath string) *View {
	return &View{arena: arena, scenario: scenario, watcher: watcher, defsPath: defsPath}
}

func (v *View) Update() error {
	maybeReload(v.watcher, v.defsPath)

	var mx, mz float32
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		mx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		mx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		mz--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		mz++
	}
	if v.arena.player != nil {
		v.arena.player.SetMove(mx, mz)
	}

	if v.scenario != nil {
		if err := v.scenario.Tick(float64(v.arena.elapsed)); err != nil {
			logrus.WithError(err).Error("scenario tick")
			v.scenario = nil
		}
	}
	v.arena.Step(tickRate)
	return nil
}

func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 18, G: 18, B: 24, A: 255})

	for _, w := range v.arena.walls {
		ebitenutil.DrawLine(screen,
			float64(w[0]*pixelsPerMeter), float64(w[1]*pixelsPerMeter),
			float64(w[2]*pixelsPerMeter), float64(w[3]*pixelsPerMeter),
			colornames.Slategray)
	}

	for _, id := range v.arena.botIDs() {
		b := v.arena.bots[id]
		pos := b.Position()
		x := float64(pos.X * pixelsPerMeter)
		y := float64(pos.Z * pixelsPerMeter)

		if tgt, ok := b.Target(); ok && b.Alive() {
			ebitenutil.DrawLine(screen, x, y,
				float64(tgt.Position.X*pixelsPerMeter),
				float64(tgt.Position.Z*pixelsPerMeter),
				color.RGBA{R: 120, G: 40, B: 40, A: 255})
		}

		ebitenutil.DrawCircle(screen, x, y, botRadius*pixelsPerMeter, botColor(b))
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("%s %.0f", b.Kind(), b.Health()),
			int(x)-16, int(y)-28)
	}

	if p := v.arena.player; p != nil {
		pos := p.Position()
		x := float64(pos.X * pixelsPerMeter)
		y := float64(pos.Z * pixelsPerMeter)
		ebitenutil.DrawCircle(screen, x, y, botRadius*pixelsPerMeter, colornames.Mediumseagreen)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("player %.0f", p.Health()), int(x)-16, int(y)-28)
	}

	ebitenutil.DebugPrintAt(screen, strings.Join(v.arena.Summary(), "\n"), 8, 8)
}

func (v *View) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(v.arena.width * pixelsPerMeter), int(v.arena.height * pixelsPerMeter)
}

func botColor(b *bot.Bot) color.Color {
	switch {
	case !b.Alive():
		return colornames.Dimgray
	case b.CombatState() == bot.CombatAttack:
		return colornames.Orangered
	case b.CombatState() == bot.CombatAim:
		return colornames.Skyblue
	case b.LocomotionState() == bot.LocoScream:
		return colornames.Gold
	default:
		return colornames.Burlywood
	}
}
