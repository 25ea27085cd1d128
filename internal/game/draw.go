package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	groundOpacity   = 0.3
	particleOpacity = 0.6
	particleSize    = 0.5
	lightHaloRadius = 1.5
	lightOpacity    = 0.35
)

var groundColor = color.RGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.scene.Background)

	g.drawGround(screen)
	g.drawParticles(screen)
	g.drawLights(screen)
	g.drawBanner(screen)
	g.drawStatus(screen)
}

func (g *game) drawGround(screen *ebiten.Image) {
	cam := g.scene.Camera
	for _, seg := range g.scene.Ground() {
		seg, ok := cam.Clip(seg)
		if !ok {
			continue
		}
		x0, y0, _, ok0 := cam.Project(seg.A)
		x1, y1, _, ok1 := cam.Project(seg.B)
		if !ok0 || !ok1 {
			continue
		}
		// Fade by the nearer end so lines running into the distance still show.
		d := min(cam.Depth(seg.A), cam.Depth(seg.B))
		clr := withAlpha(fogBlend(groundColor, g.scene.Background, g.scene.Fog.Factor(d)), groundOpacity)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, clr, true)
	}
}

func (g *game) drawParticles(screen *ebiten.Image) {
	cam := g.scene.Camera
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	for _, p := range g.scene.Particles() {
		x, y, scale, ok := cam.Project(p)
		if !ok {
			continue
		}
		size := max(particleSize*scale, 1)
		clr := withAlpha(fogBlend(white, g.scene.Background, g.scene.Fog.Factor(cam.Depth(p))), particleOpacity)
		vector.DrawFilledRect(screen, float32(x-size/2), float32(y-size/2), float32(size), float32(size), clr, false)
	}
}

func (g *game) drawLights(screen *ebiten.Image) {
	cam := g.scene.Camera
	for _, l := range g.scene.Lights {
		x, y, scale, ok := cam.Project(l.Position)
		if !ok {
			continue
		}
		r := lightHaloRadius * scale
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r), withAlpha(l.Color, lightOpacity*0.4), true)
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r/3), withAlpha(l.Color, lightOpacity), true)
	}
}

func (g *game) drawStatus(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, g.statusLine(), 12, 12)
	ebitenutil.DebugPrintAt(screen, "O: open font  M: mute  F: fullscreen  Esc/Q: quit", 12, 28)
}

func (g *game) statusLine() string {
	var status string
	switch {
	case !g.timeline.IsReady():
		status = "Loading font..."
	default:
		status = fmt.Sprintf("%s %s / %s", g.frame.Phase, formatDuration(g.frame.Elapsed),
			formatDuration(g.timeline.Config().Total()))
	}
	status += " | " + g.audioStatus()
	if g.player != nil {
		status += fmt.Sprintf(" | chords %d/%d", g.player.Played(), g.chords)
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}

func (g *game) audioStatus() string {
	switch {
	case g.player == nil:
		return "audio off"
	case g.player.Muted():
		return "muted"
	case g.player.Ready():
		return "audio ready"
	case g.cfg.Audio.InitOnInput && !g.audioAsked:
		return "press any key for audio"
	default:
		return "audio starting"
	}
}
