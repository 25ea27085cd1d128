package game

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/iburimskiy/flying-logo/internal/asset"
	"github.com/iburimskiy/flying-logo/internal/config"
	"github.com/iburimskiy/flying-logo/internal/scene"
	"github.com/iburimskiy/flying-logo/internal/timeline"
)

// ChordPlayer plays the arrival chord.
type ChordPlayer interface {
	Init()
	Ready() bool
	PlayChord() bool
	Muted() bool
	SetMuted(bool)
	Level() float64
	Played() int64
}

// FontLoader loads fonts off the frame loop.
type FontLoader interface {
	Load(ctx context.Context, src asset.Source)
	Results() <-chan asset.Result
}

// Deps are the collaborators of a Game. Player may be nil when audio is
// disabled.
type Deps struct {
	Clock  clock.Clock
	Player ChordPlayer
	Fonts  FontLoader
}

type game struct {
	cfg    *config.Config
	clock  clock.Clock
	player ChordPlayer
	fonts  FontLoader

	ctx    context.Context
	cancel context.CancelFunc

	timeline *timeline.Controller
	scene    *scene.Scene
	frame    timeline.Frame

	// banner
	face      *text.GoTextFaceSource
	banner    *bannerImage
	fontName  string
	extrusion int

	// input
	keys       []ebiten.Key
	audioAsked bool
	dialogOpen atomic.Bool

	// stats
	chords  int
	lastErr error
}

// New wires the presentation. It starts loading the configured font and,
// unless audio waits for input, initialising the speaker.
func New(cfg *config.Config, deps Deps) (*game, error) {
	tc, err := cfg.TimelineConfig()
	if err != nil {
		return nil, err
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.New()
	}

	ctx, cancel := context.WithCancel(context.Background())
	g := &game{
		cfg:       cfg,
		clock:     clk,
		player:    deps.Player,
		fonts:     deps.Fonts,
		ctx:       ctx,
		cancel:    cancel,
		timeline:  timeline.New(tc, clk.Now()),
		extrusion: config.TextExtrudeLayers,
		scene: scene.New(scene.Options{
			Width:         cfg.Window.Width,
			Height:        cfg.Window.Height,
			ParticleCount: cfg.Scene.ParticleCount,
			Seed:          cfg.Scene.Seed,
		}),
	}

	if g.player != nil && !cfg.Audio.InitOnInput {
		g.player.Init()
		g.audioAsked = true
	}
	if g.fonts != nil {
		g.fonts.Load(ctx, asset.Source{URL: cfg.Font.URL, Path: cfg.Font.Path})
	}
	return g, nil
}

// Close cancels pending font fetches.
func (g *game) Close() {
	g.cancel()
}

func (g *game) Update() error {
	quit := g.handleInput()
	if quit {
		return ebiten.Termination
	}
	g.step(g.clock.Now())
	return nil
}

// step runs one frame of logic at now.
func (g *game) step(now time.Time) {
	g.pollFonts(now)

	g.frame = g.timeline.Advance(now)
	if g.frame.FireChord {
		g.chords++
		if g.player != nil && g.player.PlayChord() {
			log.Printf("[Timeline] chord at %v into cycle", g.frame.Elapsed)
		}
	}

	g.scene.Step(now)
}

// pollFonts turns finished loads into ready transitions on the timeline.
func (g *game) pollFonts(now time.Time) {
	if g.fonts == nil {
		return
	}
	for {
		select {
		case r := <-g.fonts.Results():
			if r.Err != nil {
				g.lastErr = r.Err
				continue
			}
			g.face = r.Face
			g.fontName = r.Source.String()
			if g.banner != nil {
				g.banner.img.Deallocate()
				g.banner = nil
			}
			g.lastErr = nil
			g.timeline.Ready(now)
			log.Printf("[Timeline] banner ready with %s, cycle restarted", g.fontName)
		default:
			return
		}
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return g.cfg.Window.Width, g.cfg.Window.Height
	}
	if w, h := g.scene.Camera.Viewport(); w != outsideWidth || h != outsideHeight {
		g.scene.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
