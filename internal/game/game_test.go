package game

import (
	"context"
	"errors"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/flying-logo/internal/asset"
	"github.com/iburimskiy/flying-logo/internal/config"
)

type fakePlayer struct {
	inits  int
	ready  bool
	muted  bool
	chords int
}

func (p *fakePlayer) Init() { p.inits++; p.ready = true }
func (p *fakePlayer) Ready() bool { return p.ready }
func (p *fakePlayer) Muted() bool { return p.muted }
func (p *fakePlayer) SetMuted(m bool) { p.muted = m }
func (p *fakePlayer) Level() float64 { return 0 }
func (p *fakePlayer) Played() int64 { return int64(p.chords) }
func (p *fakePlayer) PlayChord() bool {
	if !p.ready || p.muted {
		return false
	}
	p.chords++
	return true
}

type fakeLoader struct {
	requested []asset.Source
	results   chan asset.Result
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{results: make(chan asset.Result, 4)}
}

func (l *fakeLoader) Load(ctx context.Context, src asset.Source) {
	l.requested = append(l.requested, src)
}

func (l *fakeLoader) Results() <-chan asset.Result { return l.results }

func (l *fakeLoader) succeed(t *testing.T) {
	t.Helper()
	embedded := asset.NewLoader(time.Second)
	embedded.Load(context.Background(), asset.Source{})
	select {
	case r := <-embedded.Results():
		if r.Err != nil {
			t.Fatalf("load embedded font: %v", r.Err)
		}
		l.results <- r
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out loading embedded font")
	}
}

func newTestGame(t *testing.T, cfg *config.Config) (*game, *clock.Mock, *fakePlayer, *fakeLoader) {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.Scene.ParticleCount = 10
	cfg.Scene.Seed = 1

	clk := clock.NewMock()
	player := &fakePlayer{}
	loader := newFakeLoader()
	g, err := New(cfg, Deps{Clock: clk, Player: player, Fonts: loader})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(g.Close)
	return g, clk, player, loader
}

func TestNewStartsFontAndAudio(t *testing.T) {
	g, _, player, loader := newTestGame(t, nil)
	if len(loader.requested) != 1 {
		t.Fatalf("Expected one font request, got %d", len(loader.requested))
	}
	if loader.requested[0].String() != "embedded:gobold" {
		t.Errorf("Expected embedded font by default, got %s", loader.requested[0])
	}
	if player.inits != 1 {
		t.Errorf("Expected audio init at startup, got %d", player.inits)
	}
	if g.audioStatus() != "audio ready" {
		t.Errorf("Unexpected audio status %q", g.audioStatus())
	}
}

func TestInitOnInputDefersAudio(t *testing.T) {
	cfg := config.Default()
	cfg.Audio.InitOnInput = true
	g, _, player, _ := newTestGame(t, cfg)
	if player.inits != 0 {
		t.Error("Expected audio to wait for input")
	}
	if g.audioStatus() != "press any key for audio" {
		t.Errorf("Unexpected audio status %q", g.audioStatus())
	}
	g.initAudio()
	if player.inits != 1 {
		t.Error("Expected audio init after input")
	}
}

func TestBannerHiddenUntilFontReady(t *testing.T) {
	g, clk, player, loader := newTestGame(t, nil)

	for i := 0; i < 20; i++ {
		clk.Add(time.Second)
		g.step(clk.Now())
	}
	if g.frame.Visible {
		t.Error("Expected banner hidden without a font")
	}
	if player.chords != 0 {
		t.Errorf("Expected no chords without a font, got %d", player.chords)
	}
	if g.scene.ParticleRotY == 0 {
		t.Error("Expected ambient motion without a font")
	}

	readyAt := clk.Now()
	loader.succeed(t)
	g.step(readyAt)
	if !g.frame.Visible {
		t.Fatal("Expected banner visible after font ready")
	}
	if !g.timeline.CycleStart().Equal(readyAt) {
		t.Errorf("Expected cycle to start at font ready, got %v", g.timeline.CycleStart())
	}
	if g.frame.Pose.Position.Z != -100 {
		t.Errorf("Expected banner at far position, got %f", g.frame.Pose.Position.Z)
	}
}

func TestFontFailureKeepsAnimating(t *testing.T) {
	g, clk, _, loader := newTestGame(t, nil)
	loader.results <- asset.Result{Err: errors.New("boom")}

	clk.Add(16 * time.Millisecond)
	g.step(clk.Now())
	if g.frame.Visible {
		t.Error("Expected no banner after font failure")
	}
	if g.lastErr == nil {
		t.Error("Expected font error to be recorded")
	}
	if g.scene.ParticleRotY == 0 {
		t.Error("Expected particles to keep moving")
	}
}

func TestChordOncePerCycle(t *testing.T) {
	g, clk, player, loader := newTestGame(t, nil)
	loader.succeed(t)
	g.step(clk.Now())

	for i := 0; i < 450; i++ {
		clk.Add(100 * time.Millisecond)
		g.step(clk.Now())
	}
	if player.chords != 3 {
		t.Errorf("Expected 3 chords in 45s, got %d", player.chords)
	}
	if g.chords != 3 {
		t.Errorf("Expected 3 chord triggers, got %d", g.chords)
	}
}

func TestMutedChordStillAdvancesCycle(t *testing.T) {
	g, clk, player, loader := newTestGame(t, nil)
	loader.succeed(t)
	g.step(clk.Now())
	g.toggleMute()

	for i := 0; i < 150; i++ {
		clk.Add(100 * time.Millisecond)
		g.step(clk.Now())
	}
	if player.chords != 0 {
		t.Errorf("Expected muted player to drop chords, got %d", player.chords)
	}
	if g.chords != 1 {
		t.Errorf("Expected the trigger to fire once anyway, got %d", g.chords)
	}
	g.toggleMute()
	if player.muted {
		t.Error("Expected toggle to unmute")
	}
}

func TestSecondFontRestartsCycle(t *testing.T) {
	g, clk, _, loader := newTestGame(t, nil)
	loader.succeed(t)
	g.step(clk.Now())

	clk.Add(13 * time.Second)
	g.step(clk.Now())
	if !g.timeline.SoundFired() {
		t.Fatal("Expected chord fired by 13s")
	}

	loader.succeed(t)
	g.step(clk.Now())
	if g.timeline.SoundFired() {
		t.Error("Expected new font to restart the cycle")
	}
	if g.frame.Pose.Position.Z != -100 {
		t.Errorf("Expected far position after restart, got %f", g.frame.Pose.Position.Z)
	}
}

func TestLayoutResizesCamera(t *testing.T) {
	g, _, _, _ := newTestGame(t, nil)
	w, h := g.Layout(640, 480)
	if w != 640 || h != 480 {
		t.Errorf("Expected layout to follow window, got %dx%d", w, h)
	}
	if cw, ch := g.scene.Camera.Viewport(); cw != 640 || ch != 480 {
		t.Errorf("Expected camera viewport 640x480, got %dx%d", cw, ch)
	}
	w, h = g.Layout(0, 0)
	if w != config.WindowWidth || h != config.WindowHeight {
		t.Errorf("Expected default size for degenerate layout, got %dx%d", w, h)
	}
}

func TestNoAudio(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.ParticleCount = 10
	clk := clock.NewMock()
	loader := newFakeLoader()
	g, err := New(cfg, Deps{Clock: clk, Fonts: loader})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer g.Close()

	loader.succeed(t)
	g.step(clk.Now())
	clk.Add(12 * time.Second)
	g.step(clk.Now())
	if g.chords != 1 {
		t.Errorf("Expected trigger without a player, got %d", g.chords)
	}
	g.toggleMute()
	if g.audioStatus() != "audio off" {
		t.Errorf("Unexpected audio status %q", g.audioStatus())
	}
}

func TestColorHelpers(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	bg := color.RGBA{B: 32, A: 255}
	if got := fogBlend(red, bg, 0); got != red {
		t.Errorf("Expected no fog at 0, got %v", got)
	}
	if got := fogBlend(red, bg, 1); got != bg {
		t.Errorf("Expected full fog at 1, got %v", got)
	}
	if got := brighten(color.RGBA{A: 255}, 1); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("Expected white, got %v", got)
	}
	if got := withAlpha(red, 0.5); got.A != 127 || got.R != 127 {
		t.Errorf("Expected premultiplied half red, got %v", got)
	}
	if got := formatDuration(12500 * time.Millisecond); got != "12.5s" {
		t.Errorf("Unexpected duration format %q", got)
	}
}

func TestApplyKey(t *testing.T) {
	cfg := config.Default()
	cfg.Audio.InitOnInput = true
	g, _, player, _ := newTestGame(t, cfg)

	if g.applyKey(ebiten.KeyM) {
		t.Error("Expected M not to quit")
	}
	if player.inits != 1 {
		t.Errorf("Expected first key to start audio, got %d inits", player.inits)
	}
	if !player.muted {
		t.Error("Expected M to mute")
	}
	g.applyKey(ebiten.KeyM)
	if player.muted {
		t.Error("Expected second M to unmute")
	}
	if player.inits != 1 {
		t.Errorf("Expected audio to start once, got %d inits", player.inits)
	}
	if !g.applyKey(ebiten.KeyEscape) || !g.applyKey(ebiten.KeyQ) {
		t.Error("Expected Esc and Q to quit")
	}
	if g.applyKey(ebiten.KeySpace) {
		t.Error("Expected unbound key not to quit")
	}
}

func TestStatusLine(t *testing.T) {
	g, clk, _, loader := newTestGame(t, nil)
	if got := g.statusLine(); !strings.HasPrefix(got, "Loading font...") {
		t.Errorf("Unexpected status before font %q", got)
	}

	loader.succeed(t)
	g.step(clk.Now())
	clk.Add(13 * time.Second)
	g.step(clk.Now())

	got := g.statusLine()
	if !strings.HasPrefix(got, "still 13.0s / 15.0s") {
		t.Errorf("Unexpected phase status %q", got)
	}
	if !strings.Contains(got, "chords 1/1") {
		t.Errorf("Expected played/triggered chord count in %q", got)
	}
}
