package game

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/flying-logo/internal/asset"
)

// handleInput processes keys and reports whether the game should quit.
func (g *game) handleInput() bool {
	if !g.audioAsked && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.initAudio()
	}
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if g.applyKey(k) {
			return true
		}
	}
	return false
}

// applyKey reacts to a freshly pressed key. Any key counts as the first
// interaction for deferred audio.
func (g *game) applyKey(k ebiten.Key) (quit bool) {
	if !g.audioAsked {
		g.initAudio()
	}
	switch k {
	case ebiten.KeyEscape, ebiten.KeyQ:
		return true
	case ebiten.KeyM:
		g.toggleMute()
	case ebiten.KeyO:
		g.openFontDialog()
	case ebiten.KeyF:
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	return false
}

// initAudio starts speaker initialisation on the first user interaction.
func (g *game) initAudio() {
	g.audioAsked = true
	if g.player == nil {
		return
	}
	g.player.Init()
}

func (g *game) toggleMute() {
	if g.player == nil {
		return
	}
	g.player.SetMuted(!g.player.Muted())
}

// openFontDialog asks for a font file without blocking the frame loop. The
// chosen file goes through the regular loader, so a successful load
// restarts the cycle.
func (g *game) openFontDialog() {
	if g.fonts == nil || !g.dialogOpen.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer g.dialogOpen.Store(false)
		filename, err := zenity.SelectFile(
			zenity.Title("Open Font"),
			zenity.FileFilters{{
				Name:     "Fonts",
				Patterns: []string{"*.ttf", "*.otf", "*.ttc"},
			}},
		)
		if err != nil {
			if !errors.Is(err, zenity.ErrCanceled) {
				log.Printf("[Input] font dialog: %v", err)
			}
			return
		}
		log.Printf("[Input] selected font %s", filename)
		g.fonts.Load(g.ctx, asset.Source{Path: filename})
	}()
}
