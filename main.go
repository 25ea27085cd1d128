package main

import (
	"errors"
	"flag"
	"log"

	"github.com/benbjohnson/clock"
	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/flying-logo/internal/asset"
	"github.com/iburimskiy/flying-logo/internal/audio"
	"github.com/iburimskiy/flying-logo/internal/config"
	"github.com/iburimskiy/flying-logo/internal/game"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	fullscreen := flag.Bool("fullscreen", false, "start in fullscreen")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}

	deps := game.Deps{
		Clock: clock.New(),
		Fonts: asset.NewLoader(cfg.Font.Timeout),
	}
	if cfg.AudioEnabled() {
		player, err := audio.NewPlayer(audio.SpeakerOutput(), cfg.Audio.SampleRate, audio.ChordSpec{
			Notes:    cfg.Audio.Notes,
			Sustain:  cfg.Audio.Sustain,
			Release:  cfg.Audio.Release,
			VolumeDB: cfg.VolumeDB(),
		})
		if err != nil {
			log.Fatalf("[Main] %v", err)
		}
		if cfg.Audio.Sample != "" {
			buf, err := audio.LoadSample(cfg.Audio.Sample, beep.SampleRate(cfg.Audio.SampleRate))
			if err != nil {
				log.Printf("[Main] %v, using synthesised chord", err)
			} else {
				player.UseSample(buf)
			}
		}
		deps.Player = player
	}

	g, err := game.New(cfg, deps)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	defer g.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(*fullscreen || cfg.Window.Fullscreen)

	log.Printf("[Main] %s started", cfg.Window.Title)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("[Main] %v", err)
	}
}
