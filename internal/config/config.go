package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/flying-logo/internal/timeline"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "2026 HAPPY NEW YEAR - Flying Logo"

	BannerText = "2026\nHAPPY\nNEW YEAR"

	// Scene parameters
	ParticleCount      = 1000
	ParticleSpread     = 200
	ParticleSpinY      = 0.0005
	ParticleSpinX      = 0.0002
	GroundSize         = 100
	GroundSegments     = 20
	GroundY            = -10
	CameraZ            = 30
	CameraFOV          = 75
	CameraNear         = 0.1
	CameraFar          = 1000
	FogNear            = 10
	FogFar             = 100
	LightOrbitRadiusX  = 20
	LightOrbitRadiusY  = 10
	LightZ             = 10
	SecondLightSpeed   = 0.7
	LightTimeScale     = 0.001
	TextSize           = 3
	TextDepth          = 1
	TextExtrudeLayers  = 6
	BackgroundColorHex = 0x000020

	// Audio parameters
	SampleRate   = 44100
	ChordSustain = 1500 * time.Millisecond
	ChordRelease = 400 * time.Millisecond
	ChordVolume  = -10 // dB

	FontFetchTimeout = 15 * time.Second
)

// ChordNotes is the C major triad doubled an octave up.
var ChordNotes = []string{"C3", "E3", "G3", "C4", "E4", "G4"}

// Config is the runtime configuration. Zero values in a loaded file fall
// back to the defaults.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Timeline TimelineConfig `yaml:"timeline"`
	Audio    AudioConfig    `yaml:"audio"`
	Font     FontConfig     `yaml:"font"`
	Scene    SceneConfig    `yaml:"scene"`
}

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// TimelineConfig mirrors timeline.Config with file-friendly types.
type TimelineConfig struct {
	MoveDuration     time.Duration `yaml:"move_duration"`
	StillDuration    time.Duration `yaml:"still_duration"`
	FarZ             *float64      `yaml:"far_z"`
	NearZ            *float64      `yaml:"near_z"`
	StartScale       float64       `yaml:"start_scale"`
	WobbleAmplitude  *float64      `yaml:"wobble_amplitude"`
	SpinTurns        *float64      `yaml:"spin_turns"`
	PrimaryLightness float64       `yaml:"primary_lightness"`
	GlowLightness    float64       `yaml:"glow_lightness"`
}

type AudioConfig struct {
	Enabled     *bool         `yaml:"enabled"`
	InitOnInput bool          `yaml:"init_on_input"`
	SampleRate  int           `yaml:"sample_rate"`
	Notes       []string      `yaml:"notes"`
	Sustain     time.Duration `yaml:"sustain"`
	Release     time.Duration `yaml:"release"`
	VolumeDB    *float64      `yaml:"volume_db"`

	// Sample is an optional wav/mp3/flac hit played instead of the chord.
	Sample string `yaml:"sample"`
}

type FontConfig struct {
	URL     string        `yaml:"url"`
	Path    string        `yaml:"path"`
	Timeout time.Duration `yaml:"timeout"`
	Text    string        `yaml:"text"`
	Size    float64       `yaml:"size"`
}

type SceneConfig struct {
	ParticleCount int   `yaml:"particle_count"`
	Seed          int64 `yaml:"seed"`
}

// Default returns the built-in configuration.
func Default() *Config {
	enabled := true
	return &Config{
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
		},
		Audio: AudioConfig{
			Enabled:    &enabled,
			SampleRate: SampleRate,
			Notes:      append([]string(nil), ChordNotes...),
			Sustain:    ChordSustain,
			Release:    ChordRelease,
		},
		Font: FontConfig{
			Timeout: FontFetchTimeout,
			Text:    BannerText,
			Size:    TextSize,
		},
		Scene: SceneConfig{
			ParticleCount: ParticleCount,
		},
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	cfg.fillDefaults()

	if _, err := cfg.TimelineConfig(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// fillDefaults restores defaults for keys a file set to zero or omitted.
func (c *Config) fillDefaults() {
	d := Default()
	if c.Window.Width <= 0 {
		c.Window.Width = d.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = d.Window.Height
	}
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Audio.Enabled == nil {
		c.Audio.Enabled = d.Audio.Enabled
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = d.Audio.SampleRate
	}
	if len(c.Audio.Notes) == 0 {
		c.Audio.Notes = d.Audio.Notes
	}
	if c.Audio.Sustain <= 0 {
		c.Audio.Sustain = d.Audio.Sustain
	}
	if c.Audio.Release <= 0 {
		c.Audio.Release = d.Audio.Release
	}
	if c.Font.Timeout <= 0 {
		c.Font.Timeout = d.Font.Timeout
	}
	if c.Font.Text == "" {
		c.Font.Text = d.Font.Text
	}
	if c.Font.Size <= 0 {
		c.Font.Size = d.Font.Size
	}
	if c.Scene.ParticleCount <= 0 {
		c.Scene.ParticleCount = d.Scene.ParticleCount
	}
}

// AudioEnabled reports whether the chord should be played at all.
func (c *Config) AudioEnabled() bool {
	return c.Audio.Enabled == nil || *c.Audio.Enabled
}

// VolumeDB returns the chord volume in decibels.
func (c *Config) VolumeDB() float64 {
	if c.Audio.VolumeDB == nil {
		return ChordVolume
	}
	return *c.Audio.VolumeDB
}

// TimelineConfig builds the controller constants, applying overrides.
func (c *Config) TimelineConfig() (timeline.Config, error) {
	tc := timeline.DefaultConfig()
	t := c.Timeline
	if t.MoveDuration != 0 {
		tc.MoveDuration = t.MoveDuration
	}
	if t.StillDuration != 0 {
		tc.StillDuration = t.StillDuration
	}
	if t.FarZ != nil {
		tc.FarZ = *t.FarZ
	}
	if t.NearZ != nil {
		tc.NearZ = *t.NearZ
	}
	if t.StartScale != 0 {
		tc.StartScale = t.StartScale
	}
	if t.WobbleAmplitude != nil {
		tc.WobbleAmplitude = *t.WobbleAmplitude
	}
	if t.SpinTurns != nil {
		tc.SpinTurns = *t.SpinTurns
	}
	if t.PrimaryLightness != 0 {
		tc.PrimaryLightness = t.PrimaryLightness
	}
	if t.GlowLightness != 0 {
		tc.GlowLightness = t.GlowLightness
	}
	if err := tc.Validate(); err != nil {
		return timeline.Config{}, err
	}
	return tc, nil
}
