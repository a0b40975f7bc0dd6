// Package audio plays a looping background track loaded through the
// resource store, with a volume fade-in when the track starts.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/younwookim/scenecam/internal/domain/resource"
	"github.com/younwookim/scenecam/internal/infrastructure/assets"
)

// ErrUnsupportedFormat is returned for a clip that is neither .wav nor .mp3.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Track is a playing sound. *audio.Player satisfies it.
type Track interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(v float64)
	Close() error
}

// TrackFactory opens a looping track from encoded clip bytes.
type TrackFactory func(path string, data []byte) (Track, error)

// Mixer loads clips into the store and plays one background track.
type Mixer struct {
	clips  *assets.Loader
	open   TrackFactory
	logger *log.Logger

	bg     Track
	bgPath string
	level  float64
	volume float64

	fade     *gween.Tween
	fadeLeft float64
}

// NewMixer creates a mixer that decodes clips with the ebiten audio context.
func NewMixer(ctx *audio.Context, fsys fs.FS, store *resource.Store) *Mixer {
	return NewMixerWithFactory(fsys, store, EbitenTracks(ctx), log.Default())
}

// NewSilentMixer creates a mixer that loads clips but plays nothing. Used
// for headless runs and when audio is disabled.
func NewSilentMixer(fsys fs.FS, store *resource.Store) *Mixer {
	return NewMixerWithFactory(fsys, store, func(string, []byte) (Track, error) {
		return &silentTrack{}, nil
	}, log.Default())
}

// NewMixerWithFactory creates a mixer that opens tracks with open.
func NewMixerWithFactory(fsys fs.FS, store *resource.Store, open TrackFactory, logger *log.Logger) *Mixer {
	if logger == nil {
		logger = log.Default()
	}
	return &Mixer{
		clips:  assets.NewLoader(fsys, store, assets.Raw),
		open:   open,
		logger: logger,
		level:  1,
	}
}

// Loader returns the clip loader so the host can poll it.
func (m *Mixer) Loader() *assets.Loader {
	return m.clips
}

// Load requests a clip.
func (m *Mixer) Load(path string) {
	m.clips.Load(path)
}

// Unload releases one request for a clip.
func (m *Mixer) Unload(path string) {
	m.clips.Unload(path)
}

// SetBackgroundVolume sets the level the background track plays at. A fade
// in progress retargets to the new level.
func (m *Mixer) SetBackgroundVolume(level float64) {
	m.level = level
	if m.fade != nil && m.fadeLeft > 0 {
		m.fade = gween.New(float32(m.volume), float32(level), float32(m.fadeLeft), ease.Linear)
		return
	}
	m.fade = nil
	m.setVolume(level)
}

// BackgroundVolume returns the current output volume of the background track.
func (m *Mixer) BackgroundVolume() float64 {
	return m.volume
}

// PlayBackground starts the clip at path looping in the background, fading
// in from silence over fadeSeconds. The clip must already be loaded.
func (m *Mixer) PlayBackground(path string, fadeSeconds float64) error {
	v, err := m.clips.Get(path)
	if err != nil {
		return fmt.Errorf("play background: %w", err)
	}
	data, ok := v.([]byte)
	if !ok {
		return fmt.Errorf("play background %s: %w", path, resource.ErrTypeMismatch)
	}

	m.StopBackground()
	track, err := m.open(path, data)
	if err != nil {
		return fmt.Errorf("play background %s: %w", path, err)
	}
	m.bg = track
	m.bgPath = path

	if fadeSeconds > 0 {
		m.fade = gween.New(0, float32(m.level), float32(fadeSeconds), ease.Linear)
		m.fadeLeft = fadeSeconds
		m.setVolume(0)
	} else {
		m.fade = nil
		m.setVolume(m.level)
	}
	track.Play()
	return nil
}

// IsBackgroundPlaying reports whether a background track is playing.
func (m *Mixer) IsBackgroundPlaying() bool {
	return m.bg != nil && m.bg.IsPlaying()
}

// StopBackground stops and closes the background track, if any.
func (m *Mixer) StopBackground() {
	if m.bg == nil {
		return
	}
	m.bg.Pause()
	if err := m.bg.Close(); err != nil {
		m.logger.Printf("audio: closing %s: %v", m.bgPath, err)
	}
	m.bg = nil
	m.bgPath = ""
	m.fade = nil
}

// Update advances the fade by dt seconds.
func (m *Mixer) Update(dt float64) {
	if m.fade == nil {
		return
	}
	v, done := m.fade.Update(float32(dt))
	m.fadeLeft -= dt
	m.setVolume(float64(v))
	if done {
		m.fade = nil
		m.setVolume(m.level)
	}
}

func (m *Mixer) setVolume(v float64) {
	m.volume = v
	if m.bg != nil {
		m.bg.SetVolume(v)
	}
}

type stream interface {
	io.ReadSeeker
	Length() int64
}

// EbitenTracks returns a factory that decodes .wav and .mp3 clips into
// infinitely looping players on ctx.
func EbitenTracks(ctx *audio.Context) TrackFactory {
	return func(name string, data []byte) (Track, error) {
		var (
			s   stream
			err error
		)
		switch strings.ToLower(path.Ext(name)) {
		case ".wav":
			s, err = wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(data))
		case ".mp3":
			s, err = mp3.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(data))
		default:
			return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", name, err)
		}
		p, err := ctx.NewPlayer(audio.NewInfiniteLoop(s, s.Length()))
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

type silentTrack struct {
	playing bool
}

func (t *silentTrack) Play()             { t.playing = true }
func (t *silentTrack) Pause()            { t.playing = false }
func (t *silentTrack) IsPlaying() bool   { return t.playing }
func (t *silentTrack) SetVolume(float64) {}
func (t *silentTrack) Close() error      { return nil }
