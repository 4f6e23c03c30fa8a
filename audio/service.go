package audio

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"

	"github.com/gabrielsants/react-tetris/tetris"
)

// Player is the audio capability handed to the game. Every method is safe to
// call from the event loop and never blocks on playback.
type Player interface {
	tetris.Sounder
	SetVolume(volume float64)
	Volume() float64
	SoundEnabled() bool
	MusicEnabled() bool
	ToggleSound() bool
	ToggleMusic() bool
	Close() error
}

type Options struct {
	Sound  bool
	Music  bool
	Volume float64
	// MusicFile is an optional mp3 looped while music is enabled.
	MusicFile string
	Logger    *log.Logger
}

var ErrClosed = errors.New("audio service closed")

// Service plays synthesized cues and background music through oto.
type Service struct {
	mu         sync.RWMutex
	ctx        *oto.Context
	sink       sink
	sampleRate int
	sound      bool
	music      bool
	volume     float64
	track      *track
	loop       *musicLoop
	closed     bool
	logger     *log.Logger
}

// New opens the audio device. Callers fall back to Nop when it fails.
func New(opts Options) (*Service, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	var t *track
	sampleRate := defaultSampleRate
	if opts.MusicFile != "" {
		loaded, err := loadTrack(opts.MusicFile)
		if err != nil {
			logger.Warn("music disabled", "file", opts.MusicFile, "err", err)
		} else {
			t = loaded
			sampleRate = loaded.sampleRate
		}
	}
	ctx, rate, err := openContext(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	if t != nil && t.sampleRate != rate {
		logger.Warn("music sample rate differs from device", "music", t.sampleRate, "device", rate)
	}
	s := &Service{
		ctx:        ctx,
		sink:       otoSink{ctx: ctx},
		sampleRate: rate,
		sound:      opts.Sound,
		volume:     clampVolume(opts.Volume),
		track:      t,
		logger:     logger,
	}
	if opts.Music {
		s.ToggleMusic()
	}
	return s, nil
}

func (s *Service) Play(event tetris.Event) {
	s.mu.RLock()
	enabled := s.sound && !s.closed
	volume := s.volume
	s.mu.RUnlock()
	if !enabled {
		return
	}
	c := cueFor(event)
	if len(c) == 0 {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("sound playback panicked", "event", event, "panic", r)
			}
		}()
		if err := s.sink.playPCM(c.pcm(s.sampleRate, volume)); err != nil {
			s.logger.Debug("sound playback failed", "event", event, "err", err)
		}
	}()
}

// sink plays one rendered cue to completion.
type sink interface {
	playPCM(pcm []byte) error
}

type otoSink struct {
	ctx *oto.Context
}

func (o otoSink) playPCM(pcm []byte) error {
	player := o.ctx.NewPlayer(bytes.NewReader(pcm))
	defer player.Close()
	player.Play()
	for player.IsPlaying() {
		time.Sleep(5 * time.Millisecond)
	}
	return player.Err()
}

func (s *Service) SetVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = clampVolume(volume)
	if s.loop != nil {
		s.loop.SetVolume(s.volume)
	}
}

func (s *Service) Volume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.volume
}

func (s *Service) SoundEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sound
}

func (s *Service) MusicEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.music
}

func (s *Service) ToggleSound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sound = !s.sound
	return s.sound
}

// ToggleMusic flips the music flag and starts or stops the loop. Without a
// music file only the flag changes.
func (s *Service) ToggleMusic() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.music = !s.music
	if s.closed {
		return s.music
	}
	if !s.music {
		s.stopMusicLocked()
		return false
	}
	if s.track == nil || s.loop != nil {
		return true
	}
	loop, err := startMusic(s.ctx, s.track, s.volume)
	if err != nil {
		s.logger.Warn("music start failed", "err", err)
		return true
	}
	s.loop = loop
	return true
}

func (s *Service) stopMusicLocked() {
	if s.loop == nil {
		return
	}
	if err := s.loop.Stop(); err != nil {
		s.logger.Debug("music stop", "err", err)
	}
	s.loop = nil
}

// Close stops the music. The shared device stays open for the process.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.stopMusicLocked()
	s.closed = true
	return nil
}

// Nop is a silent Player. It keeps the flags so settings screens behave the
// same without an audio device.
type Nop struct {
	mu     sync.Mutex
	sound  bool
	music  bool
	volume float64
}

func NewNop(sound, music bool, volume float64) *Nop {
	return &Nop{sound: sound, music: music, volume: clampVolume(volume)}
}

func (n *Nop) Play(tetris.Event) {}

func (n *Nop) SetVolume(volume float64) {
	n.mu.Lock()
	n.volume = clampVolume(volume)
	n.mu.Unlock()
}

func (n *Nop) Volume() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.volume
}

func (n *Nop) SoundEnabled() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sound
}

func (n *Nop) MusicEnabled() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.music
}

func (n *Nop) ToggleSound() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sound = !n.sound
	return n.sound
}

func (n *Nop) ToggleMusic() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.music = !n.music
	return n.music
}

func (n *Nop) Close() error { return nil }

// Open returns a Service, or a Nop carrying the same settings when the
// device cannot be opened.
func Open(opts Options) Player {
	s, err := New(opts)
	if err != nil {
		logger := opts.Logger
		if logger == nil {
			logger = log.Default()
		}
		logger.Warn("audio unavailable, continuing silently", "err", err)
		return NewNop(opts.Sound, opts.Music, opts.Volume)
	}
	return s
}
