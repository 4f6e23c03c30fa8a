package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
)

// track is an mp3 file held in memory so it can be decoded again on demand.
type track struct {
	data       []byte
	sampleRate int
}

func loadTrack(path string) (*track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read music file: %w", err)
	}
	dec, err := newSafeDecoder(data)
	if err != nil {
		return nil, err
	}
	return &track{data: data, sampleRate: dec.SampleRate()}, nil
}

// musicLoop plays a track from the start, rewinding whenever it runs out.
type musicLoop struct {
	player *oto.Player
	stop   chan struct{}
}

func startMusic(ctx *oto.Context, t *track, volume float64) (*musicLoop, error) {
	dec, err := newSafeDecoder(t.data)
	if err != nil {
		return nil, err
	}
	player := ctx.NewPlayer(dec)
	player.SetVolume(clampVolume(volume))
	player.Play()
	loop := &musicLoop{player: player, stop: make(chan struct{})}

	go func() {
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-loop.stop:
				return
			case <-ticker.C:
				if !player.IsPlaying() {
					_ = dec.Rewind()
					player.Play()
				}
			}
		}
	}()
	return loop, nil
}

func (m *musicLoop) SetVolume(volume float64) {
	m.player.SetVolume(clampVolume(volume))
}

func (m *musicLoop) Stop() error {
	close(m.stop)
	return m.player.Close()
}

// safeDecoder serializes access to the decoder, which is read by the oto
// player goroutine and rewound by the loop goroutine.
type safeDecoder struct {
	mu  sync.Mutex
	dec *mp3.Decoder
}

func newSafeDecoder(data []byte) (*safeDecoder, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}
	return &safeDecoder{dec: dec}, nil
}

func (s *safeDecoder) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dec.Read(p)
}

func (s *safeDecoder) Rewind() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.dec.Seek(0, io.SeekStart)
	return err
}

func (s *safeDecoder) SampleRate() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dec.SampleRate()
}
