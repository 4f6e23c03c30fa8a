package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gabrielsants/react-tetris/tetris"
)

const (
	bytesPerFrame = 4 // 16-bit little endian, two channels
	defaultGain   = 0.3
	cueGap        = 10 * time.Millisecond
	fadeTime      = 3 * time.Millisecond
)

type toneSpec struct {
	frequency float64
	duration  time.Duration
	// gain of this tone before the master volume; zero means defaultGain.
	gain float64
}

// cue is the tone sequence played for one event, separated by short gaps.
type cue []toneSpec

var cues = map[tetris.Event]cue{
	tetris.EventMove:   {{frequency: 380, duration: 25 * time.Millisecond, gain: 0.18}},
	tetris.EventRotate: {{frequency: 520, duration: 40 * time.Millisecond, gain: 0.25}},
	tetris.EventDrop:   {{frequency: 220, duration: 70 * time.Millisecond}},
	tetris.EventLine: {
		{frequency: 440, duration: 70 * time.Millisecond},
		{frequency: 660, duration: 70 * time.Millisecond},
		{frequency: 880, duration: 90 * time.Millisecond},
	},
	tetris.EventGameOver: {
		{frequency: 330, duration: 120 * time.Millisecond, gain: 0.28},
		{frequency: 247, duration: 120 * time.Millisecond, gain: 0.28},
		{frequency: 180, duration: 220 * time.Millisecond, gain: 0.28},
	},
	tetris.EventReset: {{frequency: 520, duration: 70 * time.Millisecond, gain: 0.2}},
}

func cueFor(event tetris.Event) cue {
	return cues[event]
}

func frames(d time.Duration, sampleRate int) int {
	return int(float64(sampleRate) * d.Seconds())
}

// pcm renders the cue as interleaved stereo frames scaled by volume.
func (c cue) pcm(sampleRate int, volume float64) []byte {
	gap := frames(cueGap, sampleRate)
	total := 0
	for i, t := range c {
		total += frames(t.duration, sampleRate)
		if i < len(c)-1 {
			total += gap
		}
	}
	out := make([]byte, total*bytesPerFrame)
	offset := 0
	for _, t := range c {
		n := t.render(out[offset:], sampleRate, volume)
		offset += (n + gap) * bytesPerFrame
	}
	return out
}

// render writes the tone into dst and returns the number of frames written.
func (t toneSpec) render(dst []byte, sampleRate int, volume float64) int {
	gain := t.gain
	if gain <= 0 {
		gain = defaultGain
	}
	amplitude := gain * clampVolume(volume) * math.MaxInt16
	n := frames(t.duration, sampleRate)
	fade := frames(fadeTime, sampleRate)
	step := 2 * math.Pi * t.frequency / float64(sampleRate)
	for i := 0; i < n; i++ {
		v := uint16(int16(math.Sin(step*float64(i)) * amplitude * envelope(i, n, fade)))
		frame := dst[i*bytesPerFrame:]
		binary.LittleEndian.PutUint16(frame[0:], v)
		binary.LittleEndian.PutUint16(frame[2:], v)
	}
	return n
}

// envelope ramps the first and last fade frames to avoid clicks.
func envelope(i, n, fade int) float64 {
	switch {
	case fade <= 0:
		return 1
	case i < fade:
		return float64(i) / float64(fade)
	case i > n-fade:
		return float64(n-i) / float64(fade)
	default:
		return 1
	}
}

func clampVolume(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
