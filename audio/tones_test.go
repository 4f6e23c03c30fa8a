package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielsants/react-tetris/tetris"
)

func TestCueForEvent(t *testing.T) {
	events := []tetris.Event{
		tetris.EventMove,
		tetris.EventRotate,
		tetris.EventDrop,
		tetris.EventLine,
		tetris.EventGameOver,
		tetris.EventReset,
	}
	for _, event := range events {
		assert.NotEmpty(t, cueFor(event), "event %v", event)
	}
	assert.Len(t, cueFor(tetris.EventLine), 3)
	assert.Nil(t, cueFor(tetris.Event("unknown")))
}

func TestCuePCMLength(t *testing.T) {
	const rate = 8000
	c := cue{
		{frequency: 440, duration: 100 * time.Millisecond},
		{frequency: 880, duration: 50 * time.Millisecond},
	}
	want := (800 + 80 + 400) * bytesPerFrame
	assert.Len(t, c.pcm(rate, 1), want)
}

func TestCuePCMMuted(t *testing.T) {
	buffer := cueFor(tetris.EventDrop).pcm(8000, 0)
	require.NotEmpty(t, buffer)
	for _, b := range buffer {
		if b != 0 {
			t.Fatalf("muted buffer contains non-zero sample byte %d", b)
		}
	}
}

func TestToneRenderWritesBothChannels(t *testing.T) {
	tone := toneSpec{frequency: 440, duration: 20 * time.Millisecond, gain: 0.5}
	buffer := make([]byte, frames(tone.duration, 8000)*bytesPerFrame)
	n := tone.render(buffer, 8000, 1)
	require.Equal(t, 160, n)

	nonZero := false
	for i := 0; i+3 < len(buffer); i += bytesPerFrame {
		assert.Equal(t, buffer[i], buffer[i+2])
		assert.Equal(t, buffer[i+1], buffer[i+3])
		if buffer[i] != 0 || buffer[i+1] != 0 {
			nonZero = true
		}
	}
	assert.True(t, nonZero)
}

func TestEnvelope(t *testing.T) {
	assert.Equal(t, 0.0, envelope(0, 100, 10))
	assert.Equal(t, 0.5, envelope(5, 100, 10))
	assert.Equal(t, 1.0, envelope(50, 100, 10))
	assert.Equal(t, 0.5, envelope(95, 100, 10))
	assert.Equal(t, 1.0, envelope(0, 100, 0))
}

func TestClampVolume(t *testing.T) {
	assert.Equal(t, 0.0, clampVolume(-0.5))
	assert.Equal(t, 0.4, clampVolume(0.4))
	assert.Equal(t, 1.0, clampVolume(3))
}

func TestNopKeepsSettings(t *testing.T) {
	n := NewNop(true, false, 1.5)
	assert.Equal(t, 1.0, n.Volume())
	assert.False(t, n.ToggleSound())
	assert.False(t, n.SoundEnabled())
	assert.True(t, n.ToggleMusic())
	assert.True(t, n.MusicEnabled())
	n.SetVolume(0.25)
	assert.Equal(t, 0.25, n.Volume())
	n.Play(tetris.EventLine)
	assert.NoError(t, n.Close())
}

func TestNopImplementsPlayer(t *testing.T) {
	var p Player = NewNop(false, false, 0)
	assert.NotNil(t, p)
}
