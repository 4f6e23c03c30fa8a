package audio

import (
	"sync"

	"github.com/ebitengine/oto/v3"
)

const defaultSampleRate = 44100

// oto allows a single context per process, so every Service shares one.
var (
	contextOnce      sync.Once
	sharedContext    *oto.Context
	sharedSampleRate int
	sharedContextErr error
)

func openContext(sampleRate int) (*oto.Context, int, error) {
	contextOnce.Do(func() {
		if sampleRate <= 0 {
			sampleRate = defaultSampleRate
		}
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			sharedContextErr = err
			return
		}
		<-ready
		sharedContext = ctx
		sharedSampleRate = sampleRate
	})
	return sharedContext, sharedSampleRate, sharedContextErr
}
