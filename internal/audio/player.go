package audio

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// SampleRate is the playback rate for previews. Previews always render at
// 44100 Hz regardless of which bank rates are being generated.
const SampleRate = 44100

var (
	otoCtx     *oto.Context
	otoOnce    sync.Once
	otoInitErr error
)

func getContext() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
		}
		var readyChan chan struct{}
		otoCtx, readyChan, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-readyChan
		}
	})
	return otoCtx, otoInitErr
}

// Play plays interleaved stereo 16-bit samples at 44100 Hz, blocking until
// playback completes. volume is a multiplier from 0.0 (silent) to 1.0
// (full volume).
func Play(samples []int16, volume float64) error {
	if volume > 1.0 {
		volume = 1.0
	}
	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		if volume < 1.0 {
			s = int16(float64(s) * volume)
		}
		pcm[i*2] = byte(s)
		pcm[i*2+1] = byte(s >> 8)
	}
	return playStereo16(pcm)
}

// playStereo16 plays 44100 Hz stereo 16-bit signed LE PCM through the shared context.
func playStereo16(pcm []byte) error {
	ctx, err := getContext()
	if err != nil {
		return fmt.Errorf("failed to initialize audio: %w", err)
	}

	player := ctx.NewPlayer(bytes.NewReader(pcm))
	player.Play()

	for player.IsPlaying() {
		time.Sleep(5 * time.Millisecond)
	}

	return player.Close()
}
