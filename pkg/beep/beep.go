// Package beep produces the CHIP-8 tone through the host audio device. The
// interpreter core only reports whether the sound timer is running; the
// beeper owns tone generation.
package beep

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate = 44100
	toneHz     = 440
	volume     = 0.25
)

// Beeper plays a square wave while active. The playback device pulls samples
// on its own goroutine; the driving loop only toggles SetActive.
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player

	active atomic.Bool
	phase  int
}

// New opens the audio device and starts the playback stream. The stream is
// silent until SetActive(true).
func New() (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	b := &Beeper{ctx: ctx}
	b.player = ctx.NewPlayer(b)
	b.player.Play()
	return b, nil
}

// SetActive starts or stops the tone. Safe to call from the driving loop
// while the playback goroutine is reading.
func (b *Beeper) SetActive(active bool) {
	b.active.Store(active)
}

// Read synthesizes float32 square wave samples. It is called by the playback
// stream, not by users.
func (b *Beeper) Read(p []byte) (int, error) {
	const period = sampleRate / toneHz
	active := b.active.Load()

	n := len(p) / 4
	for i := 0; i < n; i++ {
		var sample float32
		if active {
			sample = volume
			if b.phase >= period/2 {
				sample = -volume
			}
			b.phase = (b.phase + 1) % period
		}
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(sample))
	}
	return n * 4, nil
}

// Close stops playback. The audio context itself cannot be closed and is
// reclaimed at process exit.
func (b *Beeper) Close() error {
	return b.player.Close()
}
