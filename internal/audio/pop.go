package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const (
	DefaultSampleRate = beep.SampleRate(44100)

	popLength = 90 * time.Millisecond
	popDecay  = 45.0 // Envelope falloff per second
	popGain   = 0.6
)

// Three pop pitches, one per voice in the pool
var popPitches = []float64{587.33, 783.99, 1046.5}

// decay shapes a stream with a fast exponential falloff
type decay struct {
	s    beep.Streamer
	rate beep.SampleRate
	pos  int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.s.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(d.pos) / float64(d.rate)
		env := popGain * math.Exp(-t*popDecay)
		samples[i][0] *= env
		samples[i][1] *= env
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error {
	return d.s.Err()
}

// NewPop builds a single decaying sine pop. volume is a base-2 exponent
// applied through effects.Volume (0 = unchanged, -1 = half).
func NewPop(sr beep.SampleRate, freq, volume float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("pop %gHz: %w", freq, err)
	}

	shaped := &decay{s: beep.Take(sr.N(popLength), sine), rate: sr}

	return &effects.Volume{
		Streamer: shaped,
		Base:     2,
		Volume:   volume,
	}, nil
}

// format is 16-bit signed stereo, the layout ebiten's audio players expect
func format(sr beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
}

// Pops renders every pop pitch into memory buffers
func Pops(sr beep.SampleRate, volume float64) ([]*beep.Buffer, error) {
	bufs := make([]*beep.Buffer, 0, len(popPitches))
	for _, freq := range popPitches {
		s, err := NewPop(sr, freq, volume)
		if err != nil {
			return nil, err
		}
		buf := beep.NewBuffer(format(sr))
		buf.Append(s)
		bufs = append(bufs, buf)
	}
	return bufs, nil
}

// PCM encodes a buffer as little-endian 16-bit stereo bytes
func PCM(buf *beep.Buffer) []byte {
	f := buf.Format()
	width := f.Width()
	out := make([]byte, buf.Len()*width)

	s := buf.Streamer(0, buf.Len())
	chunk := make([][2]float64, 512)
	off := 0
	for {
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			off += f.EncodeSigned(out[off:], chunk[i])
		}
		if !ok || n == 0 {
			break
		}
	}
	return out[:off]
}
