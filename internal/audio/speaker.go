package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

type speakerVoice struct {
	buf *beep.Buffer
}

func (v speakerVoice) Play() {
	speaker.Play(v.buf.Streamer(0, v.buf.Len()))
}

// NewSpeakerPool opens the system speaker through beep. The returned close
// function releases the device.
func NewSpeakerPool(sr beep.SampleRate, volume float64, seed int64) (*Pool, func(), error) {
	bufs, err := Pops(sr, volume)
	if err != nil {
		return nil, nil, fmt.Errorf("render pops: %w", err)
	}

	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, nil, fmt.Errorf("speaker init: %w", err)
	}

	voices := make([]Voice, 0, len(bufs))
	for _, buf := range bufs {
		voices = append(voices, speakerVoice{buf: buf})
	}
	return NewPool(voices, seed), speaker.Close, nil
}
