package audio

import (
	"fmt"

	"github.com/gopxl/beep"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

type ebitenVoice struct {
	player *ebaudio.Player
}

func (v *ebitenVoice) Play() {
	if err := v.player.Rewind(); err != nil {
		return
	}
	v.player.Play()
}

// NewEbitenPool renders the pops at the context's sample rate and wraps them
// in ebiten players
func NewEbitenPool(ctx *ebaudio.Context, volume float64, seed int64) (*Pool, error) {
	sr := beep.SampleRate(ctx.SampleRate())
	bufs, err := Pops(sr, volume)
	if err != nil {
		return nil, fmt.Errorf("render pops: %w", err)
	}

	voices := make([]Voice, 0, len(bufs))
	for _, buf := range bufs {
		voices = append(voices, &ebitenVoice{player: ctx.NewPlayerFromBytes(PCM(buf))})
	}
	return NewPool(voices, seed), nil
}
