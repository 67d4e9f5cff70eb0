// Package audio synthesizes the collision pops and plays them through either
// ebiten's audio context or the beep speaker.
package audio

import (
	"math/rand"
	"sync"
)

// Voice plays one pre-rendered sound from the start
type Voice interface {
	Play()
}

// Pool picks a voice uniformly at random for every pop
type Pool struct {
	mu     sync.Mutex
	voices []Voice
	rng    *rand.Rand
	muted  bool
}

// NewPool creates a pool over voices. An empty pool is a silent sink.
func NewPool(voices []Voice, seed int64) *Pool {
	return &Pool{
		voices: voices,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// PlayRandomPop fires one voice and returns immediately
func (p *Pool) PlayRandomPop() {
	p.mu.Lock()
	if p.muted || len(p.voices) == 0 {
		p.mu.Unlock()
		return
	}
	v := p.voices[p.rng.Intn(len(p.voices))]
	p.mu.Unlock()

	v.Play()
}

// Unlock plays every voice once. Mobile browsers only allow audio after a
// user gesture; the first touch primes all players.
func (p *Pool) Unlock() {
	p.mu.Lock()
	voices := p.voices
	muted := p.muted
	p.mu.Unlock()

	if muted {
		return
	}
	for _, v := range voices {
		v.Play()
	}
}

func (p *Pool) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

func (p *Pool) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

func (p *Pool) Len() int {
	return len(p.voices)
}
