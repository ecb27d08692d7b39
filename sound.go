package main

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 48000

// Chimes plays the generated tones for pad presses and level clears. No
// audio assets are shipped.
type Chimes struct {
	press *audio.Player
	clear *audio.Player
}

func NewChimes(ctx *audio.Context) *Chimes {
	return &Chimes{
		press: ctx.NewPlayerFromBytes(tone(880, 0.08, 0.3)),
		clear: ctx.NewPlayerFromBytes(append(tone(660, 0.1, 0.3), tone(990, 0.18, 0.3)...)),
	}
}

func (c *Chimes) Press() { replay(c.press) }
func (c *Chimes) Clear() { replay(c.clear) }

func replay(p *audio.Player) {
	if p == nil {
		return
	}
	if err := p.Rewind(); err != nil {
		return
	}
	p.Play()
}

// tone renders a sine as 16-bit little endian stereo PCM with a linear
// fade out.
func tone(freq, seconds, volume float64) []byte {
	n := int(seconds * sampleRate)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		env := 1 - float64(i)/float64(n)
		v := int16(math.Sin(2*math.Pi*freq*float64(i)/sampleRate) * env * volume * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
