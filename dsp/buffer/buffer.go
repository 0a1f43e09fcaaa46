package buffer

import (
	"errors"
	"fmt"
)

// ErrChannelLength is returned when channels of one block differ in length.
var ErrChannelLength = errors.New("buffer: channels must have equal length")

// Block is a planar block of audio. Channels share one length; samples at
// the same index belong to the same instant.
type Block struct {
	channels [][]float64
}

// New returns a zero-filled Block with the given channel count and length.
func New(numChannels, length int) Block {
	if numChannels < 0 {
		numChannels = 0
	}
	if length < 0 {
		length = 0
	}
	channels := make([][]float64, numChannels)
	for ch := range channels {
		channels[ch] = make([]float64, length)
	}
	return Block{channels: channels}
}

// FromChannels wraps existing channel slices without copying.
// Mutations through the Block are visible to the caller and vice versa.
func FromChannels(channels ...[]float64) (Block, error) {
	for ch := 1; ch < len(channels); ch++ {
		if len(channels[ch]) != len(channels[0]) {
			return Block{}, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrChannelLength, ch, len(channels[ch]), len(channels[0]))
		}
	}
	return Block{channels: channels}, nil
}

// NumChannels returns the channel count.
func (b Block) NumChannels() int {
	return len(b.channels)
}

// Len returns the number of samples per channel.
func (b Block) Len() int {
	if len(b.channels) == 0 {
		return 0
	}
	return len(b.channels[0])
}

// Channel returns the samples of channel ch.
func (b Block) Channel(ch int) []float64 {
	return b.channels[ch]
}

// Channels returns the channel slices. The outer slice must not be modified.
func (b Block) Channels() [][]float64 {
	return b.channels
}

// Resize sets every channel to n samples, reusing capacity when possible.
// Newly exposed samples are zeroed.
func (b Block) Resize(n int) {
	if n < 0 {
		n = 0
	}
	for ch, s := range b.channels {
		oldLen := len(s)
		if n <= cap(s) {
			s = s[:n]
		} else {
			grown := make([]float64, n)
			copy(grown, s)
			s = grown
		}
		for i := oldLen; i < n; i++ {
			s[i] = 0
		}
		b.channels[ch] = s
	}
}

// Zero sets all samples to 0.
func (b Block) Zero() {
	for _, s := range b.channels {
		for i := range s {
			s[i] = 0
		}
	}
}

// Interleave writes the block into dst as frame-interleaved float32 samples
// and returns the number of values written. It stops at the last whole
// frame that fits in dst.
func (b Block) Interleave(dst []float32) int {
	nch := len(b.channels)
	if nch == 0 {
		return 0
	}
	frames := min(b.Len(), len(dst)/nch)
	for i := 0; i < frames; i++ {
		for ch, s := range b.channels {
			dst[i*nch+ch] = float32(s[i])
		}
	}
	return frames * nch
}

// Deinterleave reads frame-interleaved float32 samples from src into the
// block and returns the number of frames read.
func (b Block) Deinterleave(src []float32) int {
	nch := len(b.channels)
	if nch == 0 {
		return 0
	}
	frames := min(b.Len(), len(src)/nch)
	for i := 0; i < frames; i++ {
		for ch, s := range b.channels {
			s[i] = float64(src[i*nch+ch])
		}
	}
	return frames
}
