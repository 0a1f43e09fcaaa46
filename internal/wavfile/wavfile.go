// Package wavfile reads and writes planar float blocks as PCM WAV files.
package wavfile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/lfocool/dsp/buffer"
)

const pcmFormat = 1

var (
	// ErrInvalidFile is returned for input that is not a PCM WAV file.
	ErrInvalidFile = errors.New("wavfile: not a valid WAV file")

	// ErrBitDepth is returned for unsupported bit depths.
	ErrBitDepth = errors.New("wavfile: bit depth must be 16, 24 or 32")
)

// Write encodes block to w as interleaved PCM at the given bit depth.
// Samples are clipped to [-1, 1].
func Write(w io.WriteSeeker, block buffer.Block, sampleRate, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("wavfile: invalid sample rate %d", sampleRate)
	}

	numChannels := block.NumChannels()
	scale := fullScale(bitDepth)
	data := make([]int, numChannels*block.Len())
	for ch, samples := range block.Channels() {
		for i, s := range samples {
			s = math.Max(-1, math.Min(1, s))
			data[i*numChannels+ch] = int(math.Round(s * scale))
		}
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, numChannels, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavfile: write: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavfile: finalize: %w", err)
	}
	return nil
}

// WriteFile creates path and writes block to it.
func WriteFile(path string, block buffer.Block, sampleRate, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavfile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("wavfile: %w", cerr)
		}
	}()
	return Write(f, block, sampleRate, bitDepth)
}

// Read decodes a PCM WAV stream into a planar block scaled to [-1, 1] and
// returns it with the file's sample rate.
func Read(r io.ReadSeeker) (buffer.Block, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return buffer.Block{}, 0, ErrInvalidFile
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return buffer.Block{}, 0, fmt.Errorf("wavfile: read: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return buffer.Block{}, 0, fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}
	numChannels := int(dec.NumChans)
	if numChannels <= 0 {
		return buffer.Block{}, 0, fmt.Errorf("%w: %d channels", ErrInvalidFile, numChannels)
	}

	scale := fullScale(bitDepth)
	block := buffer.New(numChannels, len(pcm.Data)/numChannels)
	for ch, samples := range block.Channels() {
		for i := range samples {
			samples[i] = float64(pcm.Data[i*numChannels+ch]) / scale
		}
	}

	return block, int(dec.SampleRate), nil
}

// ReadFile opens path and decodes it.
func ReadFile(path string) (buffer.Block, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return buffer.Block{}, 0, fmt.Errorf("wavfile: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func fullScale(bitDepth int) float64 {
	return float64(int64(1)<<(bitDepth-1) - 1)
}
