// ABOUTME: Streaming linear resampler for converting audio sample rates
// ABOUTME: Wraps a decode.Source and interpolates across read boundaries
package resample

import (
	"errors"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/decode"
)

// readChunkFrames is how many input frames are fetched per upstream read
const readChunkFrames = 1024

// Resampler performs linear interpolation to convert a source to another rate
type Resampler struct {
	src      decode.Source
	format   audio.Format
	channels int
	ratio    float64 // input frames per output frame
	position float64 // between prev and next, in input frames

	prev, next []int32 // one sample per channel
	in         []int32
	inStart    int
	inEnd      int

	primed   bool
	draining bool
	done     bool
}

// New creates a resampler reading from src and producing outputRate
func New(src decode.Source, outputRate int) (*Resampler, error) {
	format := src.Format()
	if format.SampleRate <= 0 || outputRate <= 0 {
		return nil, fmt.Errorf("invalid sample rates: %d -> %d", format.SampleRate, outputRate)
	}
	if format.Channels < 1 {
		return nil, fmt.Errorf("invalid channel count: %d", format.Channels)
	}

	inputRate := format.SampleRate
	format.SampleRate = outputRate

	return &Resampler{
		src:      src,
		format:   format,
		channels: format.Channels,
		ratio:    float64(inputRate) / float64(outputRate),
		prev:     make([]int32, format.Channels),
		next:     make([]int32, format.Channels),
		in:       make([]int32, readChunkFrames*format.Channels),
	}, nil
}

// ReadSamples fills dst with whole output frames
func (r *Resampler) ReadSamples(dst []int32) (int, error) {
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	n := 0
	for !r.done && n+r.channels <= len(dst) {
		frac := r.position
		for ch := 0; ch < r.channels; ch++ {
			interpolated := float64(r.prev[ch])*(1.0-frac) + float64(r.next[ch])*frac
			dst[n+ch] = int32(interpolated)
		}
		n += r.channels

		if r.draining {
			r.done = true
			break
		}

		r.position += r.ratio
		for r.position >= 1 {
			r.position -= 1
			copy(r.prev, r.next)
			ok, err := r.readFrame(r.next)
			if err != nil {
				return n, err
			}
			if !ok {
				r.endOfInput()
				break
			}
		}
	}

	if n == 0 && r.done {
		return 0, io.EOF
	}
	return n, nil
}

// prime loads the first two input frames
func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.readFrame(r.prev)
	if err != nil {
		return err
	}
	if !ok {
		r.done = true
		return io.EOF
	}

	ok, err = r.readFrame(r.next)
	if err != nil {
		return err
	}
	if !ok {
		r.endOfInput()
	}
	return nil
}

// endOfInput emits the last frame once more only if an output frame lands
// exactly on it
func (r *Resampler) endOfInput() {
	if r.position == 0 {
		copy(r.next, r.prev)
		r.draining = true
		return
	}
	r.done = true
}

// readFrame copies the next input frame into frame
func (r *Resampler) readFrame(frame []int32) (bool, error) {
	for r.inEnd-r.inStart < r.channels {
		// Keep a partial frame at the front of the buffer
		leftover := copy(r.in, r.in[r.inStart:r.inEnd])
		r.inStart, r.inEnd = 0, leftover

		m, err := r.src.ReadSamples(r.in[r.inEnd:])
		r.inEnd += m
		if errors.Is(err, io.EOF) || (err == nil && m == 0) {
			if r.inEnd-r.inStart < r.channels {
				return false, nil
			}
			break
		}
		if err != nil {
			return false, fmt.Errorf("resample source read failed: %w", err)
		}
	}

	copy(frame, r.in[r.inStart:r.inStart+r.channels])
	r.inStart += r.channels
	return true, nil
}

// Format returns the source format at the output rate
func (r *Resampler) Format() audio.Format {
	return r.format
}

// Close closes the underlying source
func (r *Resampler) Close() error {
	return r.src.Close()
}
