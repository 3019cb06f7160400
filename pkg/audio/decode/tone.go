// ABOUTME: Sine tone source for testing without input files
// ABOUTME: Generates a fixed-length tone as interleaved 24-bit samples
package decode

import (
	"fmt"
	"io"
	"math"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
)

// ToneSource generates a sine tone on every channel
type ToneSource struct {
	format      audio.Format
	frequency   float64
	sampleIndex uint64
	frames      uint64
}

// NewTone creates a tone of frames frames at half scale
func NewTone(frequency float64, sampleRate, channels int, frames uint64) (*ToneSource, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("invalid tone format: %d Hz, %d channels", sampleRate, channels)
	}
	return &ToneSource{
		format: audio.Format{
			Codec:       "pcm",
			SampleRate:  sampleRate,
			Channels:    channels,
			BitDepth:    24,
			Interleaved: true,
		},
		frequency: frequency,
		frames:    frames,
	}, nil
}

// ReadSamples implements Source
func (s *ToneSource) ReadSamples(dst []int32) (int, error) {
	channels := s.format.Channels
	remaining := s.frames - s.sampleIndex
	if remaining == 0 {
		return 0, io.EOF
	}

	numFrames := uint64(len(dst) / channels)
	if numFrames > remaining {
		numFrames = remaining
	}

	for i := uint64(0); i < numFrames; i++ {
		t := float64(s.sampleIndex+i) / float64(s.format.SampleRate)
		sample := int32(math.Sin(2*math.Pi*s.frequency*t) * audio.Max24Bit * 0.5)
		for ch := 0; ch < channels; ch++ {
			dst[int(i)*channels+ch] = sample
		}
	}

	s.sampleIndex += numFrames
	return int(numFrames) * channels, nil
}

// Format implements Source
func (s *ToneSource) Format() audio.Format {
	return s.format
}

// Close implements Source
func (s *ToneSource) Close() error {
	return nil
}
