// ABOUTME: Opus audio decoder
// ABOUTME: Decodes Opus packets to interleaved int32 samples
package decode

import (
	"fmt"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
	"gopkg.in/hraban/opus.v2"
)

// maxOpusFrame is the longest Opus frame (120ms at 48kHz) per channel
const maxOpusFrame = 5760

// OpusDecoder decodes Opus packets
type OpusDecoder struct {
	decoder  *opus.Decoder
	channels int
	pcm16    []int16
}

// NewOpus creates a new Opus decoder
func NewOpus(format audio.Format) (*OpusDecoder, error) {
	if format.Codec != "opus" {
		return nil, fmt.Errorf("invalid codec for Opus decoder: %s", format.Codec)
	}

	dec, err := opus.NewDecoder(format.SampleRate, format.Channels)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus decoder: %w", err)
	}

	return &OpusDecoder{
		decoder:  dec,
		channels: format.Channels,
		pcm16:    make([]int16, maxOpusFrame*format.Channels),
	}, nil
}

// Decode converts one Opus packet to int32 samples. Opus output is 16-bit.
func (d *OpusDecoder) Decode(data []byte) ([]int32, error) {
	n, err := d.decoder.Decode(data, d.pcm16)
	if err != nil {
		return nil, fmt.Errorf("opus decode failed: %w", err)
	}

	samples := make([]int32, n*d.channels)
	for i := range samples {
		samples[i] = audio.SampleFromInt16(d.pcm16[i])
	}
	return samples, nil
}

// Close releases decoder resources
func (d *OpusDecoder) Close() error {
	return nil
}
