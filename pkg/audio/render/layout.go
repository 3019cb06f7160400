// ABOUTME: Sample layout conversion between interleaved int32 and buffer lists
// ABOUTME: Packs through the PCM codec and splits channels when non-interleaved
package render

import (
	"fmt"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/bufferlist"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/decode"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/encode"
)

// pcmFormat is format as raw PCM; the list layout ignores the source codec
func pcmFormat(format audio.Format) audio.Format {
	format.Codec = "pcm"
	return format
}

// Scatter writes interleaved samples (24-bit range) into a prepared list
func Scatter(l *bufferlist.List, format audio.Format, samples []int32) error {
	enc, err := encode.NewPCM(pcmFormat(format))
	if err != nil {
		return err
	}

	channels := format.Channels
	frames := len(samples) / channels
	need := int(format.FramesToBytes(uint32(frames)))
	for b := 0; b < l.BufferCount(); b++ {
		if data := l.Data(b); len(data) < need {
			return fmt.Errorf("buffer %d holds %d bytes, need %d", b, len(data), need)
		}
	}

	if format.Interleaved {
		_, err := enc.EncodeTo(l.Data(0), samples[:frames*channels])
		return err
	}

	plane := make([]int32, frames)
	for ch := 0; ch < channels; ch++ {
		for i := range plane {
			plane[i] = samples[i*channels+ch]
		}
		if _, err := enc.EncodeTo(l.Data(ch), plane); err != nil {
			return fmt.Errorf("buffer %d: %w", ch, err)
		}
	}
	return nil
}

// Gather reads a prepared list back into interleaved samples
func Gather(l *bufferlist.List, format audio.Format) ([]int32, error) {
	dec, err := decode.NewPCM(pcmFormat(format))
	if err != nil {
		return nil, err
	}
	if format.Channels < 1 || l.BufferCount() == 0 {
		return nil, fmt.Errorf("invalid format: %s", format)
	}

	data0 := l.Data(0)
	if data0 == nil {
		return nil, fmt.Errorf("buffer list has no data")
	}
	frames := len(data0) / format.BytesPerFrame()

	samples := make([]int32, frames*format.Channels)
	if format.Interleaved {
		dec.DecodeTo(samples, data0)
		return samples, nil
	}

	plane := make([]int32, frames)
	for ch := 0; ch < format.Channels; ch++ {
		if n := dec.DecodeTo(plane, l.Data(ch)); n < frames {
			return nil, fmt.Errorf("buffer %d holds %d frames, need %d", ch, n, frames)
		}
		for i, s := range plane {
			samples[i*format.Channels+ch] = s
		}
	}
	return samples, nil
}
