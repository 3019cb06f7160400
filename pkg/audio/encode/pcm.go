// ABOUTME: PCM audio encoder
// ABOUTME: Packs int32 samples as 16-bit, packed 24-bit or 32-bit float little-endian PCM
package encode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
)

// PCMEncoder encodes PCM audio. BitDepth 32 is IEEE float.
type PCMEncoder struct {
	bitDepth       int
	bytesPerSample int
}

// NewPCM creates a new PCM encoder
func NewPCM(format audio.Format) (*PCMEncoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM encoder: %s", format.Codec)
	}

	switch format.BitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24, 32)", format.BitDepth)
	}

	return &PCMEncoder{
		bitDepth:       format.BitDepth,
		bytesPerSample: format.BytesPerSample(),
	}, nil
}

// Encode converts int32 samples to PCM bytes
func (e *PCMEncoder) Encode(samples []int32) ([]byte, error) {
	output := make([]byte, len(samples)*e.bytesPerSample)
	if _, err := e.EncodeTo(output, samples); err != nil {
		return nil, err
	}
	return output, nil
}

// EncodeTo packs samples into dst and returns the bytes written
func (e *PCMEncoder) EncodeTo(dst []byte, samples []int32) (int, error) {
	n := len(samples) * e.bytesPerSample
	if len(dst) < n {
		return 0, fmt.Errorf("pcm destination holds %d bytes, need %d", len(dst), n)
	}

	switch e.bitDepth {
	case 16:
		for i, sample := range samples {
			binary.LittleEndian.PutUint16(dst[i*2:], uint16(audio.SampleToInt16(sample)))
		}
	case 24:
		for i, sample := range samples {
			b := audio.SampleTo24Bit(sample)
			copy(dst[i*3:i*3+3], b[:])
		}
	case 32:
		for i, sample := range samples {
			binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(audio.SampleToFloat32(sample)))
		}
	}
	return n, nil
}

// BytesPerSample returns the packed size of one sample
func (e *PCMEncoder) BytesPerSample() int {
	return e.bytesPerSample
}

// Close releases resources
func (e *PCMEncoder) Close() error {
	return nil
}
