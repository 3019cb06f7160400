// ABOUTME: PCM audio decoder
// ABOUTME: Unpacks 16-bit, packed 24-bit and 32-bit float PCM to int32 samples
package decode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
)

// PCMDecoder decodes little-endian PCM. BitDepth 32 is IEEE float.
type PCMDecoder struct {
	bitDepth       int
	bytesPerSample int
}

// NewPCM creates a new PCM decoder
func NewPCM(format audio.Format) (*PCMDecoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM decoder: %s", format.Codec)
	}

	switch format.BitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24, 32)", format.BitDepth)
	}

	return &PCMDecoder{
		bitDepth:       format.BitDepth,
		bytesPerSample: format.BytesPerSample(),
	}, nil
}

// Decode converts PCM bytes to int32 samples. A trailing partial sample
// is ignored.
func (d *PCMDecoder) Decode(data []byte) ([]int32, error) {
	samples := make([]int32, len(data)/d.bytesPerSample)
	d.DecodeTo(samples, data)
	return samples, nil
}

// DecodeTo unpacks as many whole samples as fit in both dst and data and
// returns the count
func (d *PCMDecoder) DecodeTo(dst []int32, data []byte) int {
	n := len(data) / d.bytesPerSample
	if n > len(dst) {
		n = len(dst)
	}

	switch d.bitDepth {
	case 16:
		for i := 0; i < n; i++ {
			dst[i] = audio.SampleFromInt16(int16(binary.LittleEndian.Uint16(data[i*2:])))
		}
	case 24:
		for i := 0; i < n; i++ {
			dst[i] = audio.SampleFrom24Bit([3]byte{data[i*3], data[i*3+1], data[i*3+2]})
		}
	case 32:
		for i := 0; i < n; i++ {
			dst[i] = audio.SampleFromFloat32(math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:])))
		}
	}
	return n
}

// Close releases resources
func (d *PCMDecoder) Close() error {
	return nil
}
