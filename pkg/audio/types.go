// ABOUTME: Audio type definitions
// ABOUTME: Defines stream formats, frame sizing and sample conversions
package audio

import (
	"fmt"
	"math"
)

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// Format describes audio stream format
type Format struct {
	Codec       string
	SampleRate  int
	Channels    int
	BitDepth    int    // 16, 24 (packed) or 32 (float)
	Interleaved bool   // all channels share one buffer
	CodecHeader []byte // For FLAC, Opus, etc.
}

// IsInterleaved reports whether channels alternate within one buffer
func (f Format) IsInterleaved() bool {
	return f.Interleaved
}

// ChannelsPerFrame returns the channel count
func (f Format) ChannelsPerFrame() int {
	return f.Channels
}

// BytesPerSample returns the size of one channel sample
func (f Format) BytesPerSample() int {
	return (f.BitDepth + 7) / 8
}

// BytesPerFrame returns the bytes one frame occupies in a single buffer.
// Non-interleaved buffers hold one channel each.
func (f Format) BytesPerFrame() int {
	if f.Interleaved {
		return f.Channels * f.BytesPerSample()
	}
	return f.BytesPerSample()
}

// FramesToBytes converts a frame count to a per-buffer byte count
func (f Format) FramesToBytes(frames uint32) uint32 {
	return frames * uint32(f.BytesPerFrame())
}

// Validate checks that the format can describe PCM buffers
func (f Format) Validate() error {
	if f.Channels < 1 {
		return fmt.Errorf("invalid channel count: %d", f.Channels)
	}
	if f.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", f.SampleRate)
	}
	switch f.BitDepth {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("unsupported bit depth: %d (supported: 16, 24, 32)", f.BitDepth)
	}
}

func (f Format) String() string {
	layout := "non-interleaved"
	if f.Interleaved {
		layout = "interleaved"
	}
	return fmt.Sprintf("%s %dHz %dch %d-bit %s", f.Codec, f.SampleRate, f.Channels, f.BitDepth, layout)
}

// SampleToInt16 converts int32 sample to int16 (for 16-bit playback)
func SampleToInt16(sample int32) int16 {
	// Right-shift to convert 24-bit (or 16-bit) to 16-bit range
	return int16(sample >> 8)
}

// SampleFromInt16 converts int16 sample to int32 (left-justified in 24-bit)
func SampleFromInt16(sample int16) int32 {
	return int32(sample) << 8
}

// SampleTo24Bit converts int32 to 24-bit packed bytes (little-endian)
func SampleTo24Bit(sample int32) [3]byte {
	return [3]byte{
		byte(sample),
		byte(sample >> 8),
		byte(sample >> 16),
	}
}

// SampleFrom24Bit converts 24-bit packed bytes to int32 (little-endian)
func SampleFrom24Bit(b [3]byte) int32 {
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	// Sign extend from 24-bit to 32-bit
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF
	}
	return val
}

// SampleToFloat32 scales a 24-bit range sample to [-1, 1)
func SampleToFloat32(sample int32) float32 {
	return float32(sample) / 8388608.0
}

// SampleFromFloat32 converts a float sample back to 24-bit range, clipping
// anything outside [-1, 1]
func SampleFromFloat32(f float32) int32 {
	if math.IsNaN(float64(f)) {
		return 0
	}
	scaled := math.Round(float64(f) * 8388608.0)
	if scaled > Max24Bit {
		return Max24Bit
	}
	if scaled < Min24Bit {
		return Min24Bit
	}
	return int32(scaled)
}
