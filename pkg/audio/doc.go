// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format and sample conversion functions
// Package audio provides fundamental audio types and utilities for hi-res audio processing.
//
// Format describes a PCM stream: codec, sample rate, channels, bit depth and
// whether channels are interleaved in one buffer or split one per buffer.
// It answers the sizing questions buffer lists need (FramesToBytes).
//
// It also provides utilities for converting between different sample formats:
//   - 16-bit ↔ 24-bit conversions
//   - int32 ↔ packed byte conversions
//   - int32 ↔ float32 conversions
//
// Example:
//
//	format := audio.Format{
//	    Codec:      "pcm",
//	    SampleRate: 48000,
//	    Channels:   2,
//	    BitDepth:   24,
//	}
//
//	// 512 frames of one channel: 1536 bytes
//	n := format.FramesToBytes(512)
package audio
