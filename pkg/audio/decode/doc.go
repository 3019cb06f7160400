// ABOUTME: Audio decoder package for multiple codec support
// ABOUTME: Provides packet decoders and streaming file sources
// Package decode provides audio decoders and file sources.
//
// Packet decoders: PCM (16-bit and 24-bit), Opus.
// File sources: MP3, FLAC, WAV, headerless PCM and Opus packet streams.
//
// Everything outputs interleaved int32 samples in 24-bit range for
// consistent hi-res audio processing.
//
// Example:
//
//	src, err := decode.Open("song.flac", audio.Format{})
//	n, err := src.ReadSamples(buf)
package decode
