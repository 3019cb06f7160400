// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts audio sources between different sample rates
// Package resample provides audio sample rate conversion.
//
// A Resampler wraps a decode.Source and is itself a decode.Source, so it
// can sit between a decoder and a render.Renderer. Interpolation carries
// across reads; output frames that would fall past the last input frame are
// not produced.
//
// Example:
//
//	src, _ := decode.Open("song.mp3", audio.Format{})
//	r, err := resample.New(src, 48000)
//	n, err := r.ReadSamples(samples)
package resample
