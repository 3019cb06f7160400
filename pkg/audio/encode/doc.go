// ABOUTME: Audio encoder package for PCM and Opus
// ABOUTME: Used by file outputs and by the buffer list sample packer
// Package encode converts interleaved int32 samples in 24-bit range into
// codec bytes.
//
// PCMEncoder packs 16-bit, packed 24-bit and 32-bit float little-endian
// samples; its EncodeTo writes straight into buffer list memory.
// OpusEncoder produces one packet per 20ms frame.
//
//	enc, err := encode.NewPCM(audio.Format{Codec: "pcm", BitDepth: 24})
//	n, err := enc.EncodeTo(list.Data(0), samples)
package encode
