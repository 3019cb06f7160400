// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides Output interface with oto, WAV and encoded file implementations
// Package output provides audio playback interfaces.
//
// Outputs consume prepared bufferlist.List values, so the same list that
// would be handed to a host audio API can be played through oto, written
// to a WAV file, or encoded as raw PCM or Opus packets.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(format)
//	err = out.Write(list)
package output
