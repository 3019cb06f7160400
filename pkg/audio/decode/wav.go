// ABOUTME: WAV audio source
// ABOUTME: Streams WAV files to int32 samples using go-audio/wav
package decode

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVSource decodes PCM WAV files
type WAVSource struct {
	decoder *wav.Decoder
	closer  io.Closer
	format  audio.Format
	buf     *goaudio.IntBuffer
}

// NewWAVSource creates a WAV source reading from r. If r is an io.Closer it
// is closed by Close.
func NewWAVSource(r io.ReadSeeker) (*WAVSource, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		if err := decoder.Err(); err != nil {
			return nil, fmt.Errorf("invalid wav file: %w", err)
		}
		return nil, fmt.Errorf("invalid wav file")
	}

	bitDepth := 16
	if decoder.BitDepth > 16 {
		bitDepth = 24
	}

	s := &WAVSource{
		decoder: decoder,
		format: audio.Format{
			Codec:       "wav",
			SampleRate:  int(decoder.SampleRate),
			Channels:    int(decoder.NumChans),
			BitDepth:    bitDepth,
			Interleaved: true,
		},
		buf: &goaudio.IntBuffer{Format: decoder.Format()},
	}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s, nil
}

// ReadSamples implements Source
func (s *WAVSource) ReadSamples(dst []int32) (int, error) {
	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.decoder.PCMBuffer(s.buf)
	if err != nil {
		return 0, fmt.Errorf("wav decode error: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	bitDepth := int(s.decoder.BitDepth)
	for i := 0; i < n; i++ {
		v := s.buf.Data[i]
		if bitDepth == 8 {
			// 8-bit WAV samples are unsigned
			v -= 128
		}
		dst[i] = scaleTo24Bit(int32(v), bitDepth)
	}
	return n, nil
}

// Format implements Source
func (s *WAVSource) Format() audio.Format {
	return s.format
}

// Close implements Source
func (s *WAVSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
