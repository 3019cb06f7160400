// ABOUTME: MP3 audio source
// ABOUTME: Streams MP3 files to int32 samples using go-mp3
package decode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
	"github.com/hajimehoshi/go-mp3"
)

// MP3Source decodes MP3 audio. go-mp3 always produces 16-bit stereo.
type MP3Source struct {
	decoder *mp3.Decoder
	closer  io.Closer
	format  audio.Format
	buf     []byte
}

// NewMP3Source creates an MP3 source reading from r. If r is an io.Closer it
// is closed by Close.
func NewMP3Source(r io.Reader) (*MP3Source, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	s := &MP3Source{
		decoder: decoder,
		format: audio.Format{
			Codec:       "mp3",
			SampleRate:  decoder.SampleRate(),
			Channels:    2,
			BitDepth:    16,
			Interleaved: true,
		},
	}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s, nil
}

// ReadSamples implements Source
func (s *MP3Source) ReadSamples(dst []int32) (int, error) {
	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	buf := s.buf[:need]

	n, err := io.ReadFull(s.decoder, buf)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("mp3 decode error: %w", err)
	}

	numSamples := n / 2
	for i := 0; i < numSamples; i++ {
		sample16 := int16(binary.LittleEndian.Uint16(buf[i*2:]))
		dst[i] = audio.SampleFromInt16(sample16)
	}
	if numSamples == 0 {
		return 0, io.EOF
	}
	return numSamples, nil
}

// Format implements Source
func (s *MP3Source) Format() audio.Format {
	return s.format
}

// Close implements Source
func (s *MP3Source) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
