// ABOUTME: FLAC audio source
// ABOUTME: Streams FLAC files frame by frame using mewkiz/flac
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
	"github.com/mewkiz/flac"
)

// FLACSource decodes FLAC audio
type FLACSource struct {
	stream   *flac.Stream
	closer   io.Closer
	format   audio.Format
	bitDepth int // source bits per sample
	frameBuf []int32
	pending  []int32
}

// NewFLACSource creates a FLAC source reading from r. If r is an io.Closer it
// is closed by Close.
func NewFLACSource(r io.Reader) (*FLACSource, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create flac decoder: %w", err)
	}

	info := stream.Info
	bitDepth := 16
	if info.BitsPerSample > 16 {
		bitDepth = 24
	}

	s := &FLACSource{
		stream:   stream,
		bitDepth: int(info.BitsPerSample),
		format: audio.Format{
			Codec:       "flac",
			SampleRate:  int(info.SampleRate),
			Channels:    int(info.NChannels),
			BitDepth:    bitDepth,
			Interleaved: true,
		},
	}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s, nil
}

// ReadSamples implements Source
func (s *FLACSource) ReadSamples(dst []int32) (int, error) {
	n := 0
	for n < len(dst) {
		if len(s.pending) == 0 {
			if err := s.decodeFrame(); err != nil {
				if errors.Is(err, io.EOF) && n > 0 {
					return n, nil
				}
				return n, err
			}
			continue
		}
		m := copy(dst[n:], s.pending)
		s.pending = s.pending[m:]
		n += m
	}
	return n, nil
}

// decodeFrame interleaves the next FLAC frame into pending
func (s *FLACSource) decodeFrame() error {
	frame, err := s.stream.ParseNext()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("flac decode error: %w", err)
	}

	channels := len(frame.Subframes)
	if channels == 0 {
		return nil
	}
	blockSize := len(frame.Subframes[0].Samples)

	s.frameBuf = s.frameBuf[:0]
	for i := 0; i < blockSize; i++ {
		for ch := 0; ch < channels; ch++ {
			s.frameBuf = append(s.frameBuf, scaleTo24Bit(frame.Subframes[ch].Samples[i], s.bitDepth))
		}
	}
	s.pending = s.frameBuf
	return nil
}

// Format implements Source
func (s *FLACSource) Format() audio.Format {
	return s.format
}

// Close implements Source
func (s *FLACSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// scaleTo24Bit moves a sample of the given bit depth into 24-bit range
func scaleTo24Bit(sample int32, bitDepth int) int32 {
	switch {
	case bitDepth < 24:
		return sample << (24 - bitDepth)
	case bitDepth > 24:
		return sample >> (bitDepth - 24)
	default:
		return sample
	}
}
