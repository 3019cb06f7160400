// ABOUTME: Decoder and source interface definitions
// ABOUTME: Packet decoders, streaming file sources and codec selection
package decode

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
)

// Decoder decodes audio in various formats to PCM int32 samples
type Decoder interface {
	// Decode converts encoded audio data to PCM samples
	Decode(data []byte) ([]int32, error)

	// Close releases decoder resources
	Close() error
}

// Source streams interleaved int32 samples in 24-bit range
type Source interface {
	// ReadSamples fills dst and returns io.EOF once the stream is exhausted
	ReadSamples(dst []int32) (int, error)

	// Format describes the decoded stream (always interleaved)
	Format() audio.Format

	// Close releases the source and its underlying file
	Close() error
}

// PacketSource adapts a packet Decoder to a Source
type PacketSource struct {
	decoder Decoder
	format  audio.Format
	next    func() ([]byte, error)
	closer  io.Closer
	pending []int32
}

// NewPacketSource decodes packets returned by next until it reports io.EOF
func NewPacketSource(decoder Decoder, format audio.Format, next func() ([]byte, error)) *PacketSource {
	format.Interleaved = true
	return &PacketSource{
		decoder: decoder,
		format:  format,
		next:    next,
	}
}

// ReadSamples implements Source
func (s *PacketSource) ReadSamples(dst []int32) (int, error) {
	n := 0
	for n < len(dst) {
		if len(s.pending) == 0 {
			packet, err := s.next()
			if err != nil {
				if errors.Is(err, io.EOF) && n > 0 {
					return n, nil
				}
				return n, err
			}
			samples, err := s.decoder.Decode(packet)
			if err != nil {
				return n, err
			}
			s.pending = samples
			continue
		}
		m := copy(dst[n:], s.pending)
		s.pending = s.pending[m:]
		n += m
	}
	return n, nil
}

// Format implements Source
func (s *PacketSource) Format() audio.Format {
	return s.format
}

// Close implements Source
func (s *PacketSource) Close() error {
	err := s.decoder.Close()
	if s.closer != nil {
		if cerr := s.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// ReadPacket reads one packet framed by a big-endian uint16 length
func ReadPacket(r io.Reader) ([]byte, error) {
	var size uint16
	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		return nil, err
	}
	packet := make([]byte, size)
	if _, err := io.ReadFull(r, packet); err != nil {
		return nil, fmt.Errorf("truncated packet: %w", err)
	}
	return packet, nil
}

// rawChunkSize is the read size for headerless PCM files
const rawChunkSize = 4096

// Open picks a source for path by extension. Headerless .pcm and .raw
// files and length-prefixed .opuspkt packet streams are read with the
// raw format.
func Open(path string, raw audio.Format) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	src, err := newSource(f, strings.ToLower(filepath.Ext(path)), raw)
	if err != nil {
		f.Close()
		return nil, err
	}
	return src, nil
}

func newSource(f *os.File, ext string, raw audio.Format) (Source, error) {
	switch ext {
	case ".mp3":
		return NewMP3Source(f)
	case ".flac":
		return NewFLACSource(f)
	case ".wav", ".wave":
		return NewWAVSource(f)
	case ".pcm", ".raw":
		raw.Codec = "pcm"
		if err := raw.Validate(); err != nil {
			return nil, err
		}
		dec, err := NewPCM(raw)
		if err != nil {
			return nil, err
		}
		r := bufio.NewReader(f)
		bytesPerFrame := raw.Channels * raw.BytesPerSample()
		chunk := make([]byte, rawChunkSize-rawChunkSize%bytesPerFrame)
		src := NewPacketSource(dec, raw, func() ([]byte, error) {
			n, err := io.ReadFull(r, chunk)
			if errors.Is(err, io.ErrUnexpectedEOF) {
				err = nil
			}
			return chunk[:n], err
		})
		src.closer = f
		return src, nil
	case ".opuspkt":
		raw.Codec = "opus"
		dec, err := NewOpus(raw)
		if err != nil {
			return nil, err
		}
		r := bufio.NewReader(f)
		src := NewPacketSource(dec, raw, func() ([]byte, error) {
			return ReadPacket(r)
		})
		src.closer = f
		return src, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %q", ext)
	}
}
