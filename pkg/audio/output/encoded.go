// ABOUTME: Encoded file output implementation
// ABOUTME: Writes prepared buffer lists as raw PCM or framed Opus packets
package output

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/bufferlist"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/encode"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/render"
)

// Encoded output streaming through an encode.Encoder
type Encoded struct {
	path    string
	codec   string
	file    *os.File
	w       *bufio.Writer
	encoder encode.Encoder
	format  audio.Format

	// frameSamples is the fixed encoder block in samples, 0 for any size
	frameSamples int
	framed       bool
	pending      []int32
	packets      int
}

// NewEncoded creates an output writing codec ("pcm" or "opus") to path
func NewEncoded(path, codec string) *Encoded {
	return &Encoded{path: path, codec: codec}
}

// Open creates the file and the encoder. PCM keeps the list's sample
// layout, so 32-bit lists are written as float.
func (e *Encoded) Open(format audio.Format) error {
	if err := format.Validate(); err != nil {
		return err
	}
	if e.file != nil {
		return fmt.Errorf("encoded output already open: %s", e.path)
	}

	encFormat := format
	encFormat.Codec = e.codec
	switch e.codec {
	case "pcm":
		enc, err := encode.NewPCM(encFormat)
		if err != nil {
			return err
		}
		e.encoder = enc
	case "opus":
		enc, err := encode.NewOpus(encFormat)
		if err != nil {
			return err
		}
		e.encoder = enc
		e.frameSamples = enc.FrameSamples()
		e.framed = true
	default:
		return fmt.Errorf("unsupported output codec: %s", e.codec)
	}

	f, err := os.Create(e.path)
	if err != nil {
		e.encoder.Close()
		e.encoder = nil
		return fmt.Errorf("failed to create %s: %w", e.path, err)
	}
	e.file = f
	e.w = bufio.NewWriter(f)
	e.format = format

	log.Printf("Encoded output initialized: %s (%s)", e.path, e.codec)
	return nil
}

// Write encodes the frames described by a prepared buffer list
func (e *Encoded) Write(list *bufferlist.List) error {
	if e.encoder == nil {
		return fmt.Errorf("output not initialized")
	}

	samples, err := render.Gather(list, e.format)
	if err != nil {
		return fmt.Errorf("failed to read buffer list: %w", err)
	}

	if e.frameSamples == 0 {
		return e.emit(samples)
	}

	e.pending = append(e.pending, samples...)
	for len(e.pending) >= e.frameSamples {
		if err := e.emit(e.pending[:e.frameSamples]); err != nil {
			return err
		}
		e.pending = e.pending[e.frameSamples:]
	}
	return nil
}

func (e *Encoded) emit(samples []int32) error {
	data, err := e.encoder.Encode(samples)
	if err != nil {
		return err
	}
	if e.framed {
		if err := writePacket(e.w, data); err != nil {
			return err
		}
	} else if _, err := e.w.Write(data); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	e.packets++
	return nil
}

// writePacket frames data with a big-endian uint16 length
func writePacket(w io.Writer, data []byte) error {
	if len(data) > 0xFFFF {
		return fmt.Errorf("packet too large: %d bytes", len(data))
	}
	if err := binary.Write(w, binary.BigEndian, uint16(len(data))); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	return nil
}

// Packets returns the number of encoder blocks written
func (e *Encoded) Packets() int {
	return e.packets
}

// Close pads and flushes a partial fixed-size block, then closes the file
func (e *Encoded) Close() error {
	if e.file == nil {
		return nil
	}

	var firstErr error
	if len(e.pending) > 0 {
		block := make([]int32, e.frameSamples)
		copy(block, e.pending)
		e.pending = nil
		firstErr = e.emit(block)
	}
	if err := e.w.Flush(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("flush failed: %w", err)
	}
	if err := e.file.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close %s: %w", e.path, err)
	}
	if err := e.encoder.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	e.file = nil
	e.encoder = nil

	log.Printf("Encoded output closed: %s, %d blocks", e.path, e.packets)
	return firstErr
}
