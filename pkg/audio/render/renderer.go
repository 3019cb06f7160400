// ABOUTME: Block renderer from a sample source into a buffer list
// ABOUTME: Allocates once and prepares the list for every block it fills
package render

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/bufferlist"
)

// Source produces interleaved samples in 24-bit range. ReadSamples returns
// io.EOF once no samples remain.
type Source interface {
	ReadSamples(dst []int32) (int, error)
}

// Config describes a renderer
type Config struct {
	Format audio.Format // layout of the list; Codec is informational
	Frames uint32       // frames per block, bufferlist.DefaultFrames if 0
}

// Renderer fills a buffer list block by block
type Renderer struct {
	format  audio.Format
	src     Source
	list    *bufferlist.List
	scratch []int32
	total   uint64
}

// New creates a renderer reading from src
func New(cfg Config, src Source) (*Renderer, error) {
	if err := cfg.Format.Validate(); err != nil {
		return nil, err
	}
	frames := cfg.Frames
	if frames == 0 {
		frames = bufferlist.DefaultFrames
	}

	list, err := bufferlist.New(cfg.Format, frames)
	if err != nil {
		return nil, fmt.Errorf("failed to create buffer list: %w", err)
	}
	if err := list.Allocate(frames); err != nil {
		list.Close()
		return nil, fmt.Errorf("failed to allocate buffer list: %w", err)
	}

	log.Printf("Renderer initialized: %s, %d frames per block, %d buffers of %d bytes",
		cfg.Format, frames, list.BufferCount(), list.BufferSize())

	return &Renderer{
		format:  cfg.Format,
		src:     src,
		list:    list,
		scratch: make([]int32, int(frames)*cfg.Format.Channels),
	}, nil
}

// Next fills the list with the next block and returns its frame count.
// The final block may be short; io.EOF follows it.
func (r *Renderer) Next() (int, error) {
	n := 0
	for n < len(r.scratch) {
		m, err := r.src.ReadSamples(r.scratch[n:])
		n += m
		if errors.Is(err, io.EOF) || (err == nil && m == 0) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("source read failed: %w", err)
		}
	}

	frames := n / r.format.Channels
	if frames == 0 {
		return 0, io.EOF
	}

	if err := r.list.PrepareFrames(uint32(frames), false); err != nil {
		return 0, err
	}
	if err := Scatter(r.list, r.format, r.scratch[:frames*r.format.Channels]); err != nil {
		return 0, err
	}

	r.total += uint64(frames)
	return frames, nil
}

// List returns the buffer list the renderer fills
func (r *Renderer) List() *bufferlist.List {
	return r.list
}

// Format returns the list format
func (r *Renderer) Format() audio.Format {
	return r.format
}

// FramesRendered returns the number of frames produced so far
func (r *Renderer) FramesRendered() uint64 {
	return r.total
}

// Close releases the buffer list
func (r *Renderer) Close() error {
	return r.list.Close()
}
