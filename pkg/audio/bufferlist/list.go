// ABOUTME: Buffer list manager
// ABOUTME: Owns sample memory and the descriptor array handed to the host audio API
package bufferlist

import (
	"fmt"
	"math"
	"unsafe"
)

// DefaultFrames is the frame count a List is usually prepared for
const DefaultFrames = 512

// maxPadding bounds what segment padding adds to a buffer
const maxPadding = 0x20

// List owns one block of sample memory split into equal segments, one per
// buffer, and the descriptor array that points into it. A List is not safe
// for concurrent use.
type List struct {
	format      StreamFormat
	frames      uint32
	bufferCount int
	bufferSize  int

	memory      []byte // sample block, nil until Allocate
	descriptors []byte // header + bufferCount buffers
	header      *header
	buffers     []Buffer
	released    bool
}

// New creates a list for format. No sample memory is allocated until
// Allocate is called; until then Prepare produces null buffers.
func New(format StreamFormat, frames uint32) (*List, error) {
	if format == nil || format.ChannelsPerFrame() < 1 {
		return nil, ErrInvalidFormat
	}

	bufferCount := 1
	if !format.IsInterleaved() {
		bufferCount = format.ChannelsPerFrame()
	}

	descriptors, err := allocate(descriptorSize(bufferCount))
	if err != nil {
		return nil, fmt.Errorf("failed to allocate buffer list: %w", err)
	}

	hdr := (*header)(unsafe.Pointer(&descriptors[0]))
	return &List{
		format:      format,
		frames:      frames,
		bufferCount: bufferCount,
		descriptors: descriptors,
		header:      hdr,
		buffers:     unsafe.Slice(&hdr.Buffers[0], bufferCount),
	}, nil
}

// Allocate makes room for frames frames per buffer.
//
// Passing 0 frees the sample memory. A request whose per-buffer size is no
// larger than AllocatedBytes is a no-op: memory is kept and Frames is not
// updated. On multi-buffer lists such a request may still not fit a single
// buffer, so PrepareFrames can report ErrTooManyFramesToProcess afterwards.
// Growing replaces the block with a zeroed one and invalidates any data
// pointers handed out before.
func (l *List) Allocate(frames uint32) error {
	if l.released {
		return ErrReleased
	}

	if frames == 0 {
		l.clearData()
		if l.memory != nil {
			mem := l.memory
			l.memory = nil
			if err := release(mem); err != nil {
				return fmt.Errorf("failed to release sample memory: %w", err)
			}
		}
		l.bufferSize = 0
		l.frames = 0
		return nil
	}

	size, err := l.bufferBytes(frames)
	if err != nil {
		return err
	}
	nBytes := int(size)
	if nBytes <= l.AllocatedBytes() {
		return nil
	}

	// Space successive buffers by odd multiples of 16 bytes so they align
	// for vector units and alternate cache lines.
	if l.bufferCount > 1 {
		nBytes = (nBytes + (0x10 - (nBytes & 0xF))) | 0x10
	}

	mem, err := allocate(nBytes * l.bufferCount)
	if err != nil {
		return fmt.Errorf("failed to allocate %d bytes of sample memory: %w", nBytes*l.bufferCount, err)
	}
	clear(mem)

	old := l.memory
	l.clearData()
	l.memory = mem
	l.bufferSize = nBytes
	l.frames = frames

	if old != nil {
		if err := release(old); err != nil {
			return fmt.Errorf("failed to release sample memory: %w", err)
		}
	}
	return nil
}

// bufferBytes returns the per-buffer byte size of frames. Sizes that do not
// fit a descriptor's 32-bit field, or whose padded block would overflow int,
// fail with ErrFrameCountTooLarge.
func (l *List) bufferBytes(frames uint32) (uint32, error) {
	n := uint64(frames) * uint64(l.format.FramesToBytes(1))
	if n > math.MaxUint32 || (n+maxPadding)*uint64(l.bufferCount) > math.MaxInt {
		return 0, fmt.Errorf("%d frames: %w", frames, ErrFrameCountTooLarge)
	}
	return uint32(n), nil
}

// Prepare fills the descriptors for the current frame count
func (l *List) Prepare() error {
	return l.PrepareFrames(l.frames, false)
}

// PrepareFrames fills the descriptors to describe frames frames.
//
// Without sample memory, or when wantNullBuffer is set, every buffer gets a
// nil data pointer and the byte size frames would need; hosts use this to
// render into their own memory. Otherwise the buffers point into the block
// and ErrTooManyFramesToProcess is returned if frames does not fit.
func (l *List) PrepareFrames(frames uint32, wantNullBuffer bool) error {
	if l.released {
		return ErrReleased
	}

	channelsPerBuffer := uint32(1)
	if l.format.IsInterleaved() {
		channelsPerBuffer = uint32(l.format.ChannelsPerFrame())
	}
	nBytes, err := l.bufferBytes(frames)
	if err != nil {
		return err
	}

	if l.memory == nil || wantNullBuffer {
		l.header.NumberBuffers = uint32(l.bufferCount)
		for i := range l.buffers {
			l.buffers[i] = Buffer{
				NumberChannels: channelsPerBuffer,
				DataByteSize:   nBytes,
			}
		}
		return nil
	}

	if int(nBytes)*l.bufferCount > l.AllocatedBytes() {
		return fmt.Errorf("prepare %d frames (%d bytes per buffer, %d allocated): %w",
			frames, nBytes, l.bufferSize, ErrTooManyFramesToProcess)
	}

	l.header.NumberBuffers = uint32(l.bufferCount)
	base := uintptr(unsafe.Pointer(&l.memory[0]))
	for i := range l.buffers {
		l.buffers[i] = Buffer{
			NumberChannels: channelsPerBuffer,
			DataByteSize:   nBytes,
			Data:           base + uintptr(i*l.bufferSize),
		}
	}
	return nil
}

// ABL returns the descriptor array in the host AudioBufferList layout. The
// pointer stays valid until Close; the data pointers inside it only until the
// next Allocate that changes the block.
func (l *List) ABL() unsafe.Pointer {
	if l.released {
		return nil
	}
	return unsafe.Pointer(l.header)
}

// Buffers returns the descriptor entries. The slice aliases the memory
// behind ABL.
func (l *List) Buffers() []Buffer {
	return l.buffers
}

// Data returns the bytes buffer i points at, or nil for a null buffer
func (l *List) Data(i int) []byte {
	if l.released || l.memory == nil || i < 0 || i >= l.bufferCount {
		return nil
	}
	b := l.buffers[i]
	if b.IsNull() {
		return nil
	}
	start := i * l.bufferSize
	return l.memory[start : start+int(b.DataByteSize)]
}

// Format returns the stream format the list was created for
func (l *List) Format() StreamFormat {
	return l.format
}

// Frames returns the frame count the list was last allocated for
func (l *List) Frames() uint32 {
	return l.frames
}

// BufferCount returns 1 for interleaved formats, else the channel count
func (l *List) BufferCount() int {
	return l.bufferCount
}

// BufferSize returns the allocated bytes per buffer, including padding
func (l *List) BufferSize() int {
	return l.bufferSize
}

// AllocatedBytes returns the size of the sample block
func (l *List) AllocatedBytes() int {
	return l.bufferSize * l.bufferCount
}

// Allocated reports whether sample memory is held
func (l *List) Allocated() bool {
	return l.memory != nil
}

// Close releases the sample memory and the descriptor array. The list cannot
// be used afterwards.
func (l *List) Close() error {
	if l.released {
		return ErrReleased
	}
	l.released = true

	var firstErr error
	if l.memory != nil {
		firstErr = release(l.memory)
		l.memory = nil
	}
	l.header = nil
	l.buffers = nil
	if err := release(l.descriptors); err != nil && firstErr == nil {
		firstErr = err
	}
	l.descriptors = nil
	l.bufferSize = 0
	l.frames = 0

	if firstErr != nil {
		return fmt.Errorf("failed to release buffer list: %w", firstErr)
	}
	return nil
}

// clearData drops data pointers that are about to dangle
func (l *List) clearData() {
	for i := range l.buffers {
		l.buffers[i].Data = 0
	}
}
