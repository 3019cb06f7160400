// ABOUTME: Host buffer list ABI types
// ABOUTME: Mirrors the AudioBufferList / AudioBuffer memory layout
package bufferlist

import "unsafe"

// StreamFormat is what a List needs to know about the samples it holds.
// audio.Format satisfies it.
type StreamFormat interface {
	IsInterleaved() bool
	ChannelsPerFrame() int
	FramesToBytes(frames uint32) uint32
}

// Buffer describes one segment of sample memory. Its size and field offsets
// match the host AudioBuffer struct, so a run of them can be handed to C.
type Buffer struct {
	NumberChannels uint32
	DataByteSize   uint32
	Data           uintptr // 0 for a null buffer
}

// IsNull reports whether the buffer carries no data pointer
func (b Buffer) IsNull() bool {
	return b.Data == 0
}

// header mirrors AudioBufferList: a buffer count followed by a variable
// length array of buffers.
type header struct {
	NumberBuffers uint32
	Buffers       [1]Buffer
}

const (
	buffersOffset = unsafe.Offsetof(header{}.Buffers)
	bufferStride  = unsafe.Sizeof(Buffer{})
)

// descriptorSize returns the bytes needed for a list of n buffers
func descriptorSize(n int) int {
	return int(buffersOffset) + n*int(bufferStride)
}
