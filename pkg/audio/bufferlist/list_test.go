// ABOUTME: Tests for the buffer list manager
// ABOUTME: Covers allocation reuse, padding, prepare modes and the ABI layout
package bufferlist

import (
	"errors"
	"math"
	"testing"
	"unsafe"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
)

var (
	stereo16            = audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 16}
	stereo16Interleaved = audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 16, Interleaved: true}
)

func newList(t *testing.T, format StreamFormat, frames uint32) *List {
	t.Helper()
	l, err := New(format, frames)
	if err != nil {
		t.Fatalf("failed to create list: %v", err)
	}
	t.Cleanup(func() {
		if err := l.Close(); err != nil && !errors.Is(err, ErrReleased) {
			t.Errorf("close failed: %v", err)
		}
	})
	return l
}

func TestNewBufferCount(t *testing.T) {
	tests := []struct {
		name     string
		format   audio.Format
		expected int
	}{
		{"non-interleaved stereo", stereo16, 2},
		{"interleaved stereo", stereo16Interleaved, 1},
		{"non-interleaved 6ch", audio.Format{Channels: 6, BitDepth: 32}, 6},
		{"mono", audio.Format{Channels: 1, BitDepth: 24}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newList(t, tt.format, DefaultFrames)
			if l.BufferCount() != tt.expected {
				t.Errorf("expected %d buffers, got %d", tt.expected, l.BufferCount())
			}
			if l.Frames() != DefaultFrames {
				t.Errorf("expected %d frames, got %d", DefaultFrames, l.Frames())
			}
			if l.Allocated() || l.BufferSize() != 0 {
				t.Errorf("expected no sample memory, got %d bytes", l.AllocatedBytes())
			}
		})
	}
}

func TestNewInvalidFormat(t *testing.T) {
	if _, err := New(audio.Format{Channels: 0, BitDepth: 16}, DefaultFrames); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
	if _, err := New(nil, DefaultFrames); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestAllocatePadsMultipleBuffers(t *testing.T) {
	l := newList(t, stereo16, DefaultFrames)

	if err := l.Allocate(1024); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}

	// 2048 bytes needed, padded to the next odd multiple of 16
	if l.BufferSize() != 2064 {
		t.Errorf("expected buffer size 2064, got %d", l.BufferSize())
	}
	if l.AllocatedBytes() != 4128 {
		t.Errorf("expected 4128 allocated bytes, got %d", l.AllocatedBytes())
	}
	if l.Frames() != 1024 {
		t.Errorf("expected 1024 frames, got %d", l.Frames())
	}
}

func TestAllocateSingleBufferUnpadded(t *testing.T) {
	l := newList(t, stereo16Interleaved, DefaultFrames)

	if err := l.Allocate(512); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	if l.BufferSize() != 2048 {
		t.Errorf("expected buffer size 2048, got %d", l.BufferSize())
	}
}

func TestAllocatePaddingIsOddMultipleOf16(t *testing.T) {
	format := audio.Format{Channels: 3, BitDepth: 24}

	for frames := uint32(1); frames <= 300; frames++ {
		l, err := New(format, frames)
		if err != nil {
			t.Fatalf("failed to create list: %v", err)
		}
		if err := l.Allocate(frames); err != nil {
			t.Fatalf("allocate %d failed: %v", frames, err)
		}

		needed := int(format.FramesToBytes(frames))
		size := l.BufferSize()
		if size%32 != 16 {
			t.Errorf("frames=%d: size %d is not an odd multiple of 16", frames, size)
		}
		if size <= needed || size-needed > 32 {
			t.Errorf("frames=%d: size %d out of range for %d needed bytes", frames, size, needed)
		}
		if err := l.Close(); err != nil {
			t.Fatalf("close failed: %v", err)
		}
	}
}

func TestAllocateReusesCapacity(t *testing.T) {
	l := newList(t, stereo16, DefaultFrames)

	if err := l.Allocate(1024); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	before := l.AllocatedBytes()

	if err := l.Allocate(256); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	if l.AllocatedBytes() != before {
		t.Errorf("expected capacity %d to be kept, got %d", before, l.AllocatedBytes())
	}
	if l.Frames() != 1024 {
		t.Errorf("expected frames to stay 1024, got %d", l.Frames())
	}

	if err := l.PrepareFrames(256, false); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if l.Buffers()[0].DataByteSize != 512 {
		t.Errorf("expected 512 byte buffers, got %d", l.Buffers()[0].DataByteSize)
	}
}

func TestAllocateComparesAgainstTotalBytes(t *testing.T) {
	l := newList(t, stereo16, DefaultFrames)

	if err := l.Allocate(512); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	if l.AllocatedBytes() != 2080 {
		t.Fatalf("expected 2080 allocated bytes, got %d", l.AllocatedBytes())
	}

	// 1200 bytes per buffer is below the 2080 byte total, so nothing changes
	if err := l.Allocate(600); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	if l.AllocatedBytes() != 2080 {
		t.Errorf("expected capacity to stay 2080, got %d", l.AllocatedBytes())
	}
	if l.Frames() != 512 {
		t.Errorf("expected frames to stay 512, got %d", l.Frames())
	}

	if err := l.PrepareFrames(600, false); !errors.Is(err, ErrTooManyFramesToProcess) {
		t.Errorf("expected ErrTooManyFramesToProcess, got %v", err)
	}
}

func TestFrameCountOverflow(t *testing.T) {
	tests := []struct {
		name   string
		format audio.Format
		frames uint32
	}{
		{"16-bit wraps to zero", stereo16, 1 << 31},
		{"interleaved stereo 16-bit", stereo16Interleaved, 1 << 30},
		{"32-bit max frames", audio.Format{Channels: 1, BitDepth: 32}, math.MaxUint32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newList(t, tt.format, DefaultFrames)

			if err := l.Allocate(tt.frames); !errors.Is(err, ErrFrameCountTooLarge) {
				t.Fatalf("expected ErrFrameCountTooLarge, got %v", err)
			}
			if l.Allocated() || l.Frames() != DefaultFrames {
				t.Errorf("expected list untouched, got %d bytes, %d frames", l.AllocatedBytes(), l.Frames())
			}

			for _, null := range []bool{true, false} {
				if err := l.PrepareFrames(tt.frames, null); !errors.Is(err, ErrFrameCountTooLarge) {
					t.Errorf("null=%v: expected ErrFrameCountTooLarge, got %v", null, err)
				}
			}
		})
	}
}

func TestAllocateGrowZeroesMemory(t *testing.T) {
	l := newList(t, stereo16, DefaultFrames)

	if err := l.Allocate(64); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	if err := l.Prepare(); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	for i := range l.Data(0) {
		l.Data(0)[i] = 0xAA
	}

	if err := l.Allocate(4096); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	for i, b := range l.Buffers() {
		if !b.IsNull() {
			t.Errorf("buffer %d still points at the old block", i)
		}
	}
	if err := l.Prepare(); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	for i := 0; i < l.BufferCount(); i++ {
		for j, v := range l.Data(i) {
			if v != 0 {
				t.Fatalf("buffer %d byte %d not zeroed: %#x", i, j, v)
			}
		}
	}
}

func TestPrepareTooManyFrames(t *testing.T) {
	l := newList(t, stereo16, DefaultFrames)

	if err := l.Allocate(1024); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}

	// 1032 frames fill the padded 2064 byte buffers exactly
	if err := l.PrepareFrames(1032, false); err != nil {
		t.Errorf("expected 1032 frames to fit, got %v", err)
	}

	err := l.PrepareFrames(1033, false)
	if !errors.Is(err, ErrTooManyFramesToProcess) {
		t.Fatalf("expected ErrTooManyFramesToProcess, got %v", err)
	}

	var status *StatusError
	if !errors.As(err, &status) || status.Status != -10874 {
		t.Errorf("expected status -10874, got %v", err)
	}
}

func TestPrepareUnallocatedGivesNullBuffers(t *testing.T) {
	l := newList(t, stereo16, DefaultFrames)

	if err := l.PrepareFrames(4096, false); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	buffers := l.Buffers()
	if len(buffers) != 2 {
		t.Fatalf("expected 2 buffers, got %d", len(buffers))
	}
	for i, b := range buffers {
		if !b.IsNull() {
			t.Errorf("buffer %d: expected null data", i)
		}
		if b.DataByteSize != 8192 {
			t.Errorf("buffer %d: expected 8192 bytes, got %d", i, b.DataByteSize)
		}
		if b.NumberChannels != 1 {
			t.Errorf("buffer %d: expected 1 channel, got %d", i, b.NumberChannels)
		}
		if l.Data(i) != nil {
			t.Errorf("buffer %d: expected nil data slice", i)
		}
	}
}

func TestPrepareWantNullBuffer(t *testing.T) {
	l := newList(t, stereo16Interleaved, DefaultFrames)

	if err := l.Allocate(256); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}

	// Null buffers skip the capacity check
	if err := l.PrepareFrames(1024, true); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	b := l.Buffers()[0]
	if !b.IsNull() {
		t.Error("expected null data")
	}
	if b.NumberChannels != 2 {
		t.Errorf("expected 2 channels, got %d", b.NumberChannels)
	}
	if b.DataByteSize != 4096 {
		t.Errorf("expected 4096 bytes, got %d", b.DataByteSize)
	}
	if !l.Allocated() {
		t.Error("expected memory to stay allocated")
	}
}

func TestPreparePointsIntoBlock(t *testing.T) {
	l := newList(t, stereo16, DefaultFrames)

	if err := l.Allocate(1024); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	if err := l.PrepareFrames(100, false); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	buffers := l.Buffers()
	// Offsets follow the allocated buffer size, not the prepared size
	if gap := buffers[1].Data - buffers[0].Data; gap != uintptr(l.BufferSize()) {
		t.Errorf("expected buffers %d bytes apart, got %d", l.BufferSize(), gap)
	}
	if buffers[0].Data != uintptr(unsafe.Pointer(&l.Data(0)[0])) {
		t.Error("expected first buffer to point at the start of the block")
	}
	if len(l.Data(1)) != 200 {
		t.Errorf("expected 200 byte data slice, got %d", len(l.Data(1)))
	}

	l.Data(0)[0] = 1
	if l.Data(1)[0] != 0 {
		t.Error("expected buffers not to overlap")
	}
}

func TestAllocateZeroReleases(t *testing.T) {
	l := newList(t, stereo16, DefaultFrames)

	if err := l.Allocate(1024); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	if err := l.Prepare(); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	if err := l.Allocate(0); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if l.Allocated() || l.BufferSize() != 0 || l.Frames() != 0 {
		t.Errorf("expected empty list, got %d bytes, %d frames", l.AllocatedBytes(), l.Frames())
	}

	if err := l.Prepare(); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	for i, b := range l.Buffers() {
		if !b.IsNull() {
			t.Errorf("buffer %d: expected null data", i)
		}
	}

	// Releasing twice is fine
	if err := l.Allocate(0); err != nil {
		t.Errorf("second release failed: %v", err)
	}

	// And the list can be allocated again
	if err := l.Allocate(128); err != nil {
		t.Fatalf("reallocate failed: %v", err)
	}
	if l.Frames() != 128 {
		t.Errorf("expected 128 frames, got %d", l.Frames())
	}
}

func TestABLLayout(t *testing.T) {
	if unsafe.Sizeof(uintptr(0)) == 8 {
		if buffersOffset != 8 || bufferStride != 16 {
			t.Errorf("expected offset 8 stride 16, got %d and %d", buffersOffset, bufferStride)
		}
	} else if buffersOffset != 4 || bufferStride != 12 {
		t.Errorf("expected offset 4 stride 12, got %d and %d", buffersOffset, bufferStride)
	}

	l := newList(t, audio.Format{Channels: 4, BitDepth: 32}, DefaultFrames)
	if err := l.Allocate(DefaultFrames); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	if err := l.Prepare(); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	abl := l.ABL()
	if abl == nil {
		t.Fatal("expected descriptor pointer")
	}
	if n := *(*uint32)(abl); n != 4 {
		t.Errorf("expected 4 buffers in header, got %d", n)
	}

	third := (*Buffer)(unsafe.Add(abl, buffersOffset+2*bufferStride))
	if *third != l.Buffers()[2] {
		t.Errorf("expected raw entry %+v, got %+v", l.Buffers()[2], *third)
	}
	if third.DataByteSize != 2048 {
		t.Errorf("expected 2048 bytes, got %d", third.DataByteSize)
	}
}

func TestClose(t *testing.T) {
	l, err := New(stereo16, DefaultFrames)
	if err != nil {
		t.Fatalf("failed to create list: %v", err)
	}
	if err := l.Allocate(256); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}

	if err := l.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if l.ABL() != nil {
		t.Error("expected nil descriptor pointer after close")
	}
	if err := l.Close(); !errors.Is(err, ErrReleased) {
		t.Errorf("expected ErrReleased, got %v", err)
	}
	if err := l.Allocate(256); !errors.Is(err, ErrReleased) {
		t.Errorf("expected ErrReleased, got %v", err)
	}
	if err := l.Prepare(); !errors.Is(err, ErrReleased) {
		t.Errorf("expected ErrReleased, got %v", err)
	}
}
