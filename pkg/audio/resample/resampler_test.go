// ABOUTME: Tests for audio resampler
// ABOUTME: Tests streaming linear interpolation between sample rates
package resample

import (
	"io"
	"testing"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
)

// sliceSource serves samples a few at a time
type sliceSource struct {
	format  audio.Format
	samples []int32
	chunk   int
	closed  bool
}

func (s *sliceSource) ReadSamples(dst []int32) (int, error) {
	if len(s.samples) == 0 {
		return 0, io.EOF
	}
	n := len(dst)
	if s.chunk > 0 && n > s.chunk {
		n = s.chunk
	}
	n = copy(dst[:n], s.samples)
	s.samples = s.samples[n:]
	return n, nil
}

func (s *sliceSource) Format() audio.Format { return s.format }

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

func drain(t *testing.T, r *Resampler, readSize int) []int32 {
	t.Helper()
	var out []int32
	buf := make([]int32, readSize)
	for {
		n, err := r.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
	}
}

func mono(rate int, samples ...int32) *sliceSource {
	return &sliceSource{
		format:  audio.Format{Codec: "pcm", SampleRate: rate, Channels: 1, BitDepth: 16, Interleaved: true},
		samples: samples,
		chunk:   3,
	}
}

func expectSamples(t *testing.T, expected, got []int32) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("sample %d: expected %d, got %d", i, expected[i], got[i])
		}
	}
}

func TestNewResampler(t *testing.T) {
	src := mono(44100)
	r, err := New(src, 48000)
	if err != nil {
		t.Fatalf("failed to create resampler: %v", err)
	}

	if r.ratio != 44100.0/48000.0 {
		t.Errorf("expected ratio %v, got %v", 44100.0/48000.0, r.ratio)
	}
	if r.Format().SampleRate != 48000 {
		t.Errorf("expected output format at 48000, got %d", r.Format().SampleRate)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if !src.closed {
		t.Error("expected close to reach the source")
	}
}

func TestNewResamplerInvalid(t *testing.T) {
	if _, err := New(mono(0), 48000); err == nil {
		t.Error("expected error for zero input rate")
	}
	if _, err := New(mono(44100), 0); err == nil {
		t.Error("expected error for zero output rate")
	}
}

func TestResampleSameRate(t *testing.T) {
	r, err := New(mono(48000, 10, 20, 30, 40, 50, 60, 70), 48000)
	if err != nil {
		t.Fatalf("failed to create resampler: %v", err)
	}
	expectSamples(t, []int32{10, 20, 30, 40, 50, 60, 70}, drain(t, r, 2))
}

func TestResampleUpsampling(t *testing.T) {
	r, err := New(mono(24000, 0, 100, 200), 48000)
	if err != nil {
		t.Fatalf("failed to create resampler: %v", err)
	}
	expectSamples(t, []int32{0, 50, 100, 150, 200}, drain(t, r, 4))
}

func TestResampleDownsampling(t *testing.T) {
	r, err := New(mono(96000, 0, 100, 200, 300, 400, 500, 600, 700, 800, 900), 48000)
	if err != nil {
		t.Fatalf("failed to create resampler: %v", err)
	}
	expectSamples(t, []int32{0, 200, 400, 600, 800}, drain(t, r, 3))
}

func TestResampleStereoKeepsChannels(t *testing.T) {
	src := &sliceSource{
		format:  audio.Format{SampleRate: 22050, Channels: 2, BitDepth: 16, Interleaved: true},
		samples: []int32{0, 1000, 100, 900, 200, 800},
		chunk:   3, // splits frames across reads
	}
	r, err := New(src, 44100)
	if err != nil {
		t.Fatalf("failed to create resampler: %v", err)
	}
	expectSamples(t, []int32{0, 1000, 50, 950, 100, 900, 150, 850, 200, 800}, drain(t, r, 6))
}

func TestResampleEmptySource(t *testing.T) {
	r, err := New(mono(44100), 48000)
	if err != nil {
		t.Fatalf("failed to create resampler: %v", err)
	}
	if n, err := r.ReadSamples(make([]int32, 8)); n != 0 || err != io.EOF {
		t.Errorf("expected 0, EOF; got %d, %v", n, err)
	}
}

func TestResampleRampLength(t *testing.T) {
	input := make([]int32, 441)
	for i := range input {
		input[i] = int32(i * 100)
	}
	r, err := New(mono(44100, input...), 48000)
	if err != nil {
		t.Fatalf("failed to create resampler: %v", err)
	}

	out := drain(t, r, 64)
	expected := len(input) * 48000 / 44100
	if len(out) < expected-2 || len(out) > expected+2 {
		t.Errorf("expected ~%d samples, got %d", expected, len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i] < out[i-1] {
			t.Fatalf("ramp not monotonic at %d: %d < %d", i, out[i], out[i-1])
		}
	}
}
