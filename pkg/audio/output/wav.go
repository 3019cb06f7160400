// ABOUTME: WAV file output implementation
// ABOUTME: Writes prepared buffer lists to a PCM WAV file using go-audio/wav
package output

import (
	"fmt"
	"log"
	"os"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/bufferlist"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/render"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavFormatPCM is the WAVE format tag for linear PCM
const wavFormatPCM = 1

// WAV output writing to a file
type WAV struct {
	path     string
	file     *os.File
	encoder  *wav.Encoder
	format   audio.Format
	bitDepth int
	frames   int
}

// NewWAV creates a WAV output that writes to path
func NewWAV(path string) *WAV {
	return &WAV{path: path}
}

// Open creates the file. Float formats are stored as 24-bit integers.
func (w *WAV) Open(format audio.Format) error {
	if err := format.Validate(); err != nil {
		return err
	}
	if w.file != nil {
		return fmt.Errorf("wav output already open: %s", w.path)
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", w.path, err)
	}

	w.bitDepth = format.BitDepth
	if w.bitDepth == 32 {
		w.bitDepth = 24
	}

	w.file = f
	w.format = format
	w.encoder = wav.NewEncoder(f, format.SampleRate, w.bitDepth, format.Channels, wavFormatPCM)

	log.Printf("WAV output initialized: %s (%d-bit)", w.path, w.bitDepth)
	return nil
}

// Write appends the frames described by a prepared buffer list
func (w *WAV) Write(list *bufferlist.List) error {
	if w.encoder == nil {
		return fmt.Errorf("output not initialized")
	}

	samples, err := render.Gather(list, w.format)
	if err != nil {
		return fmt.Errorf("failed to read buffer list: %w", err)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		if w.bitDepth == 16 {
			data[i] = int(audio.SampleToInt16(s))
		} else {
			data[i] = int(s)
		}
	}

	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{NumChannels: w.format.Channels, SampleRate: w.format.SampleRate},
		SourceBitDepth: w.bitDepth,
	}
	if err := w.encoder.Write(buf); err != nil {
		return fmt.Errorf("wav write failed: %w", err)
	}
	w.frames += len(samples) / w.format.Channels
	return nil
}

// Frames returns the number of frames written
func (w *WAV) Frames() int {
	return w.frames
}

// Close finalizes the WAV header and closes the file
func (w *WAV) Close() error {
	if w.file == nil {
		return nil
	}

	var firstErr error
	if err := w.encoder.Close(); err != nil {
		firstErr = fmt.Errorf("failed to finalize wav: %w", err)
	}
	if err := w.file.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close %s: %w", w.path, err)
	}
	w.file = nil
	w.encoder = nil

	log.Printf("WAV output closed: %s, %d frames", w.path, w.frames)
	return firstErr
}
