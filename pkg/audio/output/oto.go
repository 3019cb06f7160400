// ABOUTME: Oto-based audio output implementation
// ABOUTME: Plays prepared buffer lists with software volume control using oto library
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/bufferlist"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/render"
	"github.com/ebitengine/oto/v3"
)

// Oto output implementation using oto library
type Oto struct {
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	format     audio.Format
	volume     int
	muted      bool
	ready      bool
}

// NewOto creates a new Oto output
func NewOto() *Oto {
	return &Oto{
		volume: 100,
	}
}

// Open initializes the output device
func (o *Oto) Open(format audio.Format) error {
	if err := format.Validate(); err != nil {
		return err
	}

	// oto only supports 16-bit output
	if format.BitDepth != 16 {
		log.Printf("Warning: oto only supports 16-bit output, converting from %d-bit", format.BitDepth)
	}

	// If already initialized with same rate and channels, reuse the existing context
	if o.otoCtx != nil && o.format.SampleRate == format.SampleRate && o.format.Channels == format.Channels {
		o.format = format
		log.Printf("Audio output already initialized with same format, reusing context")
		return nil
	}

	// If format changed, we can't reinitialize oto (it only allows one context per process)
	// Log a warning but continue using the existing context
	if o.otoCtx != nil {
		log.Printf("Warning: format change detected (%dHz %dch -> %dHz %dch) but oto doesn't support reinitialization. Continuing with existing context.",
			o.format.SampleRate, o.format.Channels, format.SampleRate, format.Channels)
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.format = format

	// Create pipe for continuous streaming
	o.pipeReader, o.pipeWriter = io.Pipe()

	// Create persistent player that reads from the pipe
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()

	o.ready = true

	log.Printf("Audio output initialized: %s", format)

	return nil
}

// Write plays the frames described by a prepared buffer list (blocks until written)
func (o *Oto) Write(list *bufferlist.List) error {
	if !o.ready {
		return fmt.Errorf("output not initialized")
	}

	samples, err := render.Gather(list, o.format)
	if err != nil {
		return fmt.Errorf("failed to read buffer list: %w", err)
	}

	// Write to pipe (which feeds the persistent player)
	// This blocks until the write completes
	if _, err := o.pipeWriter.Write(encodeInt16(samples, o.volume, o.muted)); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}

	return nil
}

// encodeInt16 applies volume and packs samples as 16-bit little-endian bytes
func encodeInt16(samples []int32, volume int, muted bool) []byte {
	volumedSamples := applyVolume(samples, volume, muted)

	output := make([]byte, len(volumedSamples)*2)
	for i, s := range volumedSamples {
		binary.LittleEndian.PutUint16(output[i*2:], uint16(audio.SampleToInt16(s)))
	}
	return output
}

// Close releases output resources
func (o *Oto) Close() error {
	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil {
		o.otoCtx.Suspend()
		o.ready = false
	}
	return nil
}

// SetVolume sets the volume (0-100)
func (o *Oto) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	o.volume = volume
	log.Printf("Volume set to %d", volume)
}

// SetMuted sets mute state
func (o *Oto) SetMuted(muted bool) {
	o.muted = muted
	log.Printf("Muted: %v", muted)
}

// GetVolume returns current volume
func (o *Oto) GetVolume() int {
	return o.volume
}

// IsMuted returns mute state
func (o *Oto) IsMuted() bool {
	return o.muted
}

// applyVolume applies volume and mute to samples with clipping protection
func applyVolume(samples []int32, volume int, muted bool) []int32 {
	multiplier := getVolumeMultiplier(volume, muted)

	result := make([]int32, len(samples))
	for i, sample := range samples {
		scaled := int64(float64(sample) * multiplier)

		// Clamp to 24-bit range to prevent overflow
		if scaled > audio.Max24Bit {
			scaled = audio.Max24Bit
		} else if scaled < audio.Min24Bit {
			scaled = audio.Min24Bit
		}

		result[i] = int32(scaled)
	}

	return result
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
