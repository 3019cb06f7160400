// ABOUTME: Entry point for the buffer list player
// ABOUTME: Decodes a file block by block into a buffer list and plays or records it
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Resonate-Protocol/resonate-audiokit/internal/ui"
	"github.com/Resonate-Protocol/resonate-audiokit/internal/version"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/decode"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/output"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/render"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/resample"
)

var (
	file        = flag.String("file", "", "Audio file to play (.mp3, .flac, .wav, .pcm/.raw, .opuspkt)")
	frames      = flag.Uint("frames", 1024, "Frames per buffer list block")
	interleaved = flag.Bool("interleaved", false, "Use one interleaved buffer instead of one per channel")
	bitDepth    = flag.Int("bit-depth", 0, "Buffer sample format: 16, 24 or 32 (float); default follows the source")
	volume      = flag.Int("volume", 100, "Playback volume (0-100)")
	outFile     = flag.String("out", "", "Write to a file (.wav, .pcm/.raw, .opuspkt) instead of playing")
	rate        = flag.Int("rate", 0, "Resample to this rate; default follows the source")
	rawRate     = flag.Int("raw-rate", 48000, "Sample rate for headerless PCM and Opus packets")
	rawChannels = flag.Int("raw-channels", 2, "Channel count for headerless PCM and Opus packets")
	rawBits     = flag.Int("raw-bits", 16, "Bit depth for headerless PCM (16, 24 or 32 float)")
	tone        = flag.Float64("tone", 0, "Play a sine tone of this frequency instead of a file")
	toneSeconds = flag.Float64("tone-seconds", 3, "Tone length in seconds")
	useTUI      = flag.Bool("tui", false, "Show playback status in a terminal UI")
	logFile     = flag.String("log-file", "", "Also write logs to this file")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", version.Product, version.Version)
		return
	}

	var logOut io.Writer = os.Stdout
	if *useTUI {
		// The alternate screen owns stdout
		logOut = io.Discard
	}
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("error opening log file: %v", err)
		}
		defer func() { _ = f.Close() }()
		logOut = io.MultiWriter(logOut, f)
	}
	log.SetOutput(logOut)

	if *file == "" && *tone <= 0 {
		log.Fatalf("No input given (use -file or -tone)")
	}
	log.Printf("%s %s starting", version.Product, version.Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if *useTUI {
		err = runWithTUI(ctx)
	} else {
		err = run(ctx, nil, func(ui.StatusMsg) {})
	}
	if err != nil {
		log.Fatalf("Playback failed: %v", err)
	}
}

// runWithTUI plays in the background while the TUI owns the terminal
func runWithTUI(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	volCtrl := ui.NewVolumeControl()
	name := *file
	if *tone > 0 {
		name = fmt.Sprintf("%.0f Hz tone", *tone)
	}
	program := ui.Run(name, *volume, volCtrl)

	done := make(chan error, 1)
	go func() {
		err := run(ctx, volCtrl, func(msg ui.StatusMsg) { program.Send(msg) })
		program.Send(ui.DoneMsg{Err: err})
		done <- err
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-done
		return fmt.Errorf("tui failed: %w", err)
	}

	cancel()
	return <-done
}

func run(ctx context.Context, volCtrl *ui.VolumeControl, report func(ui.StatusMsg)) error {
	src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()
	log.Printf("Source: %s", src.Format())

	if *rate > 0 && *rate != src.Format().SampleRate {
		rs, err := resample.New(src, *rate)
		if err != nil {
			return err
		}
		src = rs
	}

	format := src.Format()
	format.Interleaved = *interleaved
	if *bitDepth != 0 {
		format.BitDepth = *bitDepth
	}

	r, err := render.New(render.Config{Format: format, Frames: uint32(*frames)}, src)
	if err != nil {
		return err
	}
	defer r.Close()

	list := r.List()
	report(ui.StatusMsg{
		State:          "playing",
		Codec:          format.Codec,
		SampleRate:     format.SampleRate,
		Channels:       format.Channels,
		BitDepth:       format.BitDepth,
		Interleaved:    format.Interleaved,
		BufferCount:    list.BufferCount(),
		BufferSize:     list.BufferSize(),
		AllocatedBytes: list.AllocatedBytes(),
		BlockFrames:    list.Frames(),
	})

	out, player, err := newOutput(*outFile)
	if err != nil {
		return err
	}
	if err := out.Open(format); err != nil {
		return err
	}
	defer out.Close()

	var blocks int64
	for {
		select {
		case <-ctx.Done():
			log.Printf("Interrupted after %d frames", r.FramesRendered())
			return nil
		default:
		}

		if volCtrl != nil && player != nil {
			select {
			case change := <-volCtrl.Changes:
				player.SetVolume(change.Volume)
				player.SetMuted(change.Muted)
			default:
			}
		}

		if _, err := r.Next(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if err := out.Write(r.List()); err != nil {
			return err
		}

		blocks++
		report(ui.StatusMsg{Blocks: blocks, FramesRendered: r.FramesRendered()})
	}

	log.Printf("Finished: %d frames", r.FramesRendered())
	return nil
}

// openSource opens -file, or generates -tone at the raw rate and channels
func openSource() (decode.Source, error) {
	if *tone > 0 {
		frames := uint64(*toneSeconds * float64(*rawRate))
		src, err := decode.NewTone(*tone, *rawRate, *rawChannels, frames)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	return decode.Open(*file, audio.Format{
		SampleRate: *rawRate,
		Channels:   *rawChannels,
		BitDepth:   *rawBits,
	})
}

// newOutput picks a file output by extension, or the speaker when path is
// empty. The speaker is also returned so volume changes can reach it.
func newOutput(path string) (output.Output, *output.Oto, error) {
	if path == "" {
		player := output.NewOto()
		player.SetVolume(*volume)
		return player, player, nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav", ".wave":
		return output.NewWAV(path), nil, nil
	case ".pcm", ".raw":
		return output.NewEncoded(path, "pcm"), nil, nil
	case ".opuspkt":
		return output.NewEncoded(path, "opus"), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported output type: %q", ext)
	}
}
