// ABOUTME: Runnable examples for the buffer list manager
// ABOUTME: Shown in package documentation
package bufferlist_test

import (
	"errors"
	"fmt"

	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/bufferlist"
)

func Example() {
	format := audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 16}

	l, err := bufferlist.New(format, bufferlist.DefaultFrames)
	if err != nil {
		panic(err)
	}
	defer l.Close()

	_ = l.Allocate(1024)
	_ = l.Allocate(256) // fits, nothing changes
	fmt.Println(l.BufferCount(), l.BufferSize(), l.Frames())

	err = l.PrepareFrames(2048, false)
	fmt.Println(errors.Is(err, bufferlist.ErrTooManyFramesToProcess))
	// Output:
	// 2 2064 1024
	// true
}
