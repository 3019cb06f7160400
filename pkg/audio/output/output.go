// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for backends that consume prepared buffer lists
package output

import (
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio"
	"github.com/Resonate-Protocol/resonate-audiokit/pkg/audio/bufferlist"
)

// Output represents an audio output device
type Output interface {
	// Open initializes the output for buffer lists in format
	Open(format audio.Format) error

	// Write consumes a prepared buffer list (blocks until written)
	Write(list *bufferlist.List) error

	// Close releases output resources
	Close() error
}
