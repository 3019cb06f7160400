// ABOUTME: Buffer list error values
// ABOUTME: CoreAudio style status errors and lifecycle sentinels
package bufferlist

import (
	"errors"
	"fmt"
)

// StatusError carries a host OSStatus code
type StatusError struct {
	Status  int32
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

var (
	// ErrTooManyFramesToProcess is returned by Prepare when the requested
	// frames do not fit the allocated memory. Matches
	// kAudioUnitErr_TooManyFramesToProcess.
	ErrTooManyFramesToProcess = &StatusError{Status: -10874, Message: "would require more frames than allocated"}

	// ErrInvalidFormat is returned by New for formats without channels
	ErrInvalidFormat = errors.New("invalid stream format")

	// ErrFrameCountTooLarge is returned when a frame count's byte size
	// does not fit a buffer descriptor or the address space
	ErrFrameCountTooLarge = errors.New("frame count too large for buffer list")

	// ErrReleased is returned by every call made after Close
	ErrReleased = errors.New("buffer list released")
)
