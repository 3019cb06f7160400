// ABOUTME: Buffer list package for host audio APIs
// ABOUTME: Allocates sample memory and describes it in AudioBufferList layout
// Package bufferlist manages the sample memory behind a host AudioBufferList.
//
// A List holds one buffer for interleaved formats and one buffer per channel
// otherwise. Allocate reserves zeroed memory (reusing it when a smaller
// request fits), Prepare points the descriptors at it, and ABL hands the
// descriptor array to the host:
//
//	l, err := bufferlist.New(format, bufferlist.DefaultFrames)
//	if err != nil {
//	    return err
//	}
//	defer l.Close()
//
//	if err := l.Allocate(1024); err != nil {
//	    return err
//	}
//	if err := l.PrepareFrames(frames, false); err != nil {
//	    return err // ErrTooManyFramesToProcess if frames > 1024
//	}
//	render(l.ABL())
//
// Without Allocate, Prepare produces null buffers that only carry sizes, for
// hosts that supply their own memory.
//
// On unix systems both the sample block and the descriptor array live in
// anonymous mappings outside the Go heap.
package bufferlist
