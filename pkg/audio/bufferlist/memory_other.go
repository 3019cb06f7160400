//go:build !(darwin || dragonfly || freebsd || linux || netbsd || openbsd)

// ABOUTME: Heap fallback for buffer list memory
// ABOUTME: Used where anonymous mappings are not available
package bufferlist

func allocate(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func release(b []byte) error {
	return nil
}
