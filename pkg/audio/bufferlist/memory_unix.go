//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

// ABOUTME: Off-heap memory for buffer lists on unix systems
// ABOUTME: Maps anonymous private pages so pointers can cross into C
package bufferlist

import "golang.org/x/sys/unix"

func allocate(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func release(b []byte) error {
	return unix.Munmap(b)
}
