// SPDX-License-Identifier: EPL-2.0

// Package hostbuf holds the shared buffer between the render loop and a
// callback driven audio backend: a byte ring the render loop writes and
// the audio thread reads, plus an auto-reset event the audio thread
// signals after every read.
package hostbuf

import "sync"

// Ring is a fixed size byte FIFO safe for one writer and one reader on
// different goroutines.
type Ring struct {
	mu    sync.Mutex
	buf   []byte
	read  int
	count int
}

// NewRing returns a ring holding at most size bytes.
func NewRing(size int) *Ring {
	return &Ring{buf: make([]byte, size)}
}

// Cap returns the capacity in bytes.
func (r *Ring) Cap() int { return len(r.buf) }

// Len returns the number of queued bytes.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Free returns the number of bytes that can be written without loss.
func (r *Ring) Free() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buf) - r.count
}

// Write appends as much of p as fits and returns the number of bytes
// taken.
func (r *Ring) Write(p []byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := min(len(p), len(r.buf)-r.count)
	write := (r.read + r.count) % max(len(r.buf), 1)
	first := copy(r.buf[write:], p[:n])
	copy(r.buf, p[first:n])
	r.count += n
	return n
}

// Read moves up to len(p) queued bytes into p and returns the count. The
// rest of p is left untouched.
func (r *Ring) Read(p []byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := min(len(p), r.count)
	end := min(r.read+n, len(r.buf))
	first := copy(p, r.buf[r.read:end])
	copy(p[first:n], r.buf)
	r.read = (r.read + n) % max(len(r.buf), 1)
	r.count -= n
	return n
}

// Reset discards everything queued.
func (r *Ring) Reset() {
	r.mu.Lock()
	r.read = 0
	r.count = 0
	r.mu.Unlock()
}
