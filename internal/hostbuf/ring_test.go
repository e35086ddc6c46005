// SPDX-License-Identifier: EPL-2.0

package hostbuf

import (
	"bytes"
	"testing"
	"time"
)

func TestRing_WriteRead(t *testing.T) {
	t.Parallel()

	r := NewRing(8)
	if n := r.Write([]byte{1, 2, 3}); n != 3 {
		t.Fatalf("Write() = %d, want 3", n)
	}
	if r.Len() != 3 || r.Free() != 5 || r.Cap() != 8 {
		t.Errorf("Len/Free/Cap = %d/%d/%d, want 3/5/8", r.Len(), r.Free(), r.Cap())
	}

	out := make([]byte, 5)
	if n := r.Read(out); n != 3 {
		t.Fatalf("Read() = %d, want 3", n)
	}
	if !bytes.Equal(out[:3], []byte{1, 2, 3}) {
		t.Errorf("Read() data = %v", out[:3])
	}
	if r.Len() != 0 {
		t.Errorf("Len() after drain = %d", r.Len())
	}
}

func TestRing_Full(t *testing.T) {
	t.Parallel()

	r := NewRing(4)
	if n := r.Write([]byte{1, 2, 3, 4, 5, 6}); n != 4 {
		t.Fatalf("Write() = %d, want 4", n)
	}
	if n := r.Write([]byte{7}); n != 0 {
		t.Errorf("Write() on full ring = %d, want 0", n)
	}
}

func TestRing_WrapAround(t *testing.T) {
	t.Parallel()

	r := NewRing(5)
	var next byte = 1
	var want byte = 1
	out := make([]byte, 3)

	// Writes of 3 and reads of 3 on a 5 byte ring cross the end on
	// every other round.
	for round := range 20 {
		chunk := []byte{next, next + 1, next + 2}
		if n := r.Write(chunk); n != 3 {
			t.Fatalf("round %d: Write() = %d, want 3", round, n)
		}
		next += 3

		if n := r.Read(out); n != 3 {
			t.Fatalf("round %d: Read() = %d, want 3", round, n)
		}
		for i, b := range out {
			if b != want {
				t.Fatalf("round %d: out[%d] = %d, want %d", round, i, b, want)
			}
			want++
		}
	}
}

func TestRing_PartialReadAcrossEnd(t *testing.T) {
	t.Parallel()

	r := NewRing(4)
	r.Write([]byte{1, 2, 3})
	r.Read(make([]byte, 2))
	r.Write([]byte{4, 5, 6})

	out := make([]byte, 8)
	n := r.Read(out)
	if n != 4 {
		t.Fatalf("Read() = %d, want 4", n)
	}
	if !bytes.Equal(out[:n], []byte{3, 4, 5, 6}) {
		t.Errorf("Read() = %v, want [3 4 5 6]", out[:n])
	}
}

func TestRing_Reset(t *testing.T) {
	t.Parallel()

	r := NewRing(4)
	r.Write([]byte{1, 2, 3})
	r.Reset()
	if r.Len() != 0 || r.Free() != 4 {
		t.Errorf("after Reset Len/Free = %d/%d", r.Len(), r.Free())
	}
	if n := r.Read(make([]byte, 4)); n != 0 {
		t.Errorf("Read() after Reset = %d", n)
	}
}

func TestRing_Concurrent(t *testing.T) {
	t.Parallel()

	// Each side sleeps on an event until the other made progress, the
	// way the render loop and the audio callback share a ring.
	const total = 1 << 14
	r := NewRing(97)
	readable, writable := NewEvent(), NewEvent()
	done := make(chan []byte)

	go func() {
		got := make([]byte, 0, total)
		buf := make([]byte, 13)
		for len(got) < total {
			n := r.Read(buf)
			if n == 0 {
				readable.Wait()
				continue
			}
			got = append(got, buf[:n]...)
			writable.Signal()
		}
		done <- got
	}()

	for i := 0; i < total; {
		end := min(i+31, total)
		chunk := make([]byte, end-i)
		for j := range chunk {
			chunk[j] = byte(i + j)
		}
		n := r.Write(chunk)
		if n == 0 {
			writable.Wait()
			continue
		}
		i += n
		readable.Signal()
	}

	got := <-done
	for i, b := range got {
		if b != byte(i) {
			t.Fatalf("got[%d] = %d, want %d", i, b, byte(i))
		}
	}
}

func TestEvent_Coalesces(t *testing.T) {
	t.Parallel()

	e := NewEvent()
	e.Signal()
	e.Signal()
	e.Signal()
	e.Wait()

	// The three signals were consumed by the single Wait above.
	woke := make(chan struct{})
	go func() {
		e.Wait()
		close(woke)
	}()
	select {
	case <-woke:
		t.Fatal("event still set after Wait")
	case <-time.After(10 * time.Millisecond):
	}

	e.Signal()
	select {
	case <-woke:
	case <-time.After(5 * time.Second):
		t.Fatal("waiter not woken")
	}
}

func TestEvent_WakesWaiter(t *testing.T) {
	t.Parallel()

	e := NewEvent()
	woke := make(chan struct{})
	go func() {
		e.Wait()
		close(woke)
	}()

	e.Signal()
	select {
	case <-woke:
	case <-time.After(5 * time.Second):
		t.Fatal("waiter not woken")
	}
}

func BenchmarkRing(b *testing.B) {
	r := NewRing(4096)
	in := make([]byte, 1024)
	out := make([]byte, 1024)
	for b.Loop() {
		r.Write(in)
		r.Read(out)
	}
}
