// SPDX-License-Identifier: EPL-2.0

package hostbuf

// Event is an auto-reset wake primitive. Any number of Signal calls made
// while nobody waits collapse into a single pending wake, and the next
// Wait consumes it.
type Event struct {
	c chan struct{}
}

func NewEvent() *Event {
	return &Event{c: make(chan struct{}, 1)}
}

// Signal never blocks, so it is safe to call from an audio callback.
func (e *Event) Signal() {
	select {
	case e.c <- struct{}{}:
	default:
	}
}

// Wait blocks until the event is signalled and resets it.
func (e *Event) Wait() {
	<-e.c
}
