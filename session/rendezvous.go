// SPDX-License-Identifier: EPL-2.0

package session

type threadReply[T any] struct {
	val T
	err error
}

// threadResult is a one-shot rendezvous: the device thread resolves it
// exactly once and the caller waits on it exactly once. The capacity of
// one keeps the worker from ever blocking on a caller that went away.
type threadResult[T any] chan threadReply[T]

func newThreadResult[T any]() threadResult[T] {
	return make(threadResult[T], 1)
}

func (r threadResult[T]) resolve(val T, err error) {
	r <- threadReply[T]{val: val, err: err}
}

func (r threadResult[T]) fail(err error) {
	var zero T
	r.resolve(zero, err)
}

func (r threadResult[T]) wait() (T, error) {
	reply := <-r
	return reply.val, reply.err
}
