// SPDX-License-Identifier: EPL-2.0

package session

import (
	"runtime"
	"slices"
	"sync"

	"github.com/decred/slog"
)

// message is anything the device thread accepts. abort answers it
// without touching backend state.
type message interface {
	abort(err error)
}

type refreshMsg struct {
	res threadResult[struct{}]
}

type getDefaultMsg struct {
	typ DeviceType
	res threadResult[Device]
}

type listMsg struct {
	res threadResult[[]Device]
}

type activation struct {
	client renderClient
	format Format
}

type activateMsg struct {
	dev Device
	res threadResult[activation]
}

type terminateMsg struct{}

func (m refreshMsg) abort(err error)    { m.res.fail(err) }
func (m getDefaultMsg) abort(err error) { m.res.fail(err) }
func (m listMsg) abort(err error)       { m.res.fail(err) }
func (m activateMsg) abort(err error)   { m.res.fail(err) }
func (terminateMsg) abort(error)        {}

// devThread owns the backend enumerator. Only its goroutine calls into
// the enumerator; everybody else talks to it through the queue.
type devThread struct {
	mtx         sync.Mutex
	cond        *sync.Cond
	queue       []message
	terminating bool

	done chan struct{}
	log  slog.Logger

	// Only touched by the worker.
	enum  enumerator
	state deviceState
}

// startDevThread spawns the worker and waits until it created the
// enumerator and ran the first query.
func startDevThread(newEnum enumeratorFactory, cfg config) (*devThread, error) {
	t := &devThread{
		done: make(chan struct{}),
		log:  cfg.log,
	}
	t.cond = sync.NewCond(&t.mtx)

	ready := newThreadResult[struct{}]()
	go t.run(newEnum, cfg, ready)
	if _, err := ready.wait(); err != nil {
		<-t.done
		return nil, err
	}
	return t, nil
}

func (t *devThread) run(newEnum enumeratorFactory, cfg config, ready threadResult[struct{}]) {
	defer close(t.done)

	// Never unlocked: the runtime retires the thread together with the
	// goroutine. The enumerator is never torn down either, some backends
	// crash when their global state goes away while devices are still
	// being released elsewhere.
	runtime.LockOSThread()

	enum, err := newEnum(cfg)
	if err != nil {
		ready.fail(classify(err))
		return
	}
	state, err := enum.query()
	if err != nil {
		ready.fail(classify(err))
		return
	}
	t.enum, t.state = enum, state
	t.log.Debugf("Device thread up with %d devices", len(state.all))
	ready.resolve(struct{}{}, nil)

	t.mtx.Lock()
	defer t.mtx.Unlock()
	for {
		for len(t.queue) == 0 {
			t.cond.Wait()
		}
		batch := t.queue
		t.queue = nil
		if !t.process(batch) {
			t.log.Debugf("Device thread terminated")
			return
		}
	}
}

// process handles one batch in FIFO order. It returns false once a
// terminate message was seen.
func (t *devThread) process(batch []message) bool {
	for i, msg := range batch {
		switch m := msg.(type) {
		case refreshMsg:
			state, err := t.enum.query()
			if err != nil {
				t.log.Warnf("Device refresh failed, keeping cached state: %v", err)
				m.res.fail(classify(err))
				continue
			}
			t.state = state
			m.res.resolve(struct{}{}, nil)

		case getDefaultMsg:
			m.res.resolve(t.state.defaultFor(m.typ))

		case listMsg:
			m.res.resolve(slices.Clone(t.state.all), nil)

		case activateMsg:
			client, f, err := t.enum.activate(m.dev)
			if err != nil {
				m.res.fail(classify(err))
				continue
			}
			m.res.resolve(activation{client: client, format: f}, nil)

		case terminateMsg:
			for _, rest := range batch[i+1:] {
				rest.abort(ErrSessionClosed)
			}
			return false

		default:
			panic("session: unhandled device thread message")
		}
	}
	return true
}

// send enqueues msgs as one contiguous run and wakes the worker.
func (t *devThread) send(msgs ...message) error {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if t.terminating {
		return ErrSessionClosed
	}
	t.queue = append(t.queue, msgs...)
	t.cond.Signal()
	return nil
}

// terminate asks the worker to exit and waits for it, without a timeout.
func (t *devThread) terminate() {
	t.mtx.Lock()
	if !t.terminating {
		t.terminating = true
		t.queue = append(t.queue, terminateMsg{})
		t.cond.Signal()
	}
	t.mtx.Unlock()
	<-t.done
}
