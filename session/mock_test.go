// SPDX-License-Identifier: EPL-2.0

package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ik5/boop/internal/audiotest"
	"github.com/ik5/boop/internal/testutils"
)

var errQueryFailed = errors.New("query failed")

// fakeEnumerator names its default output after the number of queries run
// so far, which makes the age of a returned Device observable.
type fakeEnumerator struct {
	mtx       sync.Mutex
	queries   int
	failNext  error
	noOutput  bool
	activated []string
	client    func() renderClient
	actErr    error
}

var fakeFormat = Format{Channels: 2, SampleRate: 48000, SampleFormat: FormatF32}

func (e *fakeEnumerator) query() (deviceState, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if err := e.failNext; err != nil {
		e.failNext = nil
		return deviceState{}, err
	}
	e.queries++

	in, _ := newDevice(NoOp, "in", "fake input", Input, true, fakeFormat, nil)
	state := deviceState{defaultInput: &in, all: []Device{in}}
	if !e.noOutput {
		name := fmt.Sprintf("dev-%d", e.queries)
		out, _ := newDevice(NoOp, name, name, Output, true, fakeFormat, nil)
		state.defaultOutput = &out
		state.all = append(state.all, out)
	}
	return state, nil
}

func (e *fakeEnumerator) activate(dev Device) (renderClient, Format, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.actErr != nil {
		return nil, Format{}, e.actErr
	}
	e.activated = append(e.activated, dev.Name)
	if e.client != nil {
		return e.client(), dev.Format, nil
	}
	return newSimClient(dev.Format), dev.Format, nil
}

func (e *fakeEnumerator) setFailNext(err error) {
	e.mtx.Lock()
	e.failNext = err
	e.mtx.Unlock()
}

func (e *fakeEnumerator) queryCount() int {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.queries
}

func (e *fakeEnumerator) factory() enumeratorFactory {
	return func(config) (enumerator, error) { return e, nil }
}

func newSimClient(f Format) *audiotest.RenderClient {
	return &audiotest.RenderClient{
		Frames:     64,
		FrameBytes: f.FrameBytes(),
		Period:     16,
	}
}

func newTestSession(t *testing.T, e *fakeEnumerator) *Session {
	t.Helper()
	s, err := newSession(NoOp, e.factory(), WithLogger(testutils.TestLoggerSys(t, "SESS")))
	if err != nil {
		t.Fatalf("newSession() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
