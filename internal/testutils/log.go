// SPDX-License-Identifier: EPL-2.0

// Package testutils holds helpers shared by tests across packages.
package testutils

import (
	"os"
	"sync"
	"testing"

	"github.com/decred/slog"
)

// TestLogBackend is an slog backend that forwards each line to t.Log. Lines
// written after the test finished are dropped.
type TestLogBackend struct {
	mtx  sync.Mutex
	tb   testing.TB
	done bool
}

func (tlb *TestLogBackend) Write(b []byte) (int, error) {
	tlb.mtx.Lock()
	if !tlb.done && len(b) > 0 {
		tlb.tb.Log(string(b[:len(b)-1]))
	}
	tlb.mtx.Unlock()
	return len(b), nil
}

// NewTestLogBackend returns a log backend bound to the life of t.
func NewTestLogBackend(t testing.TB) *TestLogBackend {
	tlb := &TestLogBackend{tb: t}
	t.Cleanup(func() {
		tlb.mtx.Lock()
		tlb.done = true
		tlb.mtx.Unlock()
	})
	return tlb
}

// TestLoggerSys returns an slog.Logger for subsystem sys that logs through
// t.Log. Set BOOP_TEST_LOG to any value to see trace output; otherwise
// only warnings and above are shown.
func TestLoggerSys(t testing.TB, sys string) slog.Logger {
	bknd := slog.NewBackend(NewTestLogBackend(t))
	logg := bknd.Logger(sys)
	if os.Getenv("BOOP_TEST_LOG") != "" {
		logg.SetLevel(slog.LevelTrace)
	} else {
		logg.SetLevel(slog.LevelWarn)
	}
	return logg
}
