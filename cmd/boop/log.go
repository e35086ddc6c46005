// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"

	"github.com/ik5/boop/session"
)

const maxLogFiles = 8

// logBackend writes every line to stdout and, when configured, to a
// rotated log file.
type logBackend struct {
	stdOut     io.Writer
	logRotator *rotator.Rotator
}

func (bknd *logBackend) Write(b []byte) (int, error) {
	if bknd.stdOut != nil {
		bknd.stdOut.Write(b)
	}
	if bknd.logRotator != nil {
		bknd.logRotator.Write(b)
	}
	return len(b), nil
}

func (bknd *logBackend) Close() error {
	if bknd.logRotator != nil {
		return bknd.logRotator.Close()
	}
	return nil
}

// initLog builds the main and session loggers.
func initLog(cfg *config) (*logBackend, slog.Logger, slog.Logger, error) {
	bknd := &logBackend{stdOut: os.Stdout}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o700); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		r, err := rotator.New(cfg.LogFile, 1024, false, maxLogFiles)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create file rotator: %w", err)
		}
		bknd.logRotator = r
	}

	sb := slog.NewBackend(bknd)
	log := sb.Logger("BOOP")
	log.SetLevel(cfg.logLevel)
	sessLog := sb.Logger("SESS")
	sessLog.SetLevel(cfg.logLevel)
	session.SetLog(sessLog)
	return bknd, log, sessLog, nil
}
