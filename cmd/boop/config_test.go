// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"testing"
	"time"

	"github.com/decred/slog"

	"github.com/ik5/boop/session"
)

func TestParseConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, helped, err := parseConfig([]string{"a.wav", "b.ogg"})
	if err != nil || helped {
		t.Fatalf("parseConfig() = %v, %v", helped, err)
	}

	if cfg.api != session.Malgo {
		t.Errorf("api = %v, want malgo", cfg.api)
	}
	if cfg.Rate != 48000 || cfg.Channels != 2 {
		t.Errorf("format = %d Hz %d ch", cfg.Rate, cfg.Channels)
	}
	if cfg.Buffer != 100*time.Millisecond {
		t.Errorf("buffer = %v", cfg.Buffer)
	}
	if cfg.Volume != 1 {
		t.Errorf("volume = %v", cfg.Volume)
	}
	if cfg.logLevel != slog.LevelInfo {
		t.Errorf("log level = %v", cfg.logLevel)
	}
	if len(cfg.Args.Files) != 2 {
		t.Errorf("files = %v", cfg.Args.Files)
	}
	want := session.Format{Channels: 2, SampleRate: 48000, SampleFormat: session.FormatF32}
	if cfg.format() != want {
		t.Errorf("format() = %v, want %v", cfg.format(), want)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	t.Parallel()

	args := []string{
		"--api", "noop", "-r", "16000", "-c", "1", "--encoding", "i16",
		"-b", "20ms", "-v", "0.5", "-o", "out.wav", "-d", "debug", "x.mp3",
	}
	cfg, _, err := parseConfig(args)
	if err != nil {
		t.Fatalf("parseConfig() error: %v", err)
	}

	if cfg.api != session.NoOp || cfg.Out != "out.wav" || cfg.Volume != 0.5 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Buffer != 20*time.Millisecond {
		t.Errorf("buffer = %v", cfg.Buffer)
	}
	if cfg.logLevel != slog.LevelDebug {
		t.Errorf("log level = %v", cfg.logLevel)
	}
	want := session.Format{Channels: 1, SampleRate: 16000, SampleFormat: session.FormatI16}
	if cfg.format() != want {
		t.Errorf("format() = %v, want %v", cfg.format(), want)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"no files", nil},
		{"unknown api", []string{"--api", "jack", "a.wav"}},
		{"zero rate", []string{"-r", "0", "a.wav"}},
		{"negative channels", []string{"-c", "-2", "a.wav"}},
		{"negative volume", []string{"-v", "-1", "a.wav"}},
		{"bad level", []string{"-d", "loud", "a.wav"}},
		{"bad encoding", []string{"--encoding", "s24", "a.wav"}},
		{"unknown flag", []string{"--nope", "a.wav"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, _, err := parseConfig(tt.args); err == nil {
				t.Errorf("parseConfig(%v) succeeded", tt.args)
			}
		})
	}

	if _, _, err := parseConfig(nil); !errors.Is(err, errNoInput) {
		t.Errorf("parseConfig(nil) = %v, want errNoInput", err)
	}
}

func TestParseConfig_ListNeedsNoFiles(t *testing.T) {
	t.Parallel()

	cfg, _, err := parseConfig([]string{"--list", "--api", "noop"})
	if err != nil {
		t.Fatalf("parseConfig() error: %v", err)
	}
	if !cfg.List {
		t.Error("List not set")
	}
}
