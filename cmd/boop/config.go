// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/decred/slog"
	flags "github.com/jessevdk/go-flags"

	"github.com/ik5/boop/session"
)

type config struct {
	Api        string        `short:"a" long:"api" description:"Audio backend" choice:"malgo" choice:"oto" choice:"noop" default:"malgo"`
	Rate       int           `short:"r" long:"rate" description:"Mix sample rate in Hz" default:"48000"`
	Channels   int           `short:"c" long:"channels" description:"Mix channel count" default:"2"`
	Encoding   string        `long:"encoding" description:"Preferred device sample encoding" choice:"f32" choice:"i16" default:"f32"`
	Buffer     time.Duration `short:"b" long:"buffer" description:"Device buffer length" default:"100ms"`
	Volume     float64       `short:"v" long:"volume" description:"Linear gain applied to the mix" default:"1"`
	Out        string        `short:"o" long:"out" description:"Write a 16-bit WAV file instead of playing"`
	List       bool          `short:"l" long:"list" description:"List the devices of the backend and exit"`
	LogFile    string        `long:"logfile" description:"Also log to this file, rotated at 1MB"`
	DebugLevel string        `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}" default:"info"`

	Args struct {
		Files []string `positional-arg-name:"FILE"`
	} `positional-args:"yes"`

	api      session.Api
	logLevel slog.Level
}

var errNoInput = errors.New("no input files")

// parseConfig parses args, not including the program name. The returned
// bool is true when help was printed and the program should exit cleanly.
func parseConfig(args []string) (*config, bool, error) {
	cfg := new(config)
	parser := flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "[OPTIONS] FILE..."
	if _, err := parser.ParseArgs(args); err != nil {
		if flags.WroteHelp(err) {
			fmt.Fprintln(os.Stdout, err)
			return nil, true, nil
		}
		return nil, false, err
	}

	api, err := session.ParseApi(cfg.Api)
	if err != nil {
		return nil, false, err
	}
	cfg.api = api

	level, ok := slog.LevelFromString(cfg.DebugLevel)
	if !ok {
		return nil, false, fmt.Errorf("unknown log level %q", cfg.DebugLevel)
	}
	cfg.logLevel = level

	switch {
	case cfg.Rate <= 0:
		return nil, false, fmt.Errorf("invalid rate %d", cfg.Rate)
	case cfg.Channels <= 0:
		return nil, false, fmt.Errorf("invalid channel count %d", cfg.Channels)
	case cfg.Volume < 0:
		return nil, false, fmt.Errorf("invalid volume %v", cfg.Volume)
	case !cfg.List && len(cfg.Args.Files) == 0:
		return nil, false, errNoInput
	}
	return cfg, false, nil
}

// format is the preferred device format derived from the flags.
func (cfg *config) format() session.Format {
	enc := session.FormatF32
	if cfg.Encoding == "i16" {
		enc = session.FormatI16
	}
	return session.Format{Channels: cfg.Channels, SampleRate: cfg.Rate, SampleFormat: enc}
}
