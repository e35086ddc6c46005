// SPDX-License-Identifier: EPL-2.0

// Command boop plays, or renders to a WAV file, one or more audio files
// mixed together.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/decred/slog"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/boop"
	"github.com/ik5/boop/audio"
	"github.com/ik5/boop/formats/wav"
	"github.com/ik5/boop/session"
)

// decodeAll decodes every file in parallel into memory and adapts it to
// the mix format.
func decodeAll(reg *audio.Registry, files []string, channels, rate int, log slog.Logger) ([]audio.Source, error) {
	srcs := make([]audio.Source, len(files))
	var g errgroup.Group
	for i, path := range files {
		g.Go(func() error {
			src, closer, err := boop.Open(reg, path)
			if err != nil {
				return err
			}
			defer closer.Close()

			samples := audio.ReadAll(src, 8192)
			if d, ok := src.(interface{ Err() error }); ok && d.Err() != nil {
				log.Warnf("%s: decoding stopped early: %v", path, d.Err())
			}
			p, err := audio.NewPlayer(src.Channels(), src.SampleRate(), samples)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			log.Debugf("Decoded %s: %d Hz %d ch, %d samples", path,
				src.SampleRate(), src.Channels(), len(samples))

			srcs[i], err = boop.Adapt(p, channels, rate)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return srcs, nil
}

func listDevices(w io.Writer, cfg *config, opts []session.Option) error {
	apis := session.Available()
	names := make([]string, len(apis))
	for i, api := range apis {
		names[i] = api.String()
	}
	fmt.Fprintf(w, "Backends in this build: %s\n", strings.Join(names, ", "))

	s, err := session.New(cfg.api, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	devs, err := s.Devices()
	if err != nil {
		return err
	}
	for _, d := range devs {
		def := " "
		if d.IsDefault {
			def = "*"
		}
		fmt.Fprintf(w, "%s %-6s %-40q %s\n", def, d.Type, d.Name, d.ID)
	}
	return nil
}

func writeWAV(path string, src audio.Source) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	frames, err := wav.Encode(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return frames, err
}

func realMain() error {
	cfg, helped, err := parseConfig(os.Args[1:])
	if helped {
		return nil
	}
	if err != nil {
		return err
	}

	bknd, log, sessLog, err := initLog(cfg)
	if err != nil {
		return err
	}
	defer bknd.Close()

	opts := []session.Option{
		session.WithFormat(cfg.format()),
		session.WithBufferDuration(cfg.Buffer),
		session.WithLogger(sessLog),
	}
	if cfg.List {
		return listDevices(os.Stdout, cfg, opts)
	}

	srcs, err := decodeAll(boop.NewRegistry(), cfg.Args.Files, cfg.Channels, cfg.Rate, log)
	if err != nil {
		return err
	}
	mix, err := audio.NewMixer(cfg.Channels, cfg.Rate, srcs...)
	if err != nil {
		return err
	}
	out := withGain(mix, cfg.Volume)

	start := time.Now()
	if cfg.Out != "" {
		frames, err := writeWAV(cfg.Out, out)
		if err != nil {
			return fmt.Errorf("write %s: %w", cfg.Out, err)
		}
		log.Infof("Wrote %d frames to %s in %s", frames, cfg.Out, time.Since(start))
		return nil
	}

	s, err := session.New(cfg.api, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	dev, err := s.DefaultDevice(session.Output)
	if err != nil {
		return err
	}
	log.Infof("Playing %d file(s) on %s", len(srcs), dev)
	if err := boop.PlayOn(s, dev, out); err != nil {
		return err
	}
	log.Infof("Done in %s", time.Since(start).Round(time.Millisecond))
	return nil
}

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
