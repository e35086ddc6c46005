// SPDX-License-Identifier: EPL-2.0

package boop

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/boop/audio"
	"github.com/ik5/boop/formats/aiff"
	"github.com/ik5/boop/formats/mp3"
	"github.com/ik5/boop/formats/vorbis"
	"github.com/ik5/boop/formats/wav"
)

var ErrUnsupportedFormat = errors.New("no decoder for file format")

// NewRegistry returns a registry with every bundled decoder, keyed by file
// extension.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	return reg
}

// Open decodes the file at path with the decoder registered for its
// extension. The source streams from the file, so the returned closer must
// only be called once the source is no longer read.
func Open(reg *audio.Registry, path string) (audio.Source, io.Closer, error) {
	ext := filepath.Ext(path)
	dec, ok := reg.Get(ext)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w %q (known: %s)", path, ErrUnsupportedFormat,
			ext, strings.Join(reg.Formats(), ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return src, f, nil
}
