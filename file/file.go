package file

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/jsphweid/upbeat/util"
	"github.com/pkg/errors"
)

var ErrUnsupportedAudio = errors.New("unsupported audio format")

// ReadMidi reads a chart's midi bytes.
func ReadMidi(path string) ([]byte, error) {
	if !util.IsMidiPath(path) {
		return nil, errors.Errorf("not a midi file: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading midi file")
	}
	return data, nil
}

// OpenAudio decodes wav, ogg or mp3 by extension. The caller closes the
// returned stream.
func OpenAudio(path string) (beep.StreamSeekCloser, beep.Format, error) {
	decode, err := decoderFor(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, errors.Wrap(err, "error opening audio file")
	}

	s, format, err := decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, errors.Wrapf(err, "error decoding %s", path)
	}
	return s, format, nil
}

type decodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

func decoderFor(path string) (decodeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }, nil
	case ".ogg":
		return func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) }, nil
	case ".mp3":
		return func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }, nil
	}
	return nil, errors.Wrap(ErrUnsupportedAudio, path)
}
