package midi

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Parse decodes raw SMF bytes. Reading the file is left to the caller.
func Parse(data []byte) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = errors.Errorf("gomidi panicked while parsing: %v", r)
		}
	}()

	if len(data) == 0 {
		return nil, errors.New("empty midi data")
	}
	// gomidi panics on SMPTE timing when computing absolute times
	if division, ok := headerDivision(data); ok && division&0x8000 != 0 {
		return nil, errors.Wrapf(ErrNotMetrical, "smpte division %#04x", division)
	}

	res, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing midi file")
	}
	return res, nil
}

// headerDivision reads the division word of the MThd chunk.
func headerDivision(data []byte) (uint16, bool) {
	if len(data) < 14 || !bytes.HasPrefix(data, []byte("MThd")) {
		return 0, false
	}
	return binary.BigEndian.Uint16(data[12:14]), true
}

// Track returns the events of track idx or ErrTrackOutOfRange.
func Track(s *smf.SMF, idx int) (smf.Track, error) {
	if idx < 0 || idx >= len(s.Tracks) {
		return nil, errors.Wrap(ErrTrackOutOfRange, fmt.Sprintf("track %d of %d", idx, len(s.Tracks)))
	}
	return s.Tracks[idx], nil
}
