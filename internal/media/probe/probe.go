package probe

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"
)

// ErrNoDuration means the container's duration could not be decoded.
// Callers treat an undecodable duration as unknown, not invalid.
var ErrNoDuration = errors.New("duration not found")

// VideoDuration decodes the playback duration of an MP4/QuickTime
// payload from its moov/mvhd box. Other containers return
// ErrNoDuration.
func VideoDuration(data []byte) (time.Duration, error) {
	moov, err := findBox(data, "moov")
	if err != nil {
		return 0, err
	}
	mvhd, err := findBox(moov, "mvhd")
	if err != nil {
		return 0, err
	}
	return parseMvhd(mvhd)
}

// findBox walks consecutive ISO-BMFF boxes and returns the payload of
// the first box with the given type.
func findBox(data []byte, boxType string) ([]byte, error) {
	offset := 0
	for offset+8 <= len(data) {
		size := int64(binary.BigEndian.Uint32(data[offset : offset+4]))
		typ := data[offset+4 : offset+8]
		headerLen := int64(8)

		if size == 1 {
			if offset+16 > len(data) {
				return nil, ErrNoDuration
			}
			size = int64(binary.BigEndian.Uint64(data[offset+8 : offset+16]))
			headerLen = 16
		} else if size == 0 {
			// box extends to end of data
			size = int64(len(data) - offset)
		}

		if size < headerLen || int64(offset)+size > int64(len(data)) {
			return nil, ErrNoDuration
		}

		if bytes.Equal(typ, []byte(boxType)) {
			return data[int64(offset)+headerLen : int64(offset)+size], nil
		}
		offset += int(size)
	}
	return nil, ErrNoDuration
}

func parseMvhd(payload []byte) (time.Duration, error) {
	if len(payload) < 1 {
		return 0, ErrNoDuration
	}

	version := payload[0]

	var timescale uint32
	var duration uint64

	switch version {
	case 0:
		// version(1) flags(3) creation(4) modification(4) timescale(4) duration(4)
		if len(payload) < 20 {
			return 0, ErrNoDuration
		}
		timescale = binary.BigEndian.Uint32(payload[12:16])
		duration = uint64(binary.BigEndian.Uint32(payload[16:20]))
	case 1:
		// version(1) flags(3) creation(8) modification(8) timescale(4) duration(8)
		if len(payload) < 32 {
			return 0, ErrNoDuration
		}
		timescale = binary.BigEndian.Uint32(payload[20:24])
		duration = binary.BigEndian.Uint64(payload[24:32])
	default:
		return 0, ErrNoDuration
	}

	if timescale == 0 {
		return 0, ErrNoDuration
	}

	seconds := float64(duration) / float64(timescale)
	return time.Duration(seconds * float64(time.Second)), nil
}
