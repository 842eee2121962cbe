package probe

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(boxType string, payload []byte) []byte {
	out := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint32(out[0:4], uint32(8+len(payload)))
	copy(out[4:8], boxType)
	copy(out[8:], payload)
	return out
}

func mvhdV0(timescale, duration uint32) []byte {
	payload := make([]byte, 100)
	payload[0] = 0 // version
	binary.BigEndian.PutUint32(payload[12:16], timescale)
	binary.BigEndian.PutUint32(payload[16:20], duration)
	return box("mvhd", payload)
}

func mvhdV1(timescale uint32, duration uint64) []byte {
	payload := make([]byte, 112)
	payload[0] = 1 // version
	binary.BigEndian.PutUint32(payload[20:24], timescale)
	binary.BigEndian.PutUint64(payload[24:32], duration)
	return box("mvhd", payload)
}

func mp4With(mvhd []byte) []byte {
	ftyp := box("ftyp", []byte("isom\x00\x00\x02\x00isomiso2"))
	moov := box("moov", mvhd)
	return append(ftyp, moov...)
}

func TestVideoDuration_Version0(t *testing.T) {
	// timescale 600, duration 90000 ticks = 150s
	d, err := VideoDuration(mp4With(mvhdV0(600, 90000)))
	require.NoError(t, err)
	assert.Equal(t, 150*time.Second, d)
}

func TestVideoDuration_Version1(t *testing.T) {
	// timescale 1000, duration 200000 ticks = 200s
	d, err := VideoDuration(mp4With(mvhdV1(1000, 200000)))
	require.NoError(t, err)
	assert.Equal(t, 200*time.Second, d)
}

func TestVideoDuration_NoMoov(t *testing.T) {
	data := box("ftyp", []byte("isom"))
	_, err := VideoDuration(data)
	assert.ErrorIs(t, err, ErrNoDuration)
}

func TestVideoDuration_NotMP4(t *testing.T) {
	_, err := VideoDuration([]byte{0x1a, 0x45, 0xdf, 0xa3, 0x00, 0x00, 0x00, 0x00})
	assert.ErrorIs(t, err, ErrNoDuration)
}

func TestVideoDuration_ZeroTimescale(t *testing.T) {
	_, err := VideoDuration(mp4With(mvhdV0(0, 90000)))
	assert.ErrorIs(t, err, ErrNoDuration)
}

func TestVideoDuration_TruncatedBox(t *testing.T) {
	data := mp4With(mvhdV0(600, 90000))
	_, err := VideoDuration(data[:len(data)-40])
	assert.ErrorIs(t, err, ErrNoDuration)
}
