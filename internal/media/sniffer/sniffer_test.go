package sniffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldconnect/api/internal/models"
)

func TestClassify_DeclaredMIMEPrefixWins(t *testing.T) {
	tests := []struct {
		declared string
		kind     models.MessageKind
	}{
		{"image/png", models.MessageKindImage},
		{"image/jpeg; charset=binary", models.MessageKindImage},
		{"video/mp4", models.MessageKindVideo},
		{"video/quicktime", models.MessageKindVideo},
		{"audio/webm", models.MessageKindAudio},
		{"audio/mpeg", models.MessageKindAudio},
	}

	for _, tt := range tests {
		res, err := Classify(tt.declared, nil)
		require.NoError(t, err, tt.declared)
		assert.Equal(t, tt.kind, res.Kind, tt.declared)
	}
}

func TestClassify_FallsBackToSniffing(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

	res, err := Classify("", png)
	require.NoError(t, err)
	assert.Equal(t, models.MessageKindImage, res.Kind)
	assert.Equal(t, "image/png", res.MIME)

	res, err = Classify("application/octet-stream", png)
	require.NoError(t, err)
	assert.Equal(t, models.MessageKindImage, res.Kind)
}

func TestDetectHead(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		kind models.MessageKind
		mime string
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, models.MessageKindImage, "image/jpeg"},
		{"gif", []byte("GIF89a......"), models.MessageKindImage, "image/gif"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), models.MessageKindImage, "image/webp"},
		{"mp4", []byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'}, models.MessageKindVideo, "video/mp4"},
		{"webm", []byte{0x1a, 0x45, 0xdf, 0xa3, 0, 0}, models.MessageKindVideo, "video/webm"},
		{"mp3 id3", []byte("ID3\x04\x00"), models.MessageKindAudio, "audio/mpeg"},
		{"ogg", []byte("OggS\x00\x02"), models.MessageKindAudio, "audio/ogg"},
		{"wav", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), models.MessageKindAudio, "audio/wav"},
		{"flac", []byte("fLaC\x00\x00"), models.MessageKindAudio, "audio/flac"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := DetectHead(tt.head)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, res.Kind)
			assert.Equal(t, tt.mime, res.MIME)
		})
	}
}

func TestDetectHead_Unknown(t *testing.T) {
	_, err := DetectHead([]byte("plain text, not media"))
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = DetectHead(nil)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestClassify_UnknownDeclaredAndHead(t *testing.T) {
	_, err := Classify("application/pdf", []byte("%PDF-1.7"))
	assert.ErrorIs(t, err, ErrUnknownType)
}
