package sniffer

import (
	"bytes"
	"errors"
	"strings"

	"goldconnect/api/internal/models"
)

var ErrUnknownType = errors.New("unknown media type")

type Result struct {
	Kind models.MessageKind
	MIME string
	Ext  string
}

// Classify maps a declared MIME type onto a media kind by prefix:
// image/* -> image, video/* -> video, audio/* -> audio. When no type
// is declared the payload head is sniffed instead.
func Classify(declaredMIME string, head []byte) (Result, error) {
	mime := normalizeMIME(declaredMIME)

	switch {
	case strings.HasPrefix(mime, "image/"):
		return Result{Kind: models.MessageKindImage, MIME: mime, Ext: extFromMIME(mime)}, nil
	case strings.HasPrefix(mime, "video/"):
		return Result{Kind: models.MessageKindVideo, MIME: mime, Ext: extFromMIME(mime)}, nil
	case strings.HasPrefix(mime, "audio/"):
		return Result{Kind: models.MessageKindAudio, MIME: mime, Ext: extFromMIME(mime)}, nil
	}

	return DetectHead(head)
}

// DetectHead sniffs the leading bytes of a payload.
func DetectHead(head []byte) (Result, error) {
	if len(head) == 0 {
		return Result{}, ErrUnknownType
	}

	switch {
	case isJPEG(head):
		return Result{Kind: models.MessageKindImage, MIME: "image/jpeg", Ext: "jpg"}, nil
	case isPNG(head):
		return Result{Kind: models.MessageKindImage, MIME: "image/png", Ext: "png"}, nil
	case isGIF(head):
		return Result{Kind: models.MessageKindImage, MIME: "image/gif", Ext: "gif"}, nil
	case isWEBP(head):
		return Result{Kind: models.MessageKindImage, MIME: "image/webp", Ext: "webp"}, nil
	case isMP4(head):
		return Result{Kind: models.MessageKindVideo, MIME: "video/mp4", Ext: "mp4"}, nil
	case isWebM(head):
		return Result{Kind: models.MessageKindVideo, MIME: "video/webm", Ext: "webm"}, nil
	case isMP3(head):
		return Result{Kind: models.MessageKindAudio, MIME: "audio/mpeg", Ext: "mp3"}, nil
	case isOgg(head):
		return Result{Kind: models.MessageKindAudio, MIME: "audio/ogg", Ext: "ogg"}, nil
	case isWAV(head):
		return Result{Kind: models.MessageKindAudio, MIME: "audio/wav", Ext: "wav"}, nil
	case isFLAC(head):
		return Result{Kind: models.MessageKindAudio, MIME: "audio/flac", Ext: "flac"}, nil
	}

	return Result{}, ErrUnknownType
}

func normalizeMIME(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

func extFromMIME(mime string) string {
	switch mime {
	case "image/jpeg":
		return "jpg"
	case "image/svg+xml":
		return "svg"
	case "audio/mpeg":
		return "mp3"
	case "video/quicktime":
		return "mov"
	case "audio/x-wav":
		return "wav"
	}
	if idx := strings.Index(mime, "/"); idx >= 0 && idx+1 < len(mime) {
		return mime[idx+1:]
	}
	return "bin"
}

func isJPEG(head []byte) bool {
	return len(head) > 3 &&
		head[0] == 0xff &&
		head[1] == 0xd8 &&
		head[2] == 0xff
}

func isPNG(head []byte) bool {
	pngMagic := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	return len(head) >= len(pngMagic) && bytes.Equal(head[:len(pngMagic)], pngMagic)
}

func isGIF(head []byte) bool {
	return len(head) >= 6 && (bytes.Equal(head[:6], []byte("GIF87a")) || bytes.Equal(head[:6], []byte("GIF89a")))
}

func isWEBP(head []byte) bool {
	return len(head) >= 12 &&
		bytes.Equal(head[:4], []byte("RIFF")) &&
		bytes.Equal(head[8:12], []byte("WEBP"))
}

func isMP4(head []byte) bool {
	return len(head) >= 12 && bytes.Equal(head[4:8], []byte("ftyp"))
}

func isWebM(head []byte) bool {
	return len(head) >= 4 && bytes.Equal(head[:4], []byte{0x1a, 0x45, 0xdf, 0xa3})
}

func isMP3(head []byte) bool {
	if len(head) >= 3 && bytes.Equal(head[:3], []byte("ID3")) {
		return true
	}
	return len(head) >= 2 && head[0] == 0xff && (head[1]&0xe0) == 0xe0
}

func isOgg(head []byte) bool {
	return len(head) >= 4 && bytes.Equal(head[:4], []byte("OggS"))
}

func isWAV(head []byte) bool {
	return len(head) >= 12 &&
		bytes.Equal(head[:4], []byte("RIFF")) &&
		bytes.Equal(head[8:12], []byte("WAVE"))
}

func isFLAC(head []byte) bool {
	return len(head) >= 4 && bytes.Equal(head[:4], []byte("fLaC"))
}
