package upload

import (
	"bytes"

	"github.com/pkg/errors"
)

// ErrNotAnImage is raised when the file content does not match any
// supported image format. Detection is content-based; the file extension
// and the declared content type are not trusted.
var ErrNotAnImage = errors.New("only image files are allowed")

// DetectImageMIME sniffs the leading bytes of a file and returns the image
// MIME type, or ErrNotAnImage.
func DetectImageMIME(head []byte) (string, error) {
	switch {
	case isJPEG(head):
		return "image/jpeg", nil
	case isPNG(head):
		return "image/png", nil
	case isGIF(head):
		return "image/gif", nil
	case isWEBP(head):
		return "image/webp", nil
	}
	return "", ErrNotAnImage
}

func isJPEG(head []byte) bool {
	return len(head) >= 3 && bytes.Equal(head[:3], []byte{0xFF, 0xD8, 0xFF})
}

func isPNG(head []byte) bool {
	return len(head) >= 8 && bytes.Equal(head[:8], []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A})
}

func isGIF(head []byte) bool {
	return len(head) >= 6 && (bytes.Equal(head[:6], []byte("GIF87a")) || bytes.Equal(head[:6], []byte("GIF89a")))
}

func isWEBP(head []byte) bool {
	return len(head) >= 12 && bytes.Equal(head[:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WEBP"))
}
