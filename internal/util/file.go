package util

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

const (
	MimeImage = "image/"
	MimeVideo = "video/"
	MimePDF   = "application/pdf"
)

// ValidateMimeType sniffs the actual content type instead of trusting
// the upload header. allowedTypes are MIME prefixes or full types.
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}
