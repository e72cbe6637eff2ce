package utils

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

// MaxEmbeddedFileBytes caps files embedded inline in a Firestore document.
// Firestore documents max out at 1 MiB, and base64 adds ~33% overhead.
const MaxEmbeddedFileBytes = 700 * 1024

// FileEncoder converts uploaded files into self-contained data URLs suitable
// for storage inline in a user record
type FileEncoder struct{}

// NewFileEncoder creates a new file encoder
func NewFileEncoder() *FileEncoder {
	return &FileEncoder{}
}

// EncodeDataURL reads an uploaded file and returns it as a
// "data:<type>;base64,<payload>" string
func (e *FileEncoder) EncodeDataURL(header *multipart.FileHeader) (string, error) {
	if header.Size > MaxEmbeddedFileBytes {
		return "", fmt.Errorf("file %q exceeds the %d KB limit", header.Filename, MaxEmbeddedFileBytes/1024)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file %q: %w", header.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxEmbeddedFileBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", header.Filename, err)
	}
	if len(data) > MaxEmbeddedFileBytes {
		return "", fmt.Errorf("file %q exceeds the %d KB limit", header.Filename, MaxEmbeddedFileBytes/1024)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(header.Filename))
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)), nil
}
