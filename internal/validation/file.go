package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// ImageRules describes which uploads are accepted as contact pictures.
type ImageRules struct {
	ContentTypes map[string]string // detected MIME type -> canonical extension
	Extensions   map[string]bool
	MaxSize      int64
}

var PictureRules = ImageRules{
	ContentTypes: map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/gif":  ".gif",
		"image/webp": ".webp",
	},
	Extensions: map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".webp": true,
	},
	MaxSize: 5 << 20, // 5MB
}

// ValidateImage sniffs the upload's magic number and returns the detected content type.
// The client-supplied Content-Type header is ignored.
func ValidateImage(header *multipart.FileHeader, rules ImageRules) (string, error) {
	if header.Size > rules.MaxSize {
		return "", fmt.Errorf("file too large: maximum size is %d MB", rules.MaxSize/(1<<20))
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !rules.Extensions[ext] {
		return "", fmt.Errorf("upload a valid image: unsupported extension %q", ext)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// http.DetectContentType looks at no more than 512 bytes
	buffer := make([]byte, 512)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	detected := http.DetectContentType(buffer[:n])
	if _, ok := rules.ContentTypes[detected]; !ok {
		return "", fmt.Errorf("upload a valid image: the file is %s", detected)
	}

	return detected, nil
}
