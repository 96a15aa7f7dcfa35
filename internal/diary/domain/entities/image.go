package entities

import (
	"io"
	"path/filepath"
	"strings"
)

// ImageUpload входящий файл изображения.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// Extension возвращает расширение для поддерживаемого типа.
// Второе значение false, если тип не поддерживается.
func (u ImageUpload) Extension() (string, bool) {
	ct := strings.ToLower(strings.TrimSpace(u.ContentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ext, ok := imageExtensions[ct]; ok {
		return ext, true
	}
	// браузеры иногда присылают application/octet-stream
	if ct != "" && ct != "application/octet-stream" {
		return "", false
	}
	switch strings.ToLower(filepath.Ext(u.Filename)) {
	case ".jpg", ".jpeg":
		return ".jpg", true
	case ".png":
		return ".png", true
	}
	return "", false
}

// NormalizedContentType возвращает MIME тип по расширению.
func NormalizedContentType(ext string) string {
	if ext == ".png" {
		return "image/png"
	}
	return "image/jpeg"
}
