// Package imagefiles finds ID images in a directory and loads them for the
// vision clients.
package imagefiles

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions are the image suffixes picked up by Find, matched in lower or
// upper case.
var Extensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tiff"}

var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
}

// File is an image read from disk.
type File struct {
	Path     string
	Name     string
	MIMEType string
	Data     []byte
}

// DataURL returns the file as a base64 data URL.
func (f *File) DataURL() string {
	return EncodeDataURL(f.MIMEType, f.Data)
}

// IsImage reports whether name has one of Extensions, all lower or all upper
// case.
func IsImage(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range Extensions {
		if ext == e || ext == strings.ToUpper(e) {
			return true
		}
	}
	return false
}

// Find lists the images directly inside dir, sorted by file name. It does
// not descend into subdirectories.
func Find(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsImage(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads the image at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return &File{
		Path:     path,
		Name:     filepath.Base(path),
		MIMEType: MIMEType(path),
		Data:     data,
	}, nil
}

// MIMEType guesses the content type from the file extension. Unknown
// extensions are sent as JPEG, which is what the vision endpoints accept
// most reliably.
func MIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := mimeTypes[ext]; ok {
		return mt
	}
	if mt := mime.TypeByExtension(ext); strings.HasPrefix(mt, "image/") {
		return mt
	}
	return "image/jpeg"
}

// EncodeDataURL builds a data:<mime>;base64,<data> URL.
func EncodeDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
