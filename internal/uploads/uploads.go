// Package uploads persists attached images on the local filesystem.
// Stored filenames are uuid-keyed so two uploads can never clobber each
// other, whatever the client named its file.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrDisallowedType is returned when a filename's extension is not an
// accepted image type.
var ErrDisallowedType = errors.New("uploads: file type not allowed")

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

// File is an uploaded file: its client-supplied name and its content.
type File struct {
	Name string
	Data io.Reader
}

// IsAllowed reports whether filename carries an accepted image extension:
// the name must contain a dot, and the part after the last dot,
// lower-cased, must be png, jpg, jpeg, or gif.
func IsAllowed(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	return allowedExtensions[strings.ToLower(filename[idx+1:])]
}

// SanitizeFilename strips directory components and anything outside
// [A-Za-z0-9._-] from a client-supplied filename, collapsing it to a safe
// basename.
func SanitizeFilename(name string) string {
	// filepath.Base does not strip the other platform's separator.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Store writes uploaded files into a single directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory itself is created
// lazily on first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory files are saved under.
func (s *Store) Dir() string {
	return s.dir
}

// Save validates the file's type, writes its bytes under a generated
// unique name, and returns that name as the storage key. The extension is
// taken from the sanitized client filename and lower-cased.
func (s *Store) Save(file *File) (string, error) {
	sanitized := SanitizeFilename(file.Name)
	if !IsAllowed(sanitized) {
		return "", fmt.Errorf("%w: %q", ErrDisallowedType, file.Name)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	stored := uuid.NewString() + strings.ToLower(filepath.Ext(sanitized))
	dst, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, file.Data); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	return stored, nil
}
