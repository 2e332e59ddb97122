package storage

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrEmptyFile is returned when an upload carries no bytes.
var ErrEmptyFile = errors.New("file is required")

// allowedExtensions is the accepted image extension set. Anything else is
// coerced to jpg rather than rejected.
var allowedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"webp": true,
}

// ImageStore persists uploaded image bytes and hands back durable public URLs.
type ImageStore interface {
	Save(data []byte, originalFilename, contentType string) (path string, publicURL string, err error)
}

// DiskStore is an ImageStore backed by a local directory that the HTTP
// server exposes as static files. Object paths follow the bucket layout
// items/<random-id>.<ext>.
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore creates the bucket directory (including the items/ prefix)
// and returns a store rooted there. baseURL prefixes public URLs; leave it
// empty for server-relative URLs.
func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("upload directory not configured")
	}

	if err := os.MkdirAll(filepath.Join(root, "items"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &DiskStore{
		root:    root,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}, nil
}

// Save writes the file under a fresh random object path and returns the
// path plus its public URL. An already-used path fails instead of
// clobbering; random ids make that practically unreachable.
func (s *DiskStore) Save(data []byte, originalFilename, contentType string) (string, string, error) {
	if len(data) == 0 {
		return "", "", ErrEmptyFile
	}

	objectPath := path.Join("items", uuid.NewString()+"."+SafeExtension(originalFilename))

	f, err := os.OpenFile(filepath.Join(s.root, filepath.FromSlash(objectPath)), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", "", fmt.Errorf("upload failed: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", "", fmt.Errorf("upload failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", "", fmt.Errorf("upload failed: %w", err)
	}

	return objectPath, s.PublicURL(objectPath), nil
}

// PublicURL resolves an object path to the URL it is served from.
func (s *DiskStore) PublicURL(objectPath string) string {
	return s.baseURL + "/uploads/" + objectPath
}

// Root returns the bucket directory for static file serving.
func (s *DiskStore) Root() string {
	return s.root
}

// SafeExtension derives a storage extension from the original filename.
// The match is case-insensitive; missing or disallowed extensions fall
// back to jpg.
func SafeExtension(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if allowedExtensions[ext] {
		return ext
	}
	return "jpg"
}
