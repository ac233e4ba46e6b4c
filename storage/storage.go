package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StoredImage is what callers persist; the service never keeps image
// bytes, only the returned URL and ID.
type StoredImage struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// ImageStore is the asset-store boundary. Save is idempotent per ID so
// callers may retry on upstream failure.
type ImageStore interface {
	Save(r io.Reader, filename string) (*StoredImage, error)
	Remove(id string) error
}

// LocalStore writes images under a public uploads directory and serves
// them from baseURL. Stands in for a cloud asset store in development.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &LocalStore{Dir: dir, BaseURL: baseURL}, nil
}

func (s *LocalStore) Save(r io.Reader, filename string) (*StoredImage, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return nil, fmt.Errorf("unsupported image type %q", ext)
	}

	id := uuid.NewString() + ext
	path := filepath.Join(s.Dir, id)

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return nil, err
	}

	return &StoredImage{
		URL: fmt.Sprintf("%s/uploads/%s", s.BaseURL, id),
		ID:  id,
	}, nil
}

func (s *LocalStore) Remove(id string) error {
	if id == "" {
		return nil
	}
	// Refuse path traversal through stored IDs.
	if filepath.Base(id) != id {
		return fmt.Errorf("invalid image id %q", id)
	}
	err := os.Remove(filepath.Join(s.Dir, id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
