// Package fs provides file-based storage for downloaded pages.
package fs

import (
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagesnap"
)

// Ensure Store implements pagesnap.Store at compile time.
var _ pagesnap.Store = (*Store)(nil)

// Store writes a page and its resources to an output directory:
//
//	<dir>/index.html
//	<dir>/resources/<name>
type Store struct {
	dir string
}

// NewStore creates a new Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) resourceDir() string {
	return filepath.Join(s.dir, pagesnap.ResourceDir)
}

// Init creates the output and resources directories if they do not exist.
func (s *Store) Init(ctx context.Context) error {
	if s.dir == "" {
		return pagesnap.Errorf(pagesnap.EINVALID, "output directory required")
	}
	return os.MkdirAll(s.resourceDir(), 0755)
}

// SaveResource writes body to resources/<name>, replacing any existing file.
func (s *Store) SaveResource(ctx context.Context, name string, body []byte) (string, error) {
	if !validName(name) {
		return "", pagesnap.Errorf(pagesnap.EINVALID, "invalid resource name %q", name)
	}

	if err := os.WriteFile(filepath.Join(s.resourceDir(), name), body, 0644); err != nil {
		return "", err
	}

	// References are URLs, so the returned path always uses forward slashes.
	return path.Join(pagesnap.ResourceDir, name), nil
}

// SaveDocument renders doc to index.html.
func (s *Store) SaveDocument(ctx context.Context, doc pagesnap.Document) (string, error) {
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.dir, pagesnap.IndexFile)
	if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}

// validName reports whether name is a plain file name.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
